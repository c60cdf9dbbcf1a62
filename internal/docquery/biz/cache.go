package biz

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/kart-io/logger"
	goredis "github.com/redis/go-redis/v9"

	"github.com/kart-io/docquery/internal/model"
	jsonutil "github.com/kart-io/docquery/pkg/utils/json"
)

// AnswerCacheConfig 答案缓存配置。
type AnswerCacheConfig struct {
	// Enabled 是否启用缓存。
	Enabled bool
	// TTL 缓存过期时间。
	TTL time.Duration
	// KeyPrefix 缓存键前缀。
	KeyPrefix string
}

// AnswerCache 缓存问答结果。缓存故障降级为未命中，不影响主流程。
type AnswerCache struct {
	redis  *goredis.Client
	config *AnswerCacheConfig
}

// NewAnswerCache 创建答案缓存实例。
func NewAnswerCache(redis *goredis.Client, config *AnswerCacheConfig) *AnswerCache {
	if config == nil {
		config = &AnswerCacheConfig{
			Enabled:   false,
			TTL:       1 * time.Hour,
			KeyPrefix: "docquery:answer:",
		}
	}
	if config.KeyPrefix == "" {
		config.KeyPrefix = "docquery:answer:"
	}
	return &AnswerCache{
		redis:  redis,
		config: config,
	}
}

// cacheKey 基于问题、检索范围和片段数生成缓存键。
func (c *AnswerCache) cacheKey(question string, docID *uint64, maxChunks int) string {
	scope := "all"
	if docID != nil {
		scope = fmt.Sprintf("doc:%d", *docID)
	}
	hash := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d", question, scope, maxChunks)))
	return c.config.KeyPrefix + hex.EncodeToString(hash[:])
}

// Get 从缓存获取答案。未启用、未命中或故障时返回 nil。
func (c *AnswerCache) Get(ctx context.Context, question string, docID *uint64, maxChunks int) *model.Answer {
	if !c.config.Enabled || c.redis == nil {
		return nil
	}

	key := c.cacheKey(question, docID, maxChunks)
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if err != goredis.Nil {
			logger.Warnw("failed to get from answer cache", "error", err.Error(), "key", key)
		}
		return nil
	}

	var answer model.Answer
	if err := jsonutil.Unmarshal(data, &answer); err != nil {
		logger.Warnw("failed to unmarshal cached answer", "error", err.Error(), "key", key)
		// 删除损坏的缓存
		_ = c.redis.Del(ctx, key).Err()
		return nil
	}

	logger.Debugw("answer cache hit", "key", key)
	return &answer
}

// Set 将答案写入缓存。故障只记录日志。
func (c *AnswerCache) Set(ctx context.Context, question string, docID *uint64, maxChunks int, answer *model.Answer) {
	if !c.config.Enabled || c.redis == nil {
		return
	}

	data, err := jsonutil.Marshal(answer)
	if err != nil {
		logger.Warnw("failed to marshal answer for caching", "error", err.Error())
		return
	}

	key := c.cacheKey(question, docID, maxChunks)
	if err := c.redis.Set(ctx, key, data, c.config.TTL).Err(); err != nil {
		logger.Warnw("failed to set answer cache", "error", err.Error(), "key", key)
	}
}

// Flush 清空全部缓存答案。文档集合变化后调用，避免返回过期引用。
func (c *AnswerCache) Flush(ctx context.Context) {
	if !c.config.Enabled || c.redis == nil {
		return
	}

	pattern := c.config.KeyPrefix + "*"
	iter := c.redis.Scan(ctx, 0, pattern, 0).Iterator()

	deleted := 0
	for iter.Next(ctx) {
		if err := c.redis.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Warnw("failed to delete cache key", "error", err.Error(), "key", iter.Val())
			continue
		}
		deleted++
	}
	if err := iter.Err(); err != nil {
		logger.Warnw("error during answer cache scan", "error", err.Error())
		return
	}

	logger.Infow("flushed answer cache", "deleted_count", deleted)
}
