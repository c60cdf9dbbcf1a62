package biz

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kart-io/docquery/internal/model"
)

func TestAnswerCacheDisabledIsNoop(t *testing.T) {
	cache := NewAnswerCache(nil, nil)
	ctx := context.Background()

	assert.Nil(t, cache.Get(ctx, "q", nil, 3))
	cache.Set(ctx, "q", nil, 3, &model.Answer{Answer: "a"})
	cache.Flush(ctx)
	assert.Nil(t, cache.Get(ctx, "q", nil, 3))
}

func TestAnswerCacheKeyScoping(t *testing.T) {
	cache := NewAnswerCache(nil, &AnswerCacheConfig{Enabled: true, TTL: time.Minute})

	docA := uint64(1)
	docB := uint64(2)

	unscoped := cache.cacheKey("q", nil, 3)
	scopedA := cache.cacheKey("q", &docA, 3)
	scopedB := cache.cacheKey("q", &docB, 3)
	moreChunks := cache.cacheKey("q", nil, 5)

	// 问题、范围、片段数任一不同都是不同的缓存条目
	assert.NotEqual(t, unscoped, scopedA)
	assert.NotEqual(t, scopedA, scopedB)
	assert.NotEqual(t, unscoped, moreChunks)

	// 相同输入生成确定的键
	assert.Equal(t, scopedA, cache.cacheKey("q", &docA, 3))
}
