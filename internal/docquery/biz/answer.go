package biz

import (
	"context"
	"strings"
	"time"

	"github.com/kart-io/logger"

	"github.com/kart-io/docquery/internal/docquery/store"
	"github.com/kart-io/docquery/internal/model"
	"github.com/kart-io/docquery/pkg/errors"
	"github.com/kart-io/docquery/pkg/llm"
)

// MethodRetrievalQA 标识检索增强问答方式。
const MethodRetrievalQA = "retrieval_qa"

// AnswererConfig 问答配置。
type AnswererConfig struct {
	// MaxChunks 默认检索片段数。
	MaxChunks int
	// MaxChunksLimit 调用方可请求的片段数上限。
	MaxChunksLimit int
	// ContextBudget 拼接上下文的最大字符数（按 rune 计）。
	ContextBudget int
	// PromptTemplate 生成提示模板，包含 {{context}} 与 {{question}} 占位符。
	PromptTemplate string
}

// Answerer 基于检索到的片段生成答案。
type Answerer struct {
	index  store.VectorIndex
	chat   llm.ChatProvider
	cache  *AnswerCache
	config *AnswererConfig
}

// NewAnswerer 创建问答实例。
func NewAnswerer(index store.VectorIndex, chat llm.ChatProvider, cache *AnswerCache, config *AnswererConfig) *Answerer {
	if cache == nil {
		cache = NewAnswerCache(nil, nil)
	}
	return &Answerer{
		index:  index,
		chat:   chat,
		cache:  cache,
		config: config,
	}
}

// clampMaxChunks 将请求的片段数收敛到 [1, MaxChunksLimit]，零值用默认值。
func (a *Answerer) clampMaxChunks(requested int) int {
	if requested < 1 {
		return a.config.MaxChunks
	}
	if requested > a.config.MaxChunksLimit {
		return a.config.MaxChunksLimit
	}
	return requested
}

// Ask 基于已入库文档回答问题。
// 检索为空时仍然调用生成，由提示约定模型回答信息不足而不是编造。
// 返回的引用与拼入上下文的片段严格一致。
func (a *Answerer) Ask(ctx context.Context, req *model.AskRequest) (*model.Answer, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, errors.ErrMissingParam.WithMessage("question is required")
	}

	maxChunks := a.clampMaxChunks(req.MaxChunks)

	if cached := a.cache.Get(ctx, question, req.DocumentID, maxChunks); cached != nil {
		cached.Cached = true
		return cached, nil
	}

	start := time.Now()

	chunks, err := a.index.Search(ctx, question, store.Scope{
		DocumentID: req.DocumentID,
		Limit:      maxChunks,
	})
	if err != nil {
		return nil, errors.ErrRetrieval.WithCause(err)
	}

	contextText, sources := assembleContext(chunks, a.config.ContextBudget)

	prompt := strings.ReplaceAll(a.config.PromptTemplate, "{{context}}", contextText)
	prompt = strings.ReplaceAll(prompt, "{{question}}", question)

	resp, err := a.chat.Generate(ctx, prompt, "")
	if err != nil {
		return nil, errors.ErrGeneration.WithCause(err)
	}

	answer := &model.Answer{
		Question:         question,
		Answer:           resp.Content,
		Sources:          sources,
		Method:           MethodRetrievalQA,
		ProcessingTimeMS: time.Since(start).Milliseconds(),
		CreatedAt:        time.Now(),
	}

	logger.Infow("question answered",
		"question_length", len([]rune(question)),
		"chunks_used", len(sources),
		"processing_time_ms", answer.ProcessingTimeMS,
	)

	a.cache.Set(ctx, question, req.DocumentID, maxChunks, answer)

	return answer, nil
}

// assembleContext 按相关度顺序拼接片段，超出预算时舍弃排名靠后的片段。
// 返回的引用列表与拼入上下文的片段一一对应。
func assembleContext(chunks []model.SourceChunk, budget int) (string, []model.SourceChunk) {
	var b strings.Builder
	sources := make([]model.SourceChunk, 0, len(chunks))

	total := 0
	for _, chunk := range chunks {
		size := len([]rune(chunk.Content))
		if len(sources) > 0 {
			// 连接符同样计入预算
			size += len("\n\n")
		}
		if budget > 0 && total+size > budget {
			break
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(chunk.Content)
		total += size
		sources = append(sources, chunk)
	}

	return b.String(), sources
}

// Stats 返回向量索引统计信息。
func (a *Answerer) Stats(ctx context.Context) (*model.IndexStats, error) {
	stats, err := a.index.Stats(ctx)
	if err != nil {
		return nil, errors.ErrIndexUnavailable.WithCause(err)
	}
	return stats, nil
}
