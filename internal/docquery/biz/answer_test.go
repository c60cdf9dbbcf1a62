package biz

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/docquery/internal/model"
	"github.com/kart-io/docquery/pkg/errors"
	"github.com/kart-io/docquery/pkg/llm"
)

// fakeChat 记录最近一次提示并返回固定答案。
type fakeChat struct {
	lastPrompt string
	answer     string
	err        error
}

func (f *fakeChat) Chat(_ context.Context, _ []llm.Message) (string, error) {
	return f.answer, f.err
}

func (f *fakeChat) Generate(_ context.Context, prompt string, _ string) (*llm.GenerateResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastPrompt = prompt
	return &llm.GenerateResponse{Content: f.answer}, nil
}

func (f *fakeChat) Name() string { return "fake" }

func newAnswerer(index *fakeIndex, chat *fakeChat) *Answerer {
	return NewAnswerer(index, chat, NewAnswerCache(nil, nil), &AnswererConfig{
		MaxChunks:      3,
		MaxChunksLimit: 20,
		ContextBudget:  8000,
		PromptTemplate: "Context:\n{{context}}\n\nQuestion: {{question}}\n\nAnswer:",
	})
}

func TestAskCitesRetrievedChunks(t *testing.T) {
	index := newFakeIndex()
	index.searchChunks = []model.SourceChunk{
		{DocumentID: 1, ChunkIndex: 2, Content: "Total: $42.00", Source: "invoice.pdf", Relevance: 0.95},
		{DocumentID: 1, ChunkIndex: 0, Content: "Invoice header", Source: "invoice.pdf", Relevance: 0.61},
	}
	chat := &fakeChat{answer: "The total is $42.00."}
	a := newAnswerer(index, chat)

	docID := uint64(1)
	answer, err := a.Ask(context.Background(), &model.AskRequest{
		Question:   "What is the total?",
		DocumentID: &docID,
		MaxChunks:  3,
	})
	require.NoError(t, err)

	assert.Equal(t, "The total is $42.00.", answer.Answer)
	assert.Equal(t, MethodRetrievalQA, answer.Method)
	require.Len(t, answer.Sources, 2)
	assert.Equal(t, "Total: $42.00", answer.Sources[0].Content)

	// 提示中包含上下文与问题
	assert.Contains(t, chat.lastPrompt, "Total: $42.00")
	assert.Contains(t, chat.lastPrompt, "What is the total?")

	// 范围限定到单文档
	require.NotNil(t, index.searchScope.DocumentID)
	assert.Equal(t, uint64(1), *index.searchScope.DocumentID)
	assert.Equal(t, 3, index.searchScope.Limit)
}

func TestAskEmptyRetrievalStillGenerates(t *testing.T) {
	index := newFakeIndex()
	chat := &fakeChat{answer: "I do not have enough information to answer."}
	a := newAnswerer(index, chat)

	answer, err := a.Ask(context.Background(), &model.AskRequest{Question: "Anything?"})
	require.NoError(t, err)

	assert.Empty(t, answer.Sources)
	assert.Contains(t, answer.Answer, "not have enough information")
	// 空上下文仍然调用生成
	assert.Contains(t, chat.lastPrompt, "Question: Anything?")
}

func TestAskWithNilCache(t *testing.T) {
	a := NewAnswerer(newFakeIndex(), &fakeChat{answer: "yes"}, nil, &AnswererConfig{
		MaxChunks:      3,
		MaxChunksLimit: 20,
		ContextBudget:  8000,
		PromptTemplate: "{{context}}\n{{question}}",
	})

	answer, err := a.Ask(context.Background(), &model.AskRequest{Question: "Anything?"})
	require.NoError(t, err)
	assert.Equal(t, "yes", answer.Answer)
}

func TestAskMissingQuestion(t *testing.T) {
	a := newAnswerer(newFakeIndex(), &fakeChat{answer: "x"})

	_, err := a.Ask(context.Background(), &model.AskRequest{Question: "   "})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrMissingParam.Code))
}

func TestAskClampsMaxChunks(t *testing.T) {
	index := newFakeIndex()
	a := newAnswerer(index, &fakeChat{answer: "x"})

	_, err := a.Ask(context.Background(), &model.AskRequest{Question: "q", MaxChunks: 50})
	require.NoError(t, err)
	assert.Equal(t, 20, index.searchScope.Limit)

	_, err = a.Ask(context.Background(), &model.AskRequest{Question: "q"})
	require.NoError(t, err)
	assert.Equal(t, 3, index.searchScope.Limit)

	_, err = a.Ask(context.Background(), &model.AskRequest{Question: "q", MaxChunks: -1})
	require.NoError(t, err)
	assert.Equal(t, 3, index.searchScope.Limit)
}

func TestAskGenerationFailure(t *testing.T) {
	index := newFakeIndex()
	a := newAnswerer(index, &fakeChat{err: fmt.Errorf("provider down")})

	_, err := a.Ask(context.Background(), &model.AskRequest{Question: "q"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrGeneration.Code))
}

func TestAssembleContextDropsLowestRanked(t *testing.T) {
	chunks := []model.SourceChunk{
		{Content: strings.Repeat("a", 50), Relevance: 0.9},
		{Content: strings.Repeat("b", 50), Relevance: 0.8},
		{Content: strings.Repeat("c", 50), Relevance: 0.7},
	}

	text, sources := assembleContext(chunks, 110)
	require.Len(t, sources, 2)
	assert.Contains(t, text, strings.Repeat("a", 50))
	assert.Contains(t, text, strings.Repeat("b", 50))
	assert.NotContains(t, text, "c")

	// 引用与拼入上下文的片段严格一致
	assert.Equal(t, chunks[:2], sources)
}

func TestAssembleContextCountsSeparators(t *testing.T) {
	chunks := []model.SourceChunk{
		{Content: strings.Repeat("a", 50), Relevance: 0.9},
		{Content: strings.Repeat("b", 50), Relevance: 0.8},
	}

	// 两段各 50，连接符占 2：预算 100 只容得下第一段
	text, sources := assembleContext(chunks, 100)
	require.Len(t, sources, 1)
	assert.LessOrEqual(t, len([]rune(text)), 100)

	text, sources = assembleContext(chunks, 102)
	require.Len(t, sources, 2)
	assert.Equal(t, 102, len([]rune(text)))
}

func TestAssembleContextUnlimitedBudget(t *testing.T) {
	chunks := []model.SourceChunk{
		{Content: "one"},
		{Content: "two"},
	}
	text, sources := assembleContext(chunks, 0)
	assert.Equal(t, "one\n\ntwo", text)
	assert.Len(t, sources, 2)
}

func TestStatsUnavailable(t *testing.T) {
	index := newFakeIndex()
	index.statsErr = fmt.Errorf("milvus unreachable")
	a := newAnswerer(index, &fakeChat{})

	_, err := a.Stats(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrIndexUnavailable.Code))
}

func TestStats(t *testing.T) {
	index := newFakeIndex()
	index.stats = &model.IndexStats{TotalChunks: 10, TotalDocuments: 2, Collection: "documents"}
	a := newAnswerer(index, &fakeChat{})

	stats, err := a.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(10), stats.TotalChunks)
	assert.Equal(t, int64(2), stats.TotalDocuments)
}
