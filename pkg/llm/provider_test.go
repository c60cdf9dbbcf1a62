package llm_test

import (
	"context"
	"testing"

	"github.com/kart-io/docquery/pkg/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	name string
}

var _ llm.Provider = (*stubProvider)(nil)

func (s *stubProvider) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0}
	}
	return out, nil
}

func (s *stubProvider) EmbedSingle(_ context.Context, _ string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

func (s *stubProvider) Chat(_ context.Context, _ []llm.Message) (string, error) {
	return "chat", nil
}

func (s *stubProvider) Generate(_ context.Context, _, _ string) (*llm.GenerateResponse, error) {
	return &llm.GenerateResponse{Content: "generated"}, nil
}

func (s *stubProvider) Name() string { return s.name }

func TestRegistryFallback(t *testing.T) {
	llm.RegisterProvider("stub-full", func(_ map[string]any) (llm.Provider, error) {
		return &stubProvider{name: "stub-full"}, nil
	})

	// 完整供应商可同时充当 Embedding 与 Chat 供应商
	ep, err := llm.NewEmbeddingProvider("stub-full", nil)
	require.NoError(t, err)
	assert.Equal(t, "stub-full", ep.Name())

	cp, err := llm.NewChatProvider("stub-full", nil)
	require.NoError(t, err)
	assert.Equal(t, "stub-full", cp.Name())
}

func TestRegistryUnknownProvider(t *testing.T) {
	_, err := llm.NewEmbeddingProvider("no-such-provider", nil)
	assert.Error(t, err)

	_, err = llm.NewChatProvider("no-such-provider", nil)
	assert.Error(t, err)
}

func TestDedicatedFactoryPreferred(t *testing.T) {
	llm.RegisterProvider("stub-both", func(_ map[string]any) (llm.Provider, error) {
		return &stubProvider{name: "full"}, nil
	})
	llm.RegisterEmbeddingProvider("stub-both", func(_ map[string]any) (llm.EmbeddingProvider, error) {
		return &stubProvider{name: "dedicated"}, nil
	})

	ep, err := llm.NewEmbeddingProvider("stub-both", nil)
	require.NoError(t, err)
	assert.Equal(t, "dedicated", ep.Name())
}

func TestListProviders(t *testing.T) {
	llm.RegisterProvider("stub-listed", func(_ map[string]any) (llm.Provider, error) {
		return &stubProvider{name: "stub-listed"}, nil
	})
	assert.Contains(t, llm.ListProviders(), "stub-listed")
}
