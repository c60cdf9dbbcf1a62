package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/milvus-io/milvus/client/v2/entity"

	"github.com/kart-io/docquery/internal/model"
	"github.com/kart-io/docquery/pkg/component/milvus"
	"github.com/kart-io/docquery/pkg/errors"
	"github.com/kart-io/docquery/pkg/llm"
)

// vectorClient 抽象 MilvusIndex 依赖的客户端操作，便于测试替换。
type vectorClient interface {
	CreateCollection(ctx context.Context, schema *milvus.CollectionSchema) error
	Insert(ctx context.Context, collectionName string, data *milvus.InsertData) ([]int64, error)
	Search(ctx context.Context, collectionName string, vector []float32, topK int, filterExpr string, outputFields []string) ([]milvus.SearchResult, error)
	DeleteByFilter(ctx context.Context, collectionName, filterExpr string) (int64, error)
	Count(ctx context.Context, collectionName, filterExpr string) (int64, error)
}

var _ vectorClient = (*milvus.Client)(nil)

// IndexConfig 向量索引配置。
type IndexConfig struct {
	// Collection 集合名称。
	Collection string

	// Dimension 向量维度，与嵌入模型输出一致。
	Dimension int

	// EmbedBatchSize 每批送入嵌入模型的片段数。
	EmbedBatchSize int

	// EmbedBatchPause 批次之间的停顿时间。
	EmbedBatchPause time.Duration
}

// MilvusIndex 实现基于 Milvus 的向量索引。
type MilvusIndex struct {
	client   vectorClient
	embedder llm.EmbeddingProvider
	config   *IndexConfig

	ensureOnce sync.Once
	ensureErr  error
}

var _ VectorIndex = (*MilvusIndex)(nil)

// NewMilvusIndex 创建 Milvus 向量索引实例。
func NewMilvusIndex(client *milvus.Client, embedder llm.EmbeddingProvider, config *IndexConfig) *MilvusIndex {
	return newMilvusIndex(client, embedder, config)
}

func newMilvusIndex(client vectorClient, embedder llm.EmbeddingProvider, config *IndexConfig) *MilvusIndex {
	return &MilvusIndex{
		client:   client,
		embedder: embedder,
		config:   config,
	}
}

// EnsureCollection 确保集合存在，已存在时不做任何操作。
func (m *MilvusIndex) EnsureCollection(ctx context.Context) error {
	m.ensureOnce.Do(func() {
		schema := &milvus.CollectionSchema{
			Name:        m.config.Collection,
			Description: "Document chunks for retrieval QA",
			Dimension:   m.config.Dimension,
			MetaFields: []milvus.MetaField{
				{Name: "document_id", DataType: entity.FieldTypeInt64},
				{Name: "chunk_index", DataType: entity.FieldTypeInt64},
				{Name: "content", DataType: entity.FieldTypeVarChar, MaxLen: 65535},
				{Name: "source", DataType: entity.FieldTypeVarChar, MaxLen: 512},
			},
		}
		m.ensureErr = m.client.CreateCollection(ctx, schema)
	})
	return m.ensureErr
}

// AddChunks 为文档的全部片段计算向量并写入索引。
// 片段分批嵌入，批次之间停顿以避免触发供应商限流。
func (m *MilvusIndex) AddChunks(ctx context.Context, docID uint64, source string, chunks []string) error {
	if len(chunks) == 0 {
		return nil
	}
	if err := m.EnsureCollection(ctx); err != nil {
		return errors.ErrIndexUnavailable.WithCause(fmt.Errorf("failed to ensure collection: %w", err))
	}

	batchSize := m.config.EmbedBatchSize
	if batchSize <= 0 {
		batchSize = len(chunks)
	}

	for start := 0; start < len(chunks); start += batchSize {
		end := start + batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		embeddings, err := m.embedder.Embed(ctx, batch)
		if err != nil {
			return errors.ErrEmbedding.WithCause(fmt.Errorf("failed to embed chunks [%d:%d]: %w", start, end, err))
		}
		if len(embeddings) != len(batch) {
			return errors.ErrEmbedding.WithCause(fmt.Errorf("embedding count mismatch: got %d, want %d", len(embeddings), len(batch)))
		}
		for i, emb := range embeddings {
			if len(emb) != m.config.Dimension {
				return errors.ErrEmbedding.WithCause(fmt.Errorf("embedding dimension mismatch at chunk %d: got %d, want %d", start+i, len(emb), m.config.Dimension))
			}
		}

		metadata := map[string][]any{
			"document_id": make([]any, len(batch)),
			"chunk_index": make([]any, len(batch)),
			"content":     make([]any, len(batch)),
			"source":      make([]any, len(batch)),
		}
		for i, content := range batch {
			metadata["document_id"][i] = int64(docID)
			metadata["chunk_index"][i] = int64(start + i)
			metadata["content"][i] = content
			metadata["source"][i] = source
		}

		data := &milvus.InsertData{
			Embeddings: embeddings,
			Metadata:   metadata,
		}
		if _, err := m.client.Insert(ctx, m.config.Collection, data); err != nil {
			return errors.ErrIndexWrite.WithCause(fmt.Errorf("failed to insert chunks [%d:%d]: %w", start, end, err))
		}

		// 批次之间停顿，最后一批不需要
		if end < len(chunks) && m.config.EmbedBatchPause > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(m.config.EmbedBatchPause):
			}
		}
	}

	return nil
}

// Search 检索与问题最相关的片段，按相关度降序返回。
// 集合使用余弦相似度索引，检索得分即相关度。
func (m *MilvusIndex) Search(ctx context.Context, question string, scope Scope) ([]model.SourceChunk, error) {
	vector, err := m.embedder.EmbedSingle(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}

	var filterExpr string
	if scope.DocumentID != nil {
		filterExpr = fmt.Sprintf("document_id == %d", *scope.DocumentID)
	}

	outputFields := []string{"document_id", "chunk_index", "content", "source"}
	results, err := m.client.Search(ctx, m.config.Collection, vector, scope.Limit, filterExpr, outputFields)
	if err != nil {
		return nil, fmt.Errorf("failed to search collection: %w", err)
	}

	chunks := make([]model.SourceChunk, 0, len(results))
	for _, r := range results {
		chunk := model.SourceChunk{
			Relevance: r.Score,
		}
		if v, ok := r.Metadata["document_id"].(int64); ok {
			chunk.DocumentID = uint64(v)
		}
		if v, ok := r.Metadata["chunk_index"].(int64); ok {
			chunk.ChunkIndex = v
		}
		if v, ok := r.Metadata["content"].(string); ok {
			chunk.Content = v
		}
		if v, ok := r.Metadata["source"].(string); ok {
			chunk.Source = v
		}
		chunks = append(chunks, chunk)
	}

	return chunks, nil
}

// DeleteByDocument 删除文档的全部片段，返回删除数量。
func (m *MilvusIndex) DeleteByDocument(ctx context.Context, docID uint64) (int64, error) {
	count, err := m.client.DeleteByFilter(ctx, m.config.Collection, fmt.Sprintf("document_id == %d", docID))
	if err != nil {
		return 0, fmt.Errorf("failed to delete chunks of document %d: %w", docID, err)
	}
	return count, nil
}

// CountByDocument 返回文档的片段数量。
func (m *MilvusIndex) CountByDocument(ctx context.Context, docID uint64) (int64, error) {
	count, err := m.client.Count(ctx, m.config.Collection, fmt.Sprintf("document_id == %d", docID))
	if err != nil {
		return 0, fmt.Errorf("failed to count chunks of document %d: %w", docID, err)
	}
	return count, nil
}

// Stats 返回索引统计信息。
// 每个文档恰有一个 chunk_index == 0 的片段，以此统计文档数。
func (m *MilvusIndex) Stats(ctx context.Context) (*model.IndexStats, error) {
	totalChunks, err := m.client.Count(ctx, m.config.Collection, "")
	if err != nil {
		return nil, fmt.Errorf("failed to count chunks: %w", err)
	}

	totalDocs, err := m.client.Count(ctx, m.config.Collection, "chunk_index == 0")
	if err != nil {
		return nil, fmt.Errorf("failed to count documents: %w", err)
	}

	return &model.IndexStats{
		TotalChunks:    totalChunks,
		TotalDocuments: totalDocs,
		Collection:     m.config.Collection,
	}, nil
}
