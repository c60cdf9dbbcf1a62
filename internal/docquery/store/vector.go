package store

import (
	"context"

	"github.com/kart-io/docquery/internal/model"
)

// Scope 限定检索范围。
type Scope struct {
	// DocumentID 非空时只在该文档内检索。
	DocumentID *uint64

	// Limit 返回的最大片段数。
	Limit int
}

// VectorIndex 定义向量索引接口。
type VectorIndex interface {
	// EnsureCollection 确保集合存在，已存在时不做任何操作。
	EnsureCollection(ctx context.Context) error

	// AddChunks 为文档的全部片段计算向量并写入索引。
	// 片段按切分顺序从 0 开始连续编号。
	AddChunks(ctx context.Context, docID uint64, source string, chunks []string) error

	// Search 检索与问题最相关的片段，按相关度降序返回。
	Search(ctx context.Context, question string, scope Scope) ([]model.SourceChunk, error)

	// DeleteByDocument 删除文档的全部片段，返回删除数量。
	DeleteByDocument(ctx context.Context, docID uint64) (int64, error)

	// CountByDocument 返回文档的片段数量。
	CountByDocument(ctx context.Context, docID uint64) (int64, error)

	// Stats 返回索引统计信息。
	Stats(ctx context.Context) (*model.IndexStats, error)
}
