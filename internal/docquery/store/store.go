// Package store 定义文档问答服务的存储层接口。
package store

import (
	"context"

	"github.com/kart-io/docquery/internal/model"
)

// Factory 定义存储层工厂接口。
type Factory interface {
	// Documents 返回文档存储接口。
	Documents() DocumentStore

	// Close 关闭存储连接。
	Close() error
}

// DocumentStore 定义文档元数据存储接口。
type DocumentStore interface {
	// Create 创建文档记录。
	Create(ctx context.Context, doc *model.Document) error

	// Get 根据 ID 获取文档。文档不存在时返回 (nil, nil)。
	Get(ctx context.Context, id uint64) (*model.Document, error)

	// List 按创建时间倒序返回所有文档摘要。
	List(ctx context.Context) ([]model.DocumentSummary, error)

	// Delete 删除文档记录。
	Delete(ctx context.Context, id uint64) error

	// Count 返回文档总数。
	Count(ctx context.Context) (int64, error)
}
