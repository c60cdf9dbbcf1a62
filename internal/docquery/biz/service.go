// Package biz 实现文档问答服务的业务逻辑。
package biz

import (
	"context"

	"github.com/kart-io/docquery/internal/model"
)

// Service 定义文档问答服务接口。
type Service interface {
	// Upload 入库一个文档：落盘、提取文本、切块并写入向量索引。
	Upload(ctx context.Context, fileName string, data []byte) (*model.UploadResult, error)

	// GetDocument 获取文档详情。文档不存在时返回 (nil, nil)。
	GetDocument(ctx context.Context, id uint64) (*model.DocumentDetail, error)

	// ListDocuments 按创建时间倒序返回所有文档摘要。
	ListDocuments(ctx context.Context) ([]model.DocumentSummary, error)

	// DeleteDocument 删除文档及其全部片段。文档不存在时返回 (nil, nil)。
	DeleteDocument(ctx context.Context, id uint64) (*model.DeleteResult, error)

	// Ask 基于已入库文档回答问题。
	Ask(ctx context.Context, req *model.AskRequest) (*model.Answer, error)

	// Stats 返回向量索引统计信息。
	Stats(ctx context.Context) (*model.IndexStats, error)
}

// DocQueryService 组合 Ingestor 与 Answerer 提供完整的文档问答服务。
type DocQueryService struct {
	ingestor *Ingestor
	answerer *Answerer
}

var _ Service = (*DocQueryService)(nil)

// NewService 创建文档问答服务实例。
func NewService(ingestor *Ingestor, answerer *Answerer) *DocQueryService {
	return &DocQueryService{
		ingestor: ingestor,
		answerer: answerer,
	}
}

// Upload 入库一个文档。
func (s *DocQueryService) Upload(ctx context.Context, fileName string, data []byte) (*model.UploadResult, error) {
	return s.ingestor.Upload(ctx, fileName, data)
}

// GetDocument 获取文档详情。
func (s *DocQueryService) GetDocument(ctx context.Context, id uint64) (*model.DocumentDetail, error) {
	return s.ingestor.Get(ctx, id)
}

// ListDocuments 返回所有文档摘要。
func (s *DocQueryService) ListDocuments(ctx context.Context) ([]model.DocumentSummary, error) {
	return s.ingestor.List(ctx)
}

// DeleteDocument 删除文档及其全部片段。
func (s *DocQueryService) DeleteDocument(ctx context.Context, id uint64) (*model.DeleteResult, error) {
	return s.ingestor.Delete(ctx, id)
}

// Ask 基于已入库文档回答问题。
func (s *DocQueryService) Ask(ctx context.Context, req *model.AskRequest) (*model.Answer, error) {
	return s.answerer.Ask(ctx, req)
}

// Stats 返回向量索引统计信息。
func (s *DocQueryService) Stats(ctx context.Context) (*model.IndexStats, error) {
	return s.answerer.Stats(ctx)
}
