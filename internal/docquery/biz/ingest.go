package biz

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/kart-io/logger"

	"github.com/kart-io/docquery/internal/docquery/store"
	"github.com/kart-io/docquery/internal/model"
	"github.com/kart-io/docquery/internal/pkg/textsplit"
	"github.com/kart-io/docquery/pkg/blob"
	"github.com/kart-io/docquery/pkg/errors"
	"github.com/kart-io/docquery/pkg/extract"
	"github.com/kart-io/docquery/pkg/pool"
)

// IngestorConfig 文档入库配置。
type IngestorConfig struct {
	// ChunkSize 文本块大小（Unicode 字符数）。
	ChunkSize int
	// ChunkOverlap 相邻块之间的重叠大小。
	ChunkOverlap int
}

// Ingestor 负责文档入库的完整流水线：落盘、提取、切块、索引。
// 关系存储与向量索引之间没有跨库事务，失败时按文档 ID 逐步补偿。
type Ingestor struct {
	docs       store.DocumentStore
	index      store.VectorIndex
	blobs      blob.Store
	extractors *extract.Set
	pool       *pool.Pool
	cache      *AnswerCache
	splitOpts  textsplit.Options
}

// NewIngestor 创建文档入库实例。extractPool 用于隔离 CPU 密集的文本提取。
func NewIngestor(
	docs store.DocumentStore,
	index store.VectorIndex,
	blobs blob.Store,
	extractors *extract.Set,
	extractPool *pool.Pool,
	cache *AnswerCache,
	config *IngestorConfig,
) *Ingestor {
	if config == nil {
		config = &IngestorConfig{
			ChunkSize:    textsplit.DefaultChunkSize,
			ChunkOverlap: textsplit.DefaultChunkOverlap,
		}
	}
	if cache == nil {
		cache = NewAnswerCache(nil, nil)
	}
	return &Ingestor{
		docs:       docs,
		index:      index,
		blobs:      blobs,
		extractors: extractors,
		pool:       extractPool,
		cache:      cache,
		splitOpts: textsplit.Options{
			ChunkSize:    config.ChunkSize,
			ChunkOverlap: config.ChunkOverlap,
		},
	}
}

// Upload 入库一个文档。
// 流程：落盘 → 提取文本 → 切块 → 创建记录 → 写入向量索引。
// 记录在切块成功后才创建；索引写入失败时回滚记录与落盘文件，
// 保证不会留下没有片段的孤儿记录。
func (i *Ingestor) Upload(ctx context.Context, fileName string, data []byte) (*model.UploadResult, error) {
	if strings.TrimSpace(fileName) == "" {
		return nil, errors.ErrMissingParam.WithMessage("file name is required")
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if !i.extractors.Supports(ext) {
		return nil, errors.ErrUnsupportedMediaType.WithMessagef(
			"unsupported file format %q, supported formats: %s",
			ext, strings.Join(i.extractors.SupportedFormats(), ", "))
	}
	if len(data) == 0 {
		return nil, errors.ErrEmptyContent
	}

	storagePath, err := i.blobs.Save(ctx, fileName, data)
	if err != nil {
		return nil, errors.ErrIngestFailed.WithCause(err)
	}

	start := time.Now()
	text, err := i.extractText(ctx, ext, data)
	if err != nil {
		i.removeBlob(ctx, storagePath)
		return nil, errors.ErrExtraction.WithCause(err)
	}

	chunks := textsplit.Split(text, i.splitOpts)
	if len(chunks) == 0 {
		i.removeBlob(ctx, storagePath)
		return nil, errors.ErrEmptyContent
	}

	textLength := len([]rune(text))
	doc := &model.Document{
		FileName:    fileName,
		StoragePath: storagePath,
		TextContent: text,
		TextLength:  textLength,
	}
	if err := i.docs.Create(ctx, doc); err != nil {
		i.removeBlob(ctx, storagePath)
		return nil, errors.ErrDatabase.WithCause(err)
	}

	indexStart := time.Now()
	if err := i.index.AddChunks(ctx, doc.ID, fileName, chunks); err != nil {
		// 补偿：按记录、落盘文件的顺序回滚
		if delErr := i.docs.Delete(ctx, doc.ID); delErr != nil {
			logger.Errorw("failed to roll back document record after index failure",
				"document_id", doc.ID, "error", delErr.Error())
		}
		i.removeBlob(ctx, storagePath)
		// 索引层已区分嵌入失败与写入失败，保留其错误码
		var e *errors.Errno
		if errors.As(err, &e) {
			return nil, e
		}
		return nil, errors.ErrIndexWrite.WithCause(err)
	}
	indexingMS := time.Since(indexStart).Milliseconds()

	logger.Infow("document ingested",
		"document_id", doc.ID,
		"file_name", fileName,
		"text_length", textLength,
		"chunks_created", len(chunks),
		"indexing_ms", indexingMS,
	)

	return &model.UploadResult{
		ID:               doc.ID,
		FileName:         fileName,
		TextContent:      text,
		TextLength:       textLength,
		ProcessingTimeMS: time.Since(start).Milliseconds(),
		CreatedAt:        doc.CreatedAt,
		RAGProcessing: model.RAGProcessing{
			ChunksCreated:    len(chunks),
			ProcessingTimeMS: indexingMS,
			Status:           "success",
		},
	}, nil
}

// extractText 将 CPU 密集的提取任务提交到工作池，等待结果或取消。
func (i *Ingestor) extractText(ctx context.Context, ext string, data []byte) (string, error) {
	type extractResult struct {
		text string
		err  error
	}
	ch := make(chan extractResult, 1)

	if err := i.pool.Submit(func() {
		text, err := i.extractors.Extract(ctx, ext, data)
		ch <- extractResult{text: text, err: err}
	}); err != nil {
		return "", fmt.Errorf("failed to submit extraction task: %w", err)
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		return res.text, res.err
	}
}

// removeBlob 尽力删除落盘文件，失败只记录日志。
func (i *Ingestor) removeBlob(ctx context.Context, path string) {
	if err := i.blobs.Remove(ctx, path); err != nil {
		logger.Warnw("failed to remove stored file", "path", path, "error", err.Error())
	}
}

// Get 获取文档详情。文档不存在时返回 (nil, nil)。
func (i *Ingestor) Get(ctx context.Context, id uint64) (*model.DocumentDetail, error) {
	doc, err := i.docs.Get(ctx, id)
	if err != nil {
		return nil, errors.ErrDatabase.WithCause(err)
	}
	if doc == nil {
		return nil, nil
	}

	chunkCount, err := i.index.CountByDocument(ctx, id)
	if err != nil {
		return nil, errors.ErrIndexUnavailable.WithCause(err)
	}

	return &model.DocumentDetail{
		ID:          doc.ID,
		FileName:    doc.FileName,
		TextContent: doc.TextContent,
		TextLength:  doc.TextLength,
		ChunkCount:  chunkCount,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}, nil
}

// List 按创建时间倒序返回所有文档摘要。
func (i *Ingestor) List(ctx context.Context) ([]model.DocumentSummary, error) {
	summaries, err := i.docs.List(ctx)
	if err != nil {
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return summaries, nil
}

// Delete 删除文档及其全部片段。文档不存在时返回 (nil, nil)。
// 删除顺序固定为片段 → 记录 → 落盘文件，保证片段不会比记录存活更久。
func (i *Ingestor) Delete(ctx context.Context, id uint64) (*model.DeleteResult, error) {
	doc, err := i.docs.Get(ctx, id)
	if err != nil {
		return nil, errors.ErrDatabase.WithCause(err)
	}
	if doc == nil {
		return nil, nil
	}

	removed, err := i.index.DeleteByDocument(ctx, id)
	if err != nil {
		return nil, errors.ErrIndexWrite.WithCause(err)
	}

	if err := i.docs.Delete(ctx, id); err != nil {
		return nil, errors.ErrDatabase.WithCause(err)
	}

	if doc.StoragePath != "" {
		i.removeBlob(ctx, doc.StoragePath)
	}

	// 文档集合已变化，清空缓存避免返回过期引用
	i.cache.Flush(ctx)

	logger.Infow("document deleted", "document_id", id, "chunks_removed", removed)

	return &model.DeleteResult{
		Deleted:       true,
		DocumentID:    id,
		ChunksRemoved: removed,
	}, nil
}
