package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/kart-io/docquery/internal/model"
)

// documents 实现 DocumentStore 接口。
type documents struct {
	db *gorm.DB
}

var _ DocumentStore = (*documents)(nil)

// newDocuments 创建文档存储实例。
func newDocuments(db *gorm.DB) *documents {
	return &documents{db: db}
}

// Create 创建文档记录。
func (d *documents) Create(ctx context.Context, doc *model.Document) error {
	if err := d.db.WithContext(ctx).Create(doc).Error; err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

// Get 根据 ID 获取文档。文档不存在时返回 (nil, nil)。
func (d *documents) Get(ctx context.Context, id uint64) (*model.Document, error) {
	var doc model.Document
	err := d.db.WithContext(ctx).First(&doc, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document %d: %w", id, err)
	}
	return &doc, nil
}

// List 按创建时间倒序返回所有文档摘要。
func (d *documents) List(ctx context.Context) ([]model.DocumentSummary, error) {
	var summaries []model.DocumentSummary
	err := d.db.WithContext(ctx).
		Model(&model.Document{}).
		Select("id", "file_name", "text_length", "created_at").
		Order("created_at DESC").
		Find(&summaries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return summaries, nil
}

// Delete 删除文档记录。
func (d *documents) Delete(ctx context.Context, id uint64) error {
	if err := d.db.WithContext(ctx).Delete(&model.Document{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete document %d: %w", id, err)
	}
	return nil
}

// Count 返回文档总数。
func (d *documents) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := d.db.WithContext(ctx).Model(&model.Document{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return count, nil
}
