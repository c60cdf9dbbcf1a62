// Package model defines the data models for docquery.
package model

import (
	"time"
)

// Document represents an ingested document.
type Document struct {
	ID          uint64    `json:"id" gorm:"primaryKey;autoIncrement;comment:主键ID"`
	FileName    string    `json:"file_name" gorm:"size:255;not null;comment:原始文件名"`
	StoragePath string    `json:"-" gorm:"size:512;not null;comment:落盘路径"`
	TextContent string    `json:"-" gorm:"type:text;comment:提取的全文"`
	TextLength  int       `json:"text_length" gorm:"not null;default:0;comment:全文字符数"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Document.
func (Document) TableName() string {
	return "documents"
}

// DocumentSummary is the list representation of a document.
type DocumentSummary struct {
	ID         uint64    `json:"id"`
	FileName   string    `json:"file_name"`
	TextLength int       `json:"text_length"`
	CreatedAt  time.Time `json:"created_at"`
}

// DocumentDetail is the single-document representation including extracted
// text and the number of chunks currently indexed. A detail with zero chunks
// identifies a partially ingested document.
type DocumentDetail struct {
	ID          uint64    `json:"id"`
	FileName    string    `json:"file_name"`
	TextContent string    `json:"text_content"`
	TextLength  int       `json:"text_length"`
	ChunkCount  int64     `json:"chunk_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RAGProcessing describes the indexing phase of an upload.
type RAGProcessing struct {
	ChunksCreated    int    `json:"chunks_created"`
	ProcessingTimeMS int64  `json:"rag_processing_time_ms"`
	Status           string `json:"status"`
}

// UploadResult describes the outcome of a document upload.
type UploadResult struct {
	ID               uint64        `json:"id"`
	FileName         string        `json:"file_name"`
	TextContent      string        `json:"text_content"`
	TextLength       int           `json:"text_length"`
	ProcessingTimeMS int64         `json:"processing_time_ms"`
	CreatedAt        time.Time     `json:"created_at"`
	RAGProcessing    RAGProcessing `json:"rag_processing"`
}

// DeleteResult describes the outcome of a document deletion.
type DeleteResult struct {
	Deleted       bool   `json:"deleted"`
	DocumentID    uint64 `json:"document_id"`
	ChunksRemoved int64  `json:"chunks_removed"`
}
