package model

import "time"

// AskRequest represents a question against the indexed documents.
type AskRequest struct {
	Question string `json:"question" binding:"required"`

	// DocumentID restricts retrieval to a single document when set.
	DocumentID *uint64 `json:"document_id,omitempty"`

	// MaxChunks caps the number of retrieved chunks. Zero means the
	// configured default.
	MaxChunks int `json:"max_chunks,omitempty"`
}

// SourceChunk represents a retrieved chunk backing an answer.
type SourceChunk struct {
	DocumentID uint64  `json:"document_id"`
	ChunkIndex int64   `json:"chunk_index"`
	Content    string  `json:"content"`
	Source     string  `json:"source"`
	Relevance  float32 `json:"relevance_score"`
}

// Answer represents a generated answer with its supporting sources.
type Answer struct {
	Question         string        `json:"question"`
	Answer           string        `json:"answer"`
	Sources          []SourceChunk `json:"source_chunks"`
	Method           string        `json:"method"`
	ProcessingTimeMS int64         `json:"processing_time_ms"`
	CreatedAt        time.Time     `json:"created_at"`
	Cached           bool          `json:"cached,omitempty"`
}

// IndexStats describes the state of the vector index.
type IndexStats struct {
	TotalChunks    int64  `json:"total_chunks"`
	TotalDocuments int64  `json:"total_documents"`
	Collection     string `json:"collection"`
}
