// Package ingest provides document ingestion configuration options.
package ingest

import (
	"fmt"
	"time"

	"github.com/kart-io/docquery/pkg/options"
	"github.com/spf13/pflag"
)

var _ options.IOptions = (*Options)(nil)

// Options contains document ingestion configuration.
type Options struct {
	// ChunkSize is the size of text chunks, in runes.
	ChunkSize int `json:"chunk-size" mapstructure:"chunk-size"`

	// ChunkOverlap is the overlap between adjacent chunks, in runes.
	ChunkOverlap int `json:"chunk-overlap" mapstructure:"chunk-overlap"`

	// Collection is the name of the Milvus collection.
	Collection string `json:"collection" mapstructure:"collection"`

	// EmbeddingDim is the dimension of embedding vectors.
	EmbeddingDim int `json:"embedding-dim" mapstructure:"embedding-dim"`

	// DataDir is the directory for storing uploaded documents.
	DataDir string `json:"data-dir" mapstructure:"data-dir"`

	// EmbedBatchSize 每批送入嵌入模型的块数。
	EmbedBatchSize int `json:"embed-batch-size" mapstructure:"embed-batch-size"`

	// EmbedBatchPause 批次之间的停顿时间，避免触发限流。
	EmbedBatchPause time.Duration `json:"embed-batch-pause" mapstructure:"embed-batch-pause"`
}

// NewOptions creates new Options with defaults.
func NewOptions() *Options {
	return &Options{
		ChunkSize:       1000,
		ChunkOverlap:    200,
		Collection:      "documents",
		EmbeddingDim:    1536, // text-embedding-3-small dimension
		DataDir:         "_output/docquery-data",
		EmbedBatchSize:  16,
		EmbedBatchPause: 100 * time.Millisecond,
	}
}

// AddFlags adds flags for ingestion options to the specified FlagSet.
func (o *Options) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.IntVar(&o.ChunkSize, options.Join(prefixes...)+"ingest.chunk-size", o.ChunkSize, "Size of text chunks in runes.")
	fs.IntVar(&o.ChunkOverlap, options.Join(prefixes...)+"ingest.chunk-overlap", o.ChunkOverlap, "Overlap between adjacent chunks in runes.")
	fs.StringVar(&o.Collection, options.Join(prefixes...)+"ingest.collection", o.Collection, "Milvus collection name.")
	fs.IntVar(&o.EmbeddingDim, options.Join(prefixes...)+"ingest.embedding-dim", o.EmbeddingDim, "Embedding vector dimension.")
	fs.StringVar(&o.DataDir, options.Join(prefixes...)+"ingest.data-dir", o.DataDir, "Directory for storing uploaded documents.")
	fs.IntVar(&o.EmbedBatchSize, options.Join(prefixes...)+"ingest.embed-batch-size", o.EmbedBatchSize, "Number of chunks per embedding batch.")
	fs.DurationVar(&o.EmbedBatchPause, options.Join(prefixes...)+"ingest.embed-batch-pause", o.EmbedBatchPause, "Pause between embedding batches.")
}

// Validate validates the ingestion options.
func (o *Options) Validate() []error {
	if o == nil {
		return nil
	}

	var errs []error
	if o.ChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("chunk-size must be positive"))
	}
	if o.ChunkOverlap < 0 {
		errs = append(errs, fmt.Errorf("chunk-overlap must not be negative"))
	}
	if o.ChunkOverlap >= o.ChunkSize {
		errs = append(errs, fmt.Errorf("chunk-overlap must be smaller than chunk-size"))
	}
	if o.Collection == "" {
		errs = append(errs, fmt.Errorf("collection is required"))
	}
	if o.EmbeddingDim <= 0 {
		errs = append(errs, fmt.Errorf("embedding-dim must be positive"))
	}
	if o.EmbedBatchSize <= 0 {
		errs = append(errs, fmt.Errorf("embed-batch-size must be positive"))
	}
	return errs
}

// Complete completes the ingestion options with defaults.
func (o *Options) Complete() error {
	if o.DataDir == "" {
		o.DataDir = "_output/docquery-data"
	}
	return nil
}
