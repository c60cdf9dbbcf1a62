// Package app provides the document QA service application.
package app

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/kart-io/docquery/pkg/component/postgres"
	"github.com/kart-io/docquery/pkg/component/redis"
	extractopts "github.com/kart-io/docquery/pkg/options/extract"
	httpopts "github.com/kart-io/docquery/pkg/options/http"
	ingestopts "github.com/kart-io/docquery/pkg/options/ingest"
	llmopts "github.com/kart-io/docquery/pkg/options/llm"
	logopts "github.com/kart-io/docquery/pkg/options/logger"
	milvusopts "github.com/kart-io/docquery/pkg/options/milvus"
	qaopts "github.com/kart-io/docquery/pkg/options/qa"
)

// Options contains all document QA service options.
type Options struct {
	// HTTP contains HTTP server configuration.
	HTTP *httpopts.Options `json:"http" mapstructure:"http"`

	// Log contains logger configuration.
	Log *logopts.Options `json:"log" mapstructure:"log"`

	// Postgres contains relational store configuration.
	Postgres *postgres.Options `json:"postgres" mapstructure:"postgres"`

	// Redis contains answer cache store configuration.
	Redis *redis.Options `json:"redis" mapstructure:"redis"`

	// Milvus contains vector index configuration.
	Milvus *milvusopts.Options `json:"milvus" mapstructure:"milvus"`

	// Embedding contains embedding provider configuration.
	Embedding *llmopts.ProviderOptions `json:"embedding" mapstructure:"embedding"`

	// Chat contains chat provider configuration.
	Chat *llmopts.ProviderOptions `json:"chat" mapstructure:"chat"`

	// Ingest contains ingestion pipeline configuration.
	Ingest *ingestopts.Options `json:"ingest" mapstructure:"ingest"`

	// QA contains question answering configuration.
	QA *qaopts.Options `json:"qa" mapstructure:"qa"`

	// Extract contains text extraction configuration.
	Extract *extractopts.Options `json:"extract" mapstructure:"extract"`
}

// NewOptions creates new Options with defaults.
func NewOptions() *Options {
	return &Options{
		HTTP:      httpopts.NewOptions(),
		Log:       logopts.NewOptions(),
		Postgres:  postgres.NewOptions(),
		Redis:     redis.NewOptions(),
		Milvus:    milvusopts.NewOptions(),
		Embedding: llmopts.NewEmbeddingOptions(),
		Chat:      llmopts.NewChatOptions(),
		Ingest:    ingestopts.NewOptions(),
		QA:        qaopts.NewOptions(),
		Extract:   extractopts.NewOptions(),
	}
}

// AddFlags adds flags to the flagset.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	o.HTTP.AddFlags(fs)
	o.Log.AddFlags(fs)
	o.Postgres.AddFlags(fs, "postgres.")
	o.Redis.AddFlags(fs, "redis.")
	o.Milvus.AddFlags(fs)
	o.Embedding.AddFlags(fs)
	o.Chat.AddFlags(fs)
	o.Ingest.AddFlags(fs)
	o.QA.AddFlags(fs)
	o.Extract.AddFlags(fs)
}

// Validate validates the options.
func (o *Options) Validate() error {
	if err := o.Log.Validate(); err != nil {
		return err
	}
	if err := o.HTTP.Validate(); err != nil {
		return err
	}
	if err := o.Postgres.Validate(); err != nil {
		return err
	}
	if o.QA.Cache != nil && o.QA.Cache.Enabled {
		if err := o.Redis.Validate(); err != nil {
			return err
		}
	}
	if errs := o.Milvus.Validate(); len(errs) > 0 {
		return fmt.Errorf("invalid milvus options: %v", errs)
	}
	if errs := o.Embedding.Validate(); len(errs) > 0 {
		return fmt.Errorf("invalid embedding options: %v", errs)
	}
	if errs := o.Chat.Validate(); len(errs) > 0 {
		return fmt.Errorf("invalid chat options: %v", errs)
	}
	if errs := o.Ingest.Validate(); len(errs) > 0 {
		return fmt.Errorf("invalid ingest options: %v", errs)
	}
	if errs := o.QA.Validate(); len(errs) > 0 {
		return fmt.Errorf("invalid qa options: %v", errs)
	}
	if errs := o.Extract.Validate(); len(errs) > 0 {
		return fmt.Errorf("invalid extract options: %v", errs)
	}
	return nil
}

// Complete completes the options.
func (o *Options) Complete() error {
	if err := o.HTTP.Complete(); err != nil {
		return err
	}
	if err := o.Postgres.Complete(); err != nil {
		return err
	}
	if err := o.Redis.Complete(); err != nil {
		return err
	}
	if err := o.Embedding.Complete(); err != nil {
		return err
	}
	if err := o.Chat.Complete(); err != nil {
		return err
	}
	if err := o.Ingest.Complete(); err != nil {
		return err
	}
	if err := o.QA.Complete(); err != nil {
		return err
	}
	return o.Extract.Complete()
}
