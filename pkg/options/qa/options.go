// Package qa provides question answering configuration options.
package qa

import (
	"fmt"
	"strings"
	"time"

	"github.com/kart-io/docquery/pkg/options"
	"github.com/spf13/pflag"
)

var _ options.IOptions = (*Options)(nil)

// Options contains question answering configuration.
type Options struct {
	// MaxChunks is the default number of chunks retrieved per question.
	MaxChunks int `json:"max-chunks" mapstructure:"max-chunks"`

	// MaxChunksLimit is the upper bound a caller may request.
	MaxChunksLimit int `json:"max-chunks-limit" mapstructure:"max-chunks-limit"`

	// ContextBudget 拼接上下文的最大字符数（按 rune 计）。
	ContextBudget int `json:"context-budget" mapstructure:"context-budget"`

	// PromptTemplate is the prompt template for answer generation.
	PromptTemplate string `json:"prompt-template" mapstructure:"prompt-template"`

	// Cache 答案缓存配置。
	Cache *CacheOptions `json:"cache" mapstructure:"cache"`
}

// CacheOptions 答案缓存配置。
type CacheOptions struct {
	// Enabled 是否启用答案缓存。
	Enabled bool `json:"enabled" mapstructure:"enabled"`

	// TTL 缓存条目的存活时间。
	TTL time.Duration `json:"ttl" mapstructure:"ttl"`
}

// DefaultPromptTemplate is the default prompt for answer generation.
const DefaultPromptTemplate = `Answer the question using only the provided context. If the context does not contain the answer, say so.

Context:
{{context}}

Question: {{question}}

Answer:`

// NewCacheOptions 创建默认答案缓存配置。
func NewCacheOptions() *CacheOptions {
	return &CacheOptions{
		Enabled: false, // 默认关闭，需显式开启
		TTL:     time.Hour,
	}
}

// NewOptions creates new Options with defaults.
func NewOptions() *Options {
	return &Options{
		MaxChunks:      3,
		MaxChunksLimit: 20,
		ContextBudget:  8000,
		PromptTemplate: DefaultPromptTemplate,
		Cache:          NewCacheOptions(),
	}
}

// AddFlags adds flags for QA options to the specified FlagSet.
func (o *Options) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.IntVar(&o.MaxChunks, options.Join(prefixes...)+"qa.max-chunks", o.MaxChunks, "Default number of chunks retrieved per question.")
	fs.IntVar(&o.MaxChunksLimit, options.Join(prefixes...)+"qa.max-chunks-limit", o.MaxChunksLimit, "Upper bound on chunks a caller may request.")
	fs.IntVar(&o.ContextBudget, options.Join(prefixes...)+"qa.context-budget", o.ContextBudget, "Maximum context size in runes.")

	if o.Cache == nil {
		o.Cache = NewCacheOptions()
	}
	fs.BoolVar(&o.Cache.Enabled, options.Join(prefixes...)+"qa.cache.enabled", o.Cache.Enabled, "Enable answer caching.")
	fs.DurationVar(&o.Cache.TTL, options.Join(prefixes...)+"qa.cache.ttl", o.Cache.TTL, "Answer cache entry TTL.")
}

// Validate validates the QA options.
func (o *Options) Validate() []error {
	if o == nil {
		return nil
	}

	var errs []error
	if o.MaxChunks <= 0 {
		errs = append(errs, fmt.Errorf("max-chunks must be positive"))
	}
	if o.MaxChunksLimit < o.MaxChunks {
		errs = append(errs, fmt.Errorf("max-chunks-limit must not be smaller than max-chunks"))
	}
	if o.ContextBudget <= 0 {
		errs = append(errs, fmt.Errorf("context-budget must be positive"))
	}
	if !strings.Contains(o.PromptTemplate, "{{context}}") || !strings.Contains(o.PromptTemplate, "{{question}}") {
		errs = append(errs, fmt.Errorf("prompt-template must contain {{context}} and {{question}} placeholders"))
	}
	return errs
}

// Complete completes the QA options with defaults.
func (o *Options) Complete() error {
	if o.Cache == nil {
		o.Cache = NewCacheOptions()
	}
	if o.PromptTemplate == "" {
		o.PromptTemplate = DefaultPromptTemplate
	}
	return nil
}
