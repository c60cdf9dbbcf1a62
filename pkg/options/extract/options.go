// Package extract provides text extraction configuration options.
package extract

import (
	"fmt"
	"time"

	"github.com/kart-io/docquery/pkg/options"
	"github.com/spf13/pflag"
)

var _ options.IOptions = (*Options)(nil)

// Options contains text extraction configuration.
type Options struct {
	// OCRBaseURL OCR 服务地址。
	OCRBaseURL string `json:"ocr-base-url" mapstructure:"ocr-base-url"`

	// OCRLanguage OCR 识别语言。
	OCRLanguage string `json:"ocr-language" mapstructure:"ocr-language"`

	// OCRTimeout OCR 请求超时时间。
	OCRTimeout time.Duration `json:"ocr-timeout" mapstructure:"ocr-timeout"`

	// OCRMaxRetries OCR 最大重试次数。
	OCRMaxRetries int `json:"ocr-max-retries" mapstructure:"ocr-max-retries"`
}

// NewOptions creates new Options with defaults.
func NewOptions() *Options {
	return &Options{
		OCRBaseURL:    "http://localhost:8884",
		OCRLanguage:   "eng",
		OCRTimeout:    180 * time.Second,
		OCRMaxRetries: 2,
	}
}

// AddFlags adds flags for extraction options to the specified FlagSet.
func (o *Options) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.OCRBaseURL, options.Join(prefixes...)+"extract.ocr-base-url", o.OCRBaseURL, "OCR service base URL.")
	fs.StringVar(&o.OCRLanguage, options.Join(prefixes...)+"extract.ocr-language", o.OCRLanguage, "OCR recognition language.")
	fs.DurationVar(&o.OCRTimeout, options.Join(prefixes...)+"extract.ocr-timeout", o.OCRTimeout, "OCR request timeout.")
	fs.IntVar(&o.OCRMaxRetries, options.Join(prefixes...)+"extract.ocr-max-retries", o.OCRMaxRetries, "OCR maximum number of retries.")
}

// Validate validates the extraction options.
func (o *Options) Validate() []error {
	if o == nil {
		return nil
	}

	var errs []error
	if o.OCRBaseURL == "" {
		errs = append(errs, fmt.Errorf("ocr-base-url is required"))
	}
	if o.OCRTimeout <= 0 {
		errs = append(errs, fmt.Errorf("ocr-timeout must be positive"))
	}
	return errs
}

// Complete completes the extraction options with defaults.
func (o *Options) Complete() error {
	if o.OCRLanguage == "" {
		o.OCRLanguage = "eng"
	}
	return nil
}
