// Package tesseract 提供基于 Tesseract OCR HTTP 服务的图片文本提取供应商。
// 图片以 base64 编码提交到 OCR 服务，返回识别出的纯文本。
package tesseract

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/kart-io/docquery/pkg/extract"
	"github.com/kart-io/docquery/pkg/utils/httpclient"
)

// ExtractorName 是 OCR 提取供应商的名称标识符
const ExtractorName = "tesseract"

func init() {
	extract.RegisterExtractor(ExtractorName, NewExtractor)
}

// Config Tesseract OCR 服务配置。
type Config struct {
	// BaseURL OCR 服务地址。
	BaseURL string `json:"base_url" mapstructure:"base_url"`

	// Language 识别语言，传给 tesseract 的 -l 参数。
	Language string `json:"language" mapstructure:"language"`

	// Timeout 请求超时时间。OCR 较慢，默认放宽。
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`

	// MaxRetries 最大重试次数。
	MaxRetries int `json:"max_retries" mapstructure:"max_retries"`
}

// DefaultConfig 返回默认配置。
func DefaultConfig() *Config {
	return &Config{
		BaseURL:    "http://localhost:8884",
		Language:   "eng",
		Timeout:    180 * time.Second,
		MaxRetries: 2,
	}
}

// Extractor 调用 OCR 服务识别扫描图片。
type Extractor struct {
	config *Config
	client *httpclient.Client
}

var _ extract.Extractor = (*Extractor)(nil)

// NewExtractor 从配置 map 创建 OCR 提取供应商。
func NewExtractor(configMap map[string]any) (extract.Extractor, error) {
	cfg := DefaultConfig()

	if v, ok := configMap["base_url"].(string); ok && v != "" {
		cfg.BaseURL = v
	}
	if v, ok := configMap["language"].(string); ok && v != "" {
		cfg.Language = v
	}
	if v, ok := configMap["timeout"].(time.Duration); ok && v > 0 {
		cfg.Timeout = v
	}
	if v, ok := configMap["max_retries"].(int); ok && v > 0 {
		cfg.MaxRetries = v
	}

	return NewExtractorWithConfig(cfg), nil
}

// NewExtractorWithConfig 使用结构化配置创建 OCR 提取供应商。
func NewExtractorWithConfig(cfg *Config) *Extractor {
	return &Extractor{
		config: cfg,
		client: httpclient.NewClient(cfg.Timeout, cfg.MaxRetries),
	}
}

// Name 返回供应商名称。
func (e *Extractor) Name() string {
	return ExtractorName
}

// Formats 返回支持的扩展名。
func (e *Extractor) Formats() []string {
	return []string{".png", ".jpg", ".jpeg", ".tiff", ".bmp"}
}

// ocrRequest OCR 服务请求体。
type ocrRequest struct {
	Image    string `json:"image"`
	Language string `json:"language,omitempty"`
}

// ocrResponse OCR 服务响应体。
type ocrResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

// Extract 将图片提交到 OCR 服务并返回识别文本。
func (e *Extractor) Extract(ctx context.Context, data []byte) (string, error) {
	reqBody := ocrRequest{
		Image:    base64.StdEncoding.EncodeToString(data),
		Language: e.config.Language,
	}

	var ocrResp ocrResponse
	if err := e.client.PostJSON(ctx, e.config.BaseURL+"/ocr", nil, reqBody, &ocrResp); err != nil {
		return "", fmt.Errorf("OCR 请求失败: %w", err)
	}
	if ocrResp.Error != "" {
		return "", fmt.Errorf("OCR 识别失败: %s", ocrResp.Error)
	}

	return ocrResp.Text, nil
}
