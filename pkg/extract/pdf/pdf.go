// Package pdf 提供基于 ledongthuc/pdf 的 PDF 文本提取供应商。
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	ledongthuc "github.com/ledongthuc/pdf"

	"github.com/kart-io/docquery/pkg/extract"
)

// ExtractorName 是 PDF 提取供应商的名称标识符
const ExtractorName = "pdf"

func init() {
	extract.RegisterExtractor(ExtractorName, NewExtractor)
}

// Extractor 逐页提取 PDF 的纯文本。
type Extractor struct{}

var _ extract.Extractor = (*Extractor)(nil)

// NewExtractor 创建 PDF 提取供应商。无需配置。
func NewExtractor(_ map[string]any) (extract.Extractor, error) {
	return &Extractor{}, nil
}

// Name 返回供应商名称。
func (e *Extractor) Name() string {
	return ExtractorName
}

// Formats 返回支持的扩展名。
func (e *Extractor) Formats() []string {
	return []string{".pdf"}
}

// Extract 逐页提取文本，页之间以空行分隔。
// 无法解析的单页跳过，整个文档解析失败才返回错误。
func (e *Extractor) Extract(ctx context.Context, data []byte) (string, error) {
	reader, err := ledongthuc.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("解析 PDF 失败: %w", err)
	}

	var sb strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if strings.TrimSpace(pageText) == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(pageText)
	}

	return sb.String(), nil
}
