// Package extract 提供统一的文档文本提取抽象层。
// 不同格式（PDF、扫描图片等）由各自的提取供应商实现。
package extract

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Extractor 定义文本提取供应商接口。
type Extractor interface {
	// Extract 从原始文件数据中提取纯文本。
	Extract(ctx context.Context, data []byte) (string, error)

	// Formats 返回该供应商支持的扩展名（带点、小写，如 ".pdf"）。
	Formats() []string

	// Name 返回供应商名称。
	Name() string
}

// ExtractorFactory 提取供应商工厂函数类型。
type ExtractorFactory func(config map[string]any) (Extractor, error)

var registry = struct {
	mu        sync.RWMutex
	factories map[string]ExtractorFactory
}{
	factories: make(map[string]ExtractorFactory),
}

// RegisterExtractor 注册提取供应商工厂。
func RegisterExtractor(name string, factory ExtractorFactory) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.factories[name] = factory
}

// NewExtractor 根据名称创建提取供应商实例。
func NewExtractor(name string, config map[string]any) (Extractor, error) {
	registry.mu.RLock()
	factory, ok := registry.factories[name]
	registry.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown extractor: %s", name)
	}
	return factory(config)
}

// ListExtractors 列出所有已注册的提取供应商名称。
func ListExtractors() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	names := make([]string, 0, len(registry.factories))
	for name := range registry.factories {
		names = append(names, name)
	}
	return names
}

// Set 按扩展名路由到对应的提取供应商。
type Set struct {
	byFormat map[string]Extractor
}

// NewSet 构建提取器集合。后注册的供应商覆盖相同扩展名。
func NewSet(extractors ...Extractor) *Set {
	s := &Set{byFormat: make(map[string]Extractor)}
	for _, e := range extractors {
		for _, f := range e.Formats() {
			s.byFormat[strings.ToLower(f)] = e
		}
	}
	return s
}

// Supports 判断扩展名是否被任一供应商支持。
func (s *Set) Supports(ext string) bool {
	_, ok := s.byFormat[strings.ToLower(ext)]
	return ok
}

// SupportedFormats 返回所有支持的扩展名。
func (s *Set) SupportedFormats() []string {
	formats := make([]string, 0, len(s.byFormat))
	for f := range s.byFormat {
		formats = append(formats, f)
	}
	return formats
}

// Extract 按扩展名选择供应商并提取文本。
func (s *Set) Extract(ctx context.Context, ext string, data []byte) (string, error) {
	e, ok := s.byFormat[strings.ToLower(ext)]
	if !ok {
		return "", fmt.Errorf("unsupported format: %s", ext)
	}
	return e.Extract(ctx, data)
}
