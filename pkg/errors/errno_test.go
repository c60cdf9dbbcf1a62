package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestMakeCode(t *testing.T) {
	tests := []struct {
		service  int
		category int
		sequence int
		expected int
	}{
		{0, 0, 0, 0},
		{0, 1, 1, 1001},
		{0, 4, 0, 4000},
		{20, 1, 0, 2001000},
		{21, 10, 0, 2110000},
		{90, 10, 1, 9010001},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_%d_%d", tt.service, tt.category, tt.sequence), func(t *testing.T) {
			got := MakeCode(tt.service, tt.category, tt.sequence)
			if got != tt.expected {
				t.Errorf("MakeCode(%d, %d, %d) = %d, want %d",
					tt.service, tt.category, tt.sequence, got, tt.expected)
			}
		})
	}
}

func TestParseCode(t *testing.T) {
	tests := []struct {
		code             int
		expectedService  int
		expectedCategory int
		expectedSequence int
	}{
		{0, 0, 0, 0},
		{1001, 0, 1, 1},
		{2001000, 20, 1, 0},
		{9010001, 90, 10, 1},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d", tt.code), func(t *testing.T) {
			service, category, sequence := ParseCode(tt.code)
			if service != tt.expectedService || category != tt.expectedCategory || sequence != tt.expectedSequence {
				t.Errorf("ParseCode(%d) = (%d, %d, %d), want (%d, %d, %d)",
					tt.code, service, category, sequence,
					tt.expectedService, tt.expectedCategory, tt.expectedSequence)
			}
		})
	}
}

func TestErrnoWithCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := ErrEmbedding.WithCause(cause)

	if err.Code != ErrEmbedding.Code {
		t.Errorf("WithCause changed code: %d != %d", err.Code, ErrEmbedding.Code)
	}
	if Unwrap(err) != cause {
		t.Error("Unwrap should return the cause")
	}
	// 原始 Errno 不应被修改
	if ErrEmbedding.cause != nil {
		t.Error("WithCause must not mutate the registered Errno")
	}
}

func TestErrnoIs(t *testing.T) {
	wrapped := fmt.Errorf("stage embed: %w", ErrEmbedding.WithCause(fmt.Errorf("boom")))
	if !Is(wrapped, ErrEmbedding) {
		t.Error("wrapped capability error should match ErrEmbedding")
	}
	if Is(wrapped, ErrExtraction) {
		t.Error("wrapped capability error should not match ErrExtraction")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil) != nil {
		t.Error("FromError(nil) should be nil")
	}

	plain := fmt.Errorf("plain failure")
	e := FromError(plain)
	if e.Code != ErrInternal.Code {
		t.Errorf("plain error should map to ErrInternal, got %d", e.Code)
	}

	e = FromError(fmt.Errorf("outer: %w", ErrEmptyContent))
	if e.Code != ErrEmptyContent.Code {
		t.Errorf("wrapped Errno should be found, got %d", e.Code)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		errno    *Errno
		expected int
	}{
		{"验证错误", ErrInvalidParam, http.StatusBadRequest},
		{"资源不存在", ErrDocumentNotFound, http.StatusNotFound},
		{"空内容", ErrEmptyContent, http.StatusUnprocessableEntity},
		{"提取失败", ErrExtraction, http.StatusBadGateway},
		{"索引不可用", ErrIndexUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.errno.HTTPStatus(); got != tt.expected {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestIsCode(t *testing.T) {
	if !IsCode(ErrDocumentNotFound, ErrDocumentNotFound.Code) {
		t.Error("IsCode should match same code")
	}
	if IsCode(fmt.Errorf("plain"), ErrDocumentNotFound.Code) {
		t.Error("IsCode should not match plain errors")
	}
}
