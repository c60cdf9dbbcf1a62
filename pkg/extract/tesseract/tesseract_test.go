package tesseract_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kart-io/docquery/pkg/extract/tesseract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExtractor(t *testing.T, handler http.HandlerFunc) *tesseract.Extractor {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := tesseract.DefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.Timeout = 5 * time.Second
	cfg.MaxRetries = 0
	return tesseract.NewExtractorWithConfig(cfg)
}

func TestExtractSendsBase64Image(t *testing.T) {
	raw := []byte{0x89, 0x50, 0x4e, 0x47}

	e := newTestExtractor(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ocr", r.URL.Path)

		var req struct {
			Image    string `json:"image"`
			Language string `json:"language"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, base64.StdEncoding.EncodeToString(raw), req.Image)
		assert.Equal(t, "eng", req.Language)

		_ = json.NewEncoder(w).Encode(map[string]string{"text": "recognized text"})
	})

	text, err := e.Extract(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "recognized text", text)
}

func TestExtractServiceError(t *testing.T) {
	e := newTestExtractor(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "engine crashed"})
	})

	_, err := e.Extract(context.Background(), []byte("img"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "engine crashed")
}

func TestFormats(t *testing.T) {
	e := tesseract.NewExtractorWithConfig(tesseract.DefaultConfig())
	assert.ElementsMatch(t, []string{".png", ".jpg", ".jpeg", ".tiff", ".bmp"}, e.Formats())
}
