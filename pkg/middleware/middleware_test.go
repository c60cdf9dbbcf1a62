package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	e := gin.New()
	e.Use(handlers...)
	return e
}

func TestRequestIDGenerated(t *testing.T) {
	e := newEngine(RequestID())

	var seen string
	e.GET("/ping", func(c *gin.Context) {
		seen = GetRequestID(c)
		c.String(http.StatusOK, "pong")
	})

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(HeaderXRequestID))
}

func TestRequestIDPropagated(t *testing.T) {
	e := newEngine(RequestID())
	e.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderXRequestID, "req-123")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(HeaderXRequestID))
}

func TestRecoveryReturnsEnvelope(t *testing.T) {
	e := newEngine(Recovery())
	e.GET("/boom", func(c *gin.Context) {
		panic("kaboom")
	})

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
}

func TestRecoveryOnPanicHook(t *testing.T) {
	var captured interface{}
	e := newEngine(RecoveryWithConfig(RecoveryConfig{
		OnPanic: func(_ *gin.Context, err interface{}) {
			captured = err
		},
	}))
	e.GET("/boom", func(c *gin.Context) {
		panic("kaboom")
	})

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, "kaboom", captured)
}

func TestCORSPreflight(t *testing.T) {
	e := newEngine(CORS())
	e.POST("/v1/documents", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodOptions, "/v1/documents", nil)
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestCORSDisallowedOrigin(t *testing.T) {
	e := newEngine(CORSWithConfig(CORSConfig{
		AllowOrigins: []string{"http://allowed.example"},
		AllowMethods: []string{"GET"},
	}))
	e.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://other.example")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestOptionsHandlersChain(t *testing.T) {
	opts := NewOptions()
	assert.Len(t, opts.Handlers(), 3) // recovery, request id, logger

	opts.ApplyOptions(WithoutLogger(), WithCORS("http://example.com"))
	assert.Len(t, opts.Handlers(), 3) // recovery, request id, cors
	assert.Equal(t, []string{"http://example.com"}, opts.CORS.AllowOrigins)
}
