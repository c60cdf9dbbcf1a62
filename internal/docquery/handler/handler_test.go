package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/docquery/internal/model"
	apierrors "github.com/kart-io/docquery/pkg/errors"
)

// fakeService 记录调用参数并返回预设结果。
type fakeService struct {
	uploadResult *model.UploadResult
	uploadErr    error
	uploadName   string

	detail    *model.DocumentDetail
	summaries []model.DocumentSummary

	deleteResult *model.DeleteResult

	answer   *model.Answer
	askReq   *model.AskRequest
	stats    *model.IndexStats
	statsErr error
}

func (f *fakeService) Upload(_ context.Context, fileName string, _ []byte) (*model.UploadResult, error) {
	f.uploadName = fileName
	return f.uploadResult, f.uploadErr
}

func (f *fakeService) GetDocument(context.Context, uint64) (*model.DocumentDetail, error) {
	return f.detail, nil
}

func (f *fakeService) ListDocuments(context.Context) ([]model.DocumentSummary, error) {
	return f.summaries, nil
}

func (f *fakeService) DeleteDocument(context.Context, uint64) (*model.DeleteResult, error) {
	return f.deleteResult, nil
}

func (f *fakeService) Ask(_ context.Context, req *model.AskRequest) (*model.Answer, error) {
	f.askReq = req
	return f.answer, nil
}

func (f *fakeService) Stats(context.Context) (*model.IndexStats, error) {
	return f.stats, f.statsErr
}

func newTestRouter(svc *fakeService, maxUpload int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	docs := NewDocumentHandler(svc, maxUpload)
	qa := NewQAHandler(svc)

	engine.POST("/v1/documents/upload", docs.Upload)
	engine.GET("/v1/documents", docs.List)
	engine.GET("/v1/documents/:id", docs.Get)
	engine.DELETE("/v1/documents/:id", docs.Delete)
	engine.POST("/v1/documents/:id/question", qa.AskDocument)
	engine.POST("/v1/qa/question", qa.Ask)
	engine.GET("/v1/qa/stats", qa.Stats)

	return engine
}

func multipartBody(t *testing.T, field, fileName string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, fileName)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestUploadSuccess(t *testing.T) {
	svc := &fakeService{
		uploadResult: &model.UploadResult{
			ID:            1,
			FileName:      "report.pdf",
			RAGProcessing: model.RAGProcessing{ChunksCreated: 4, Status: "success"},
		},
	}
	router := newTestRouter(svc, 32<<20)

	body, contentType := multipartBody(t, "file", "report.pdf", []byte("%PDF-raw"))
	req := httptest.NewRequest(http.MethodPost, "/v1/documents/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "report.pdf", svc.uploadName)

	resp := decodeEnvelope(t, rec)
	assert.Equal(t, 0, resp.Code)
}

func TestUploadMissingFileField(t *testing.T) {
	router := newTestRouter(&fakeService{}, 32<<20)

	body, contentType := multipartBody(t, "attachment", "report.pdf", []byte("data"))
	req := httptest.NewRequest(http.MethodPost, "/v1/documents/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadTooLarge(t *testing.T) {
	router := newTestRouter(&fakeService{}, 16)

	body, contentType := multipartBody(t, "file", "big.pdf", bytes.Repeat([]byte("x"), 1024))
	req := httptest.NewRequest(http.MethodPost, "/v1/documents/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Equal(t, apierrors.ErrRequestTooLarge.Code, resp.Code)
}

func TestUploadUnsupportedFormat(t *testing.T) {
	svc := &fakeService{uploadErr: apierrors.ErrUnsupportedMediaType}
	router := newTestRouter(svc, 32<<20)

	body, contentType := multipartBody(t, "file", "notes.docx", []byte("data"))
	req := httptest.NewRequest(http.MethodPost, "/v1/documents/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestGetDocumentNotFound(t *testing.T) {
	router := newTestRouter(&fakeService{}, 0)

	req := httptest.NewRequest(http.MethodGet, "/v1/documents/42", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Equal(t, apierrors.ErrDocumentNotFound.Code, resp.Code)
}

func TestGetDocumentInvalidID(t *testing.T) {
	router := newTestRouter(&fakeService{}, 0)

	req := httptest.NewRequest(http.MethodGet, "/v1/documents/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteDocument(t *testing.T) {
	svc := &fakeService{deleteResult: &model.DeleteResult{Deleted: true, DocumentID: 7, ChunksRemoved: 12}}
	router := newTestRouter(svc, 0)

	req := httptest.NewRequest(http.MethodDelete, "/v1/documents/7", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"deleted":true`)
	assert.Contains(t, rec.Body.String(), `"chunks_removed":12`)
}

func TestAskScopedToDocument(t *testing.T) {
	svc := &fakeService{answer: &model.Answer{Answer: "yes", Method: "retrieval_qa"}}
	router := newTestRouter(svc, 0)

	req := httptest.NewRequest(http.MethodPost, "/v1/documents/9/question",
		strings.NewReader(`{"question":"What is the total?","max_chunks":5}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.askReq)
	require.NotNil(t, svc.askReq.DocumentID)
	assert.Equal(t, uint64(9), *svc.askReq.DocumentID)
	assert.Equal(t, 5, svc.askReq.MaxChunks)
}

func TestAskUnscoped(t *testing.T) {
	svc := &fakeService{answer: &model.Answer{Answer: "yes"}}
	router := newTestRouter(svc, 0)

	req := httptest.NewRequest(http.MethodPost, "/v1/qa/question",
		strings.NewReader(`{"question":"Anything indexed?"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.askReq)
	assert.Nil(t, svc.askReq.DocumentID)
}

func TestAskBodyDocumentIDScopesRetrieval(t *testing.T) {
	svc := &fakeService{answer: &model.Answer{Answer: "yes", Method: "retrieval_qa"}}
	router := newTestRouter(svc, 0)

	req := httptest.NewRequest(http.MethodPost, "/v1/qa/question",
		strings.NewReader(`{"question":"What is the total?","document_id":7,"max_chunks":3}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.askReq)
	require.NotNil(t, svc.askReq.DocumentID)
	assert.Equal(t, uint64(7), *svc.askReq.DocumentID)
	assert.Equal(t, 3, svc.askReq.MaxChunks)
}

func TestAskMissingQuestionBody(t *testing.T) {
	router := newTestRouter(&fakeService{}, 0)

	req := httptest.NewRequest(http.MethodPost, "/v1/qa/question", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStats(t *testing.T) {
	svc := &fakeService{stats: &model.IndexStats{TotalChunks: 100, TotalDocuments: 5, Collection: "documents"}}
	router := newTestRouter(svc, 0)

	req := httptest.NewRequest(http.MethodGet, "/v1/qa/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_chunks":100`)
}

func TestStatsUnavailable(t *testing.T) {
	svc := &fakeService{statsErr: apierrors.ErrIndexUnavailable}
	router := newTestRouter(svc, 0)

	req := httptest.NewRequest(http.MethodGet, "/v1/qa/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
