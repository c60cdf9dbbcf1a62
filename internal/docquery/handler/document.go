package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kart-io/docquery/internal/docquery/biz"
	apierrors "github.com/kart-io/docquery/pkg/errors"
)

// DocumentHandler handles document lifecycle HTTP requests.
type DocumentHandler struct {
	service        biz.Service
	maxUploadBytes int64
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(service biz.Service, maxUploadBytes int64) *DocumentHandler {
	return &DocumentHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
	}
}

// Upload 接收 multipart 文件上传并入库。
func (h *DocumentHandler) Upload(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(c, apierrors.ErrRequestTooLarge)
			return
		}
		writeError(c, apierrors.ErrBadRequest.WithMessage("multipart field \"file\" is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(c, apierrors.ErrRequestTooLarge)
			return
		}
		writeError(c, apierrors.ErrBadRequest.WithCause(err))
		return
	}

	result, err := h.service.Upload(c.Request.Context(), header.Filename, data)
	if err != nil {
		writeError(c, err)
		return
	}

	writeSuccess(c, result)
}

// List 返回所有文档摘要。
func (h *DocumentHandler) List(c *gin.Context) {
	summaries, err := h.service.ListDocuments(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	writeSuccess(c, summaries)
}

// Get 返回单个文档详情。
func (h *DocumentHandler) Get(c *gin.Context) {
	id, ok := parseDocumentID(c)
	if !ok {
		return
	}

	detail, err := h.service.GetDocument(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if detail == nil {
		writeError(c, apierrors.ErrDocumentNotFound)
		return
	}
	writeSuccess(c, detail)
}

// Delete 删除文档及其全部片段。
func (h *DocumentHandler) Delete(c *gin.Context) {
	id, ok := parseDocumentID(c)
	if !ok {
		return
	}

	result, err := h.service.DeleteDocument(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if result == nil {
		writeError(c, apierrors.ErrDocumentNotFound)
		return
	}
	writeSuccess(c, result)
}

// parseDocumentID parses the :id path parameter. Writes an error response
// and returns false on invalid input.
func parseDocumentID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, apierrors.ErrInvalidParam.WithMessage("document id must be a positive integer"))
		return 0, false
	}
	return id, true
}
