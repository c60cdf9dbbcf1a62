package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kart-io/docquery/internal/docquery/biz"
	"github.com/kart-io/docquery/internal/model"
	apierrors "github.com/kart-io/docquery/pkg/errors"
)

// askTimeout 单次问答的超时时间，生成阶段是主要延迟来源。
const askTimeout = 120 * time.Second

// QAHandler handles question answering HTTP requests.
type QAHandler struct {
	service biz.Service
}

// NewQAHandler creates a new QAHandler.
func NewQAHandler(service biz.Service) *QAHandler {
	return &QAHandler{service: service}
}

// askRequest 问答请求体。DocumentID 可选，用于限定检索范围。
type askRequest struct {
	Question   string  `json:"question" binding:"required"`
	DocumentID *uint64 `json:"document_id"`
	MaxChunks  int     `json:"max_chunks"`
}

// Ask 回答问题，请求体携带 document_id 时只在该文档范围内检索。
func (h *QAHandler) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apierrors.ErrBadRequest.WithCause(err))
		return
	}

	h.answer(c, &model.AskRequest{
		Question:   req.Question,
		DocumentID: req.DocumentID,
		MaxChunks:  req.MaxChunks,
	})
}

// AskDocument 只在指定文档范围内回答问题。
func (h *QAHandler) AskDocument(c *gin.Context) {
	id, ok := parseDocumentID(c)
	if !ok {
		return
	}

	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apierrors.ErrBadRequest.WithCause(err))
		return
	}

	h.answer(c, &model.AskRequest{
		Question:   req.Question,
		DocumentID: &id,
		MaxChunks:  req.MaxChunks,
	})
}

func (h *QAHandler) answer(c *gin.Context, req *model.AskRequest) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), askTimeout)
	defer cancel()

	answer, err := h.service.Ask(ctx, req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			writeError(c, apierrors.ErrTimeout.WithMessage("answering took too long, try a simpler question"))
			return
		}
		writeError(c, err)
		return
	}

	writeSuccess(c, answer)
}

// Stats 返回向量索引统计信息。
func (h *QAHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	writeSuccess(c, stats)
}
