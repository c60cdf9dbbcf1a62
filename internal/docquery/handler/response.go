// Package handler provides HTTP handlers for the document QA service.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kart-io/docquery/pkg/errors"
)

// Response is the standard response envelope.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// writeSuccess writes a success envelope.
func writeSuccess(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Code:    errors.OK.Code,
		Message: "success",
		Data:    data,
	})
}

// writeError writes an error envelope with the HTTP status carried by the
// error code.
func writeError(c *gin.Context, err error) {
	e := errors.FromError(err)
	c.JSON(e.HTTPStatus(), Response{
		Code:    e.Code,
		Message: e.Message("en"),
		Data:    nil,
	})
}
