// Package router wires the document QA HTTP routes.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	"github.com/kart-io/docquery/internal/docquery/handler"
)

// Register registers all service routes on the engine.
func Register(engine *gin.Engine, docs *handler.DocumentHandler, qa *handler.QAHandler, health *handler.HealthHandler) {
	logger.Info("Registering routes...")

	engine.GET("/healthz", health.Check)

	v1 := engine.Group("/v1")
	{
		documents := v1.Group("/documents")
		{
			documents.POST("/upload", docs.Upload)
			documents.GET("", docs.List)
			documents.GET("/:id", docs.Get)
			documents.DELETE("/:id", docs.Delete)
			documents.POST("/:id/question", qa.AskDocument)
		}

		qaGroup := v1.Group("/qa")
		{
			qaGroup.POST("/question", qa.Ask)
			qaGroup.GET("/stats", qa.Stats)
		}
	}

	logger.Info("HTTP routes registered")
}
