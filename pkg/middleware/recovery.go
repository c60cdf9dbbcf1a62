package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	"github.com/kart-io/docquery/pkg/errors"
)

// RecoveryConfig defines the config for Recovery middleware.
type RecoveryConfig struct {
	// EnableStackTrace includes the stack trace in the log entry.
	EnableStackTrace bool

	// OnPanic is called when a panic occurs, after logging.
	OnPanic func(c *gin.Context, err interface{})
}

// DefaultRecoveryConfig is the default Recovery middleware config.
var DefaultRecoveryConfig = RecoveryConfig{
	EnableStackTrace: true,
}

// Recovery returns a middleware that recovers from panics and responds
// with a generic 500 envelope.
func Recovery() gin.HandlerFunc {
	return RecoveryWithConfig(DefaultRecoveryConfig)
}

// RecoveryWithConfig returns a Recovery middleware with custom config.
func RecoveryWithConfig(config RecoveryConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				fields := []interface{}{
					"error", err,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
				}
				if requestID := GetRequestID(c); requestID != "" {
					fields = append(fields, "request_id", requestID)
				}
				if config.EnableStackTrace {
					fields = append(fields, "stack", string(debug.Stack()))
				}
				logger.Errorw("panic recovered", fields...)

				if config.OnPanic != nil {
					config.OnPanic(c, err)
				}

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"code":    errors.ErrInternal.Code,
					"message": errors.ErrInternal.MessageEN,
					"data":    nil,
				})
			}
		}()

		c.Next()
	}
}
