// Package middleware provides gin middleware shared by docquery HTTP servers.
package middleware

import "github.com/gin-gonic/gin"

// HeaderXRequestID is the canonical request ID header.
const HeaderXRequestID = "X-Request-ID"

// Options contains middleware configuration.
type Options struct {
	// Recovery options
	Recovery        RecoveryConfig
	DisableRecovery bool

	// RequestID options
	RequestID        RequestIDConfig
	DisableRequestID bool

	// Logger options
	Logger        LoggerConfig
	DisableLogger bool

	// CORS options
	CORS        CORSConfig
	DisableCORS bool
}

// Option is a function that configures Options.
type Option func(*Options)

// NewOptions creates default middleware options.
func NewOptions() *Options {
	return &Options{
		Recovery:  DefaultRecoveryConfig,
		RequestID: DefaultRequestIDConfig,
		Logger:    DefaultLoggerConfig,
		CORS:      DefaultCORSConfig,

		DisableCORS: true, // CORS disabled by default
	}
}

// WithoutRecovery disables recovery middleware.
func WithoutRecovery() Option {
	return func(o *Options) {
		o.DisableRecovery = true
	}
}

// WithoutRequestID disables request ID middleware.
func WithoutRequestID() Option {
	return func(o *Options) {
		o.DisableRequestID = true
	}
}

// WithoutLogger disables logger middleware.
func WithoutLogger() Option {
	return func(o *Options) {
		o.DisableLogger = true
	}
}

// WithCORS enables CORS middleware.
func WithCORS(origins ...string) Option {
	return func(o *Options) {
		o.DisableCORS = false
		if len(origins) > 0 {
			o.CORS.AllowOrigins = origins
		}
	}
}

// ApplyOptions applies the given options to the Options.
func (o *Options) ApplyOptions(opts ...Option) {
	for _, opt := range opts {
		opt(o)
	}
}

// Handlers builds the gin middleware chain in execution order.
func (o *Options) Handlers() []gin.HandlerFunc {
	var chain []gin.HandlerFunc
	if !o.DisableRecovery {
		chain = append(chain, RecoveryWithConfig(o.Recovery))
	}
	if !o.DisableRequestID {
		chain = append(chain, RequestIDWithConfig(o.RequestID))
	}
	if !o.DisableLogger {
		chain = append(chain, LoggerWithConfig(o.Logger))
	}
	if !o.DisableCORS {
		chain = append(chain, CORSWithConfig(o.CORS))
	}
	return chain
}
