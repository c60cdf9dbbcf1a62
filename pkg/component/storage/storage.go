// Package storage provides a unified interface for storage backends and a
// registry with centralized health checking and lifecycle management.
package storage

import (
	"context"
	"time"
)

// Client is the base interface implemented by all storage clients
// (PostgreSQL, Redis, Milvus).
type Client interface {
	// Name returns the storage backend name.
	Name() string

	// Ping verifies connectivity to the backend.
	Ping(ctx context.Context) error

	// Close releases the connection and associated resources.
	Close() error

	// Health returns a health checker function for this client.
	Health() HealthChecker
}

// HealthChecker is a function that verifies backend connectivity.
type HealthChecker func() error

// HealthStatus describes the outcome of a health check.
type HealthStatus struct {
	Name    string        `json:"name"`
	Healthy bool          `json:"healthy"`
	Latency time.Duration `json:"latency"`
	Error   error         `json:"-"`
}

// Factory creates storage clients.
type Factory interface {
	Create(ctx context.Context) (Client, error)
}
