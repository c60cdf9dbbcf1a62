package redis

import (
	"context"
	"fmt"

	"github.com/kart-io/docquery/pkg/component/storage"
)

// Factory implements the storage.Factory interface for creating Redis clients.
type Factory struct {
	opts *Options
}

var _ storage.Factory = (*Factory)(nil)

// NewFactory creates a new Redis client factory with the provided options.
func NewFactory(opts *Options) *Factory {
	return &Factory{
		opts: opts,
	}
}

// Create creates and initializes a new Redis client. The configuration is
// validated and connectivity verified before the client is returned.
func (f *Factory) Create(ctx context.Context) (storage.Client, error) {
	if f.opts == nil {
		return nil, fmt.Errorf("redis options cannot be nil")
	}

	client, err := NewWithContext(ctx, f.opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}

	return client, nil
}

// Options returns the Redis options used by this factory.
func (f *Factory) Options() *Options {
	return f.opts
}
