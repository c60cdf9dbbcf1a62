package postgres

import (
	"context"
	"fmt"

	"github.com/kart-io/docquery/pkg/component/storage"
)

// Factory implements the storage.Factory interface for creating
// PostgreSQL clients.
type Factory struct {
	opts *Options
}

var _ storage.Factory = (*Factory)(nil)

// NewFactory creates a new PostgreSQL client factory with the provided options.
func NewFactory(opts *Options) *Factory {
	return &Factory{
		opts: opts,
	}
}

// Create creates and initializes a new PostgreSQL client. The configuration
// is validated and connectivity verified before the client is returned.
func (f *Factory) Create(ctx context.Context) (storage.Client, error) {
	if f.opts == nil {
		return nil, fmt.Errorf("postgres options cannot be nil")
	}

	client, err := NewWithContext(ctx, f.opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres client: %w", err)
	}

	return client, nil
}

// Options returns the PostgreSQL options used by this factory.
func (f *Factory) Options() *Options {
	return f.opts
}
