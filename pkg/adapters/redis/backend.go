// Package redis stores notebook documents as Redis string values.
package redis

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/aretw0/quire/pkg/core"
)

// Client is the subset of redis.Cmdable the backend needs.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Backend implements core.Backend with one Redis key per resource.
type Backend struct {
	client Client
	prefix string
	logger *zap.Logger
}

// Option configures a Backend.
type Option func(*Backend)

// WithKeyPrefix namespaces every resource key (e.g. "quire:").
func WithKeyPrefix(prefix string) Option {
	return func(b *Backend) {
		b.prefix = prefix
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Backend) {
		b.logger = logger
	}
}

// New wraps an existing client.
func New(client Client, opts ...Option) *Backend {
	b := &Backend{client: client, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Backend) key(name string) string {
	return b.prefix + name
}

// Read returns the stored value, or core.ErrNotFound if the key is absent.
func (b *Backend) Read(ctx context.Context, name string) ([]byte, error) {
	data, err := b.client.Get(ctx, b.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "redis")
	}
	return data, nil
}

// Write stores data without expiry.
func (b *Backend) Write(ctx context.Context, name string, data []byte) error {
	if err := b.client.Set(ctx, b.key(name), data, 0).Err(); err != nil {
		return errors.Wrap(err, "redis")
	}
	b.logger.Debug("stored notebook in redis", zap.String("key", b.key(name)), zap.Int("bytes", len(data)))
	return nil
}

// ComponentType implements introspection.Component.
func (b *Backend) ComponentType() string {
	return "redis"
}

var _ core.Backend = (*Backend)(nil)
