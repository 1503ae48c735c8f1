// Package webdav stores notebook documents on a WebDAV server.
package webdav

import (
	"context"
	"os"
	"path"

	"github.com/pkg/errors"
	"github.com/studio-b12/gowebdav"
	"go.uber.org/zap"

	"github.com/aretw0/quire/pkg/core"
)

// Client is the subset of *gowebdav.Client the backend uses.
type Client interface {
	Read(path string) ([]byte, error)
	Write(path string, data []byte, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
}

// Config holds the WebDAV connection info.
type Config struct {
	Endpoint string `yaml:"endpoint" validate:"required,url"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	// Dir is the remote directory documents are written into.
	Dir string `yaml:"dir"`
}

// Backend implements core.Backend over WebDAV.
type Backend struct {
	client Client
	dir    string
	logger *zap.Logger
}

// New wraps an existing client.
func New(client Client, dir string, logger *zap.Logger) *Backend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Backend{client: client, dir: dir, logger: logger}
}

// NewFromConfig dials the server described by cfg.
func NewFromConfig(cfg Config, logger *zap.Logger) (*Backend, error) {
	c := gowebdav.NewClient(cfg.Endpoint, cfg.User, cfg.Password)
	if err := c.Connect(); err != nil {
		return nil, errors.Wrap(err, "webdav")
	}
	return New(c, cfg.Dir, logger), nil
}

func (b *Backend) remote(name string) string {
	return path.Join("/", b.dir, name)
}

// Read downloads the document. A 404 yields core.ErrNotFound.
func (b *Backend) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := b.client.Read(b.remote(name))
	if err != nil {
		if gowebdav.IsErrNotFound(err) {
			return nil, core.ErrNotFound
		}
		return nil, errors.Wrap(err, "webdav")
	}
	return data, nil
}

// Write uploads data, creating the remote directory first.
func (b *Backend) Write(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.dir != "" {
		if err := b.client.MkdirAll(path.Join("/", b.dir), 0755); err != nil {
			return errors.Wrap(err, "webdav")
		}
	}
	if err := b.client.Write(b.remote(name), data, 0644); err != nil {
		return errors.Wrap(err, "webdav")
	}
	b.logger.Debug("stored notebook on webdav", zap.String("path", b.remote(name)), zap.Int("bytes", len(data)))
	return nil
}

// ComponentType implements introspection.Component.
func (b *Backend) ComponentType() string {
	return "webdav"
}

var _ core.Backend = (*Backend)(nil)
