// Package fs stores notebook documents as files on the local filesystem.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aretw0/quire/pkg/core"
)

// ErrReadOnly is returned by Write when the backend was opened read-only.
var ErrReadOnly = errors.New("backend is in read-only mode")

// Config holds the configuration for the filesystem backend.
type Config struct {
	Root     string      // Directory that relative resource names are resolved against. Empty means the working directory.
	Perm     os.FileMode // Mode of written files. Defaults to 0644.
	ReadOnly bool
	Logger   *zap.Logger
}

// Backend implements core.Backend and core.Watchable on top of plain files.
// Writes are atomic (temp file + rename).
type Backend struct {
	config Config

	mu            sync.RWMutex
	watcherActive bool
	writes        int
	lastWrite     *time.Time
}

// NewBackend creates a filesystem backend.
func NewBackend(config Config) *Backend {
	if config.Perm == 0 {
		config.Perm = 0644
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	return &Backend{config: config}
}

// Path returns the file a resource name maps to.
func (b *Backend) Path(name string) string {
	if filepath.IsAbs(name) || b.config.Root == "" {
		return filepath.Clean(name)
	}
	return filepath.Join(b.config.Root, name)
}

// Read returns the file contents, or core.ErrNotFound if the file does not exist.
func (b *Backend) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := b.Path(name)
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	b.config.Logger.Debug("read notebook file", zap.String("path", path), zap.Int("bytes", len(data)))
	return data, nil
}

// Write atomically replaces the file, creating parent directories as needed.
func (b *Backend) Write(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.config.ReadOnly {
		return ErrReadOnly
	}

	path := b.Path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	if err := writeFileAtomic(path, data, b.config.Perm); err != nil {
		return err
	}

	b.recordWrite()
	b.config.Logger.Debug("wrote notebook file", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}

// Watch reports changes to the file behind name. Events are debounced, so a
// burst of writes produces a single core.EventModify.
func (b *Backend) Watch(ctx context.Context, name string) (<-chan core.Event, error) {
	events := make(chan core.Event, 16)
	w := newWatchWorker(b, b.Path(name), events)
	if err := w.Start(ctx); err != nil {
		close(events)
		return nil, err
	}
	return events, nil
}

var (
	_ core.Backend   = (*Backend)(nil)
	_ core.Watchable = (*Backend)(nil)
)
