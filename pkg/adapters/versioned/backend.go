// Package versioned decorates the filesystem backend so that every save
// becomes a git commit in the notebook's directory.
package versioned

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/aretw0/quire/pkg/adapters/fs"
	"github.com/aretw0/quire/pkg/core"
	"github.com/aretw0/quire/pkg/git"
)

// Backend writes through fs.Backend and commits the result.
type Backend struct {
	files  *fs.Backend
	git    *git.Client
	root   string
	logger *zap.Logger
}

// New opens (or initializes) a repository at root.
func New(root string, logger *zap.Logger) (*Backend, error) {
	if root == "" {
		return nil, fmt.Errorf("versioned backend requires a root directory")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	client := git.NewClient(abs, logger)
	if err := client.Init(); err != nil {
		return nil, err
	}

	return &Backend{
		files:  fs.NewBackend(fs.Config{Root: abs, Logger: logger}),
		git:    client,
		root:   abs,
		logger: logger,
	}, nil
}

// Git exposes the repository client.
func (b *Backend) Git() *git.Client {
	return b.git
}

// Read delegates to the filesystem.
func (b *Backend) Read(ctx context.Context, name string) ([]byte, error) {
	return b.files.Read(ctx, name)
}

// Write stores data and commits it under the repository lock.
func (b *Backend) Write(ctx context.Context, name string, data []byte) error {
	rel, err := filepath.Rel(b.root, b.files.Path(name))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%s is outside repository %s", name, b.root)
	}

	unlock, err := b.git.Lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	if err := b.files.Write(ctx, name, data); err != nil {
		return err
	}
	if err := b.git.Add(filepath.ToSlash(rel)); err != nil {
		return err
	}

	msg := git.FormatCommitMessage(git.CommitTypeChore, "notebook", "save "+filepath.ToSlash(rel), "")
	hash, err := b.git.Commit(msg)
	if err != nil {
		return err
	}
	if hash != "" {
		b.logger.Info("committed notebook", zap.String("file", rel), zap.String("commit", hash))
	}
	return nil
}

// Watch delegates to the filesystem watcher.
func (b *Backend) Watch(ctx context.Context, name string) (<-chan core.Event, error) {
	return b.files.Watch(ctx, name)
}

// ComponentType implements introspection.Component.
func (b *Backend) ComponentType() string {
	return "git"
}

var (
	_ core.Backend   = (*Backend)(nil)
	_ core.Watchable = (*Backend)(nil)
)
