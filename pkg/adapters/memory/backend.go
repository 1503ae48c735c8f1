// Package memory provides a process-local core.Backend, useful for tests and
// for hosts that do not need durability.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/quire/pkg/core"
)

// Backend keeps resources in a map. The zero value is ready to use.
type Backend struct {
	mu        sync.RWMutex
	resources map[string][]byte
	writes    int
}

// New returns an empty Backend.
func New() *Backend {
	return &Backend{}
}

// Read returns a copy of the stored bytes, or core.ErrNotFound.
func (b *Backend) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	data, ok := b.resources[name]
	if !ok {
		return nil, core.ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

// Write stores a copy of data under name.
func (b *Backend) Write(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.resources == nil {
		b.resources = make(map[string][]byte)
	}
	b.resources[name] = append([]byte(nil), data...)
	b.writes++
	return nil
}

// Writes reports how many successful writes the backend has seen.
func (b *Backend) Writes() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.writes
}

// ComponentType implements introspection.Component.
func (b *Backend) ComponentType() string {
	return "memory"
}
