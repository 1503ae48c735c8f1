package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// BackendState exposes internal state for observability.
type BackendState struct {
	Root          string     `json:"root,omitempty"`
	ReadOnly      bool       `json:"read_only"`
	WatcherActive bool       `json:"watcher_active"`
	Writes        int        `json:"writes"`
	LastWrite     *time.Time `json:"last_write,omitempty"`
}

// State implements introspection.Introspectable.
func (b *Backend) State() any {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return BackendState{
		Root:          b.config.Root,
		ReadOnly:      b.config.ReadOnly,
		WatcherActive: b.watcherActive,
		Writes:        b.writes,
		LastWrite:     b.lastWrite,
	}
}

// ComponentType implements introspection.Component.
func (b *Backend) ComponentType() string {
	return "fs"
}

var _ introspection.Introspectable = (*Backend)(nil)
var _ introspection.Component = (*Backend)(nil)

func (b *Backend) setWatcherActive(active bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.watcherActive = active
}

func (b *Backend) recordWrite() {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := time.Now()
	b.writes++
	b.lastWrite = &now
}
