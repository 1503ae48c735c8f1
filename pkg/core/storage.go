package core

import (
	"context"
	"fmt"
)

// Backend reads and writes the raw bytes of a single named resource.
// Adhering to this interface keeps the notebook independent of the
// underlying storage mechanism (filesystem, Redis, S3, SQL, etc).
type Backend interface {
	// Read returns the full contents of name, or ErrNotFound if it does not exist.
	Read(ctx context.Context, name string) ([]byte, error)

	// Write replaces the full contents of name.
	Write(ctx context.Context, name string, data []byte) error
}

// Watchable is implemented by backends that can report external changes to a resource.
type Watchable interface {
	// Watch emits an Event whenever name changes. The channel is closed when ctx is done.
	Watch(ctx context.Context, name string) (<-chan Event, error)
}

// Locator resolves the name of the resource a notebook persists to.
type Locator func() (string, error)

// FixedLocation returns a Locator that always resolves to name.
// An empty name resolves to ErrLocationUnresolved.
func FixedLocation(name string) Locator {
	return func() (string, error) {
		if name == "" {
			return "", ErrLocationUnresolved
		}
		return name, nil
	}
}

// EventType represents the type of change to a resource.
type EventType string

const (
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
	EventReload EventType = "RELOAD"
)

// Event represents a change to a persisted resource.
type Event struct {
	Type      EventType
	Location  string
	Timestamp int64 // Unix timestamp
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.Location)
}
