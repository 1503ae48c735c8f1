// Package lifecycle exposes notebook change streams as lifecycle sources.
package lifecycle

import (
	"context"
	"fmt"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/quire/pkg/core"
)

// Change is a notebook event annotated with the size of the collection at the
// moment it was forwarded.
type Change struct {
	core.Event
	Notes int
}

func (c Change) String() string {
	return fmt.Sprintf("%s (%d notes)", c.Event, c.Notes)
}

// Counter reports how many notes a notebook currently holds.
type Counter interface {
	Len() int
}

// ChangeSource forwards a Notebook.Watch stream as Change events.
type ChangeSource struct {
	events  <-chan core.Event
	counter Counter
	only    map[core.EventType]bool
	out     chan lifecycle.Event
}

// NewSource wraps events, typically the stream returned by Notebook.Watch.
// When types is non-empty only those event types are forwarded.
func NewSource(events <-chan core.Event, counter Counter, types ...core.EventType) *ChangeSource {
	var only map[core.EventType]bool
	if len(types) > 0 {
		only = make(map[core.EventType]bool, len(types))
		for _, t := range types {
			only[t] = true
		}
	}
	return &ChangeSource{
		events:  events,
		counter: counter,
		only:    only,
		out:     make(chan lifecycle.Event),
	}
}

func (s *ChangeSource) Events() <-chan lifecycle.Event {
	return s.out
}

// Start forwards until ctx is done or the upstream channel closes, then
// closes Events.
func (s *ChangeSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			var e core.Event
			select {
			case <-ctx.Done():
				return nil
			case ev, ok := <-s.events:
				if !ok {
					return nil
				}
				e = ev
			}
			if s.only != nil && !s.only[e.Type] {
				continue
			}

			select {
			case s.out <- Change{Event: e, Notes: s.counter.Len()}:
			case <-ctx.Done():
				return nil
			}
		}
	})
	return nil
}

var _ lifecycle.Source = (*ChangeSource)(nil)
