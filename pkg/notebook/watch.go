package notebook

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/aretw0/quire/pkg/core"
)

// ErrNotWatchable is returned by Watch when the backend cannot report changes.
var ErrNotWatchable = errors.New("backend does not support watching")

// Watch reloads the notebook whenever the backend reports that the resource
// was modified externally. Every upstream event is forwarded, and a reload that
// replaced the collection is followed by a core.EventReload. Modifications that
// leave the document as this notebook last saved or loaded it (including the
// echo of its own Save) do not reload, so unsaved changes are kept. Deletions
// do not clear the in-memory collection.
//
// The returned channel is closed when ctx is done or the backend stops watching.
func (nb *Notebook) Watch(ctx context.Context) (<-chan core.Event, error) {
	w, ok := nb.backend.(core.Watchable)
	if !ok {
		return nil, ErrNotWatchable
	}

	loc, err := nb.resolve("watch")
	if err != nil {
		return nil, err
	}

	upstream, err := w.Watch(ctx, loc)
	if err != nil {
		return nil, &core.StorageError{Op: "watch", Location: loc, Err: err}
	}

	out := make(chan core.Event, 16)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-upstream:
				if !ok {
					return
				}
				if !nb.emit(ctx, out, e) {
					return
				}
				if e.Type != core.EventModify {
					continue
				}

				warnings, changed, err := nb.reload(ctx)
				if err != nil {
					nb.logger.Warn("reload after change failed", zap.String("location", loc), zap.Error(err))
					continue
				}
				if !changed {
					continue
				}
				nb.logger.Info("notebook reloaded",
					zap.String("location", loc),
					zap.Int("notes", nb.Len()),
					zap.Int("warnings", len(warnings)))

				reload := core.Event{Type: core.EventReload, Location: loc, Timestamp: time.Now().Unix()}
				if !nb.emit(ctx, out, reload) {
					return
				}
			}
		}
	}()

	return out, nil
}

func (nb *Notebook) emit(ctx context.Context, out chan<- core.Event, e core.Event) bool {
	select {
	case out <- e:
		return true
	case <-ctx.Done():
		return false
	}
}
