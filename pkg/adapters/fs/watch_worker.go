package fs

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aretw0/quire/pkg/core"
)

const watchDebounce = 50 * time.Millisecond

// watchWorker follows a single file. It watches the parent directory, because
// atomic writes replace the file's inode on every save.
type watchWorker struct {
	*worker.BaseWorker
	backend   *Backend
	path      string
	events    chan core.Event
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	cancel    context.CancelFunc
}

func newWatchWorker(b *Backend, path string, events chan core.Event) *watchWorker {
	return &watchWorker{
		BaseWorker: worker.NewBaseWorker("fs-watcher"),
		backend:    b,
		path:       filepath.Clean(path),
		events:     events,
	}
}

func (w *watchWorker) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", status)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}

	w.watcher = watcher
	w.debouncer = newDebouncer(watchDebounce)
	w.backend.setWatcherActive(true)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

func (w *watchWorker) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}

	return w.BaseWorker.Stop(ctx)
}

func (w *watchWorker) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
			"path":              w.path,
		}
	})
}

// mapEventType returns "" for events that do not concern the watched file.
func (w *watchWorker) mapEventType(event fsnotify.Event) core.EventType {
	if filepath.Clean(event.Name) != w.path || isTempFile(event.Name) {
		return ""
	}
	switch {
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		return core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	default:
		return ""
	}
}

// sendEvent enqueues an event via the debouncer, protecting against channel closure during shutdown.
func (w *watchWorker) sendEvent(ctx context.Context, event core.Event) {
	w.debouncer.add(event, func(e core.Event) {
		defer func() {
			_ = recover()
		}()
		select {
		case w.events <- e:
		case <-ctx.Done():
		}
	})
}

func (w *watchWorker) run(ctx context.Context) (err error) {
	logger := w.backend.config.Logger
	defer func() {
		if recovered := recover(); recovered != nil {
			fields := []zap.Field{zap.Error(fmt.Errorf("watcher panic: %v", recovered))}
			if logger.Core().Enabled(zapcore.DebugLevel) {
				fields = append(fields, zap.ByteString("stack", debug.Stack()))
			}
			logger.Error("watcher panic", fields...)
		}
	}()
	defer close(w.events)
	defer w.backend.setWatcherActive(false)
	defer w.watcher.Close()

	err = w.mainEventLoop(ctx)

	// Drain in-flight timers before the deferred close of the events channel.
	w.debouncer.stopAndWait(5 * time.Second)

	return err
}

func (w *watchWorker) mainEventLoop(ctx context.Context) error {
	logger := w.backend.config.Logger
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}

			eType := w.mapEventType(event)
			if eType == "" {
				continue
			}
			logger.Debug("file event", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			w.sendEvent(ctx, core.Event{
				Type:      eType,
				Location:  w.path,
				Timestamp: time.Now().Unix(),
			})

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			logger.Error("fsnotify error", zap.Error(wErr))
		}
	}
}
