package notebook

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/aretw0/quire/pkg/core"
)

// Notebook owns an ordered collection of notes and persists it as a single
// document through a core.Backend.
//
// All methods are safe for concurrent use. Save and Load hold the lock for the
// whole read or write, so they never interleave with Add or Delete.
type Notebook struct {
	mu       sync.Mutex
	notes    []core.Note
	backend  core.Backend
	locate   core.Locator
	defaults core.Defaults
	policy   LoadPolicy
	logger   *zap.Logger
	warn     func(core.ParseWarning)
	metrics  *metrics

	// synced is the document last written or read through the backend.
	synced []byte

	lastLoad     *time.Time
	lastSave     *time.Time
	lastWarnings int
}

// New creates an empty notebook persisted through backend.
func New(backend core.Backend, opts ...Option) *Notebook {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &Notebook{
		backend:  backend,
		locate:   o.locator,
		defaults: o.defaults,
		policy:   o.policy,
		logger:   o.logger,
		warn:     o.onWarning,
		metrics:  newMetrics(o.registry),
	}
}

// Add appends n. Ids are not checked for uniqueness.
func (nb *Notebook) Add(n core.Note) {
	nb.mu.Lock()
	defer nb.mu.Unlock()

	nb.notes = append(nb.notes, n)
	nb.metrics.setSize(len(nb.notes))
}

// Delete removes every note whose id is id and returns how many were removed.
// The remaining notes keep their relative order.
func (nb *Notebook) Delete(id string) int {
	nb.mu.Lock()
	defer nb.mu.Unlock()

	kept := nb.notes[:0]
	for _, n := range nb.notes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	removed := len(nb.notes) - len(kept)
	clear(nb.notes[len(kept):])
	nb.notes = kept
	nb.metrics.setSize(len(nb.notes))

	return removed
}

// Notes returns a copy of the collection in insertion order.
func (nb *Notebook) Notes() []core.Note {
	nb.mu.Lock()
	defer nb.mu.Unlock()

	out := make([]core.Note, len(nb.notes))
	copy(out, nb.notes)
	return out
}

// Len returns the number of notes held in memory.
func (nb *Notebook) Len() int {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	return len(nb.notes)
}

// Get returns the first note with the given id.
func (nb *Notebook) Get(id string) (core.Note, bool) {
	nb.mu.Lock()
	defer nb.mu.Unlock()

	for _, n := range nb.notes {
		if n.ID == id {
			return n, true
		}
	}
	return core.Note{}, false
}

// Find returns the notes whose title matches a doublestar glob pattern
// (e.g. "work/**" or "*todo*"), in collection order.
func (nb *Notebook) Find(pattern string) ([]core.Note, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	nb.mu.Lock()
	defer nb.mu.Unlock()

	var out []core.Note
	for _, n := range nb.notes {
		ok, err := doublestar.Match(pattern, n.Title)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, n)
		}
	}
	return out, nil
}

// Marshal encodes the collection as the JSON document Save would write.
func (nb *Notebook) Marshal() ([]byte, error) {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	return encodeDocument(nb.notes, nb.defaults)
}

// Unmarshal replaces the collection with the notes decoded from data, applying
// the configured load policy. On error the collection is left untouched.
func (nb *Notebook) Unmarshal(data []byte) ([]core.ParseWarning, error) {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	return nb.replaceLocked(data)
}

// Save writes the whole collection through the backend. Location and backend
// failures are returned as *core.StorageError; the collection is never modified.
func (nb *Notebook) Save(ctx context.Context) (err error) {
	nb.mu.Lock()
	defer nb.mu.Unlock()

	var loc string
	defer func() {
		if r := recover(); r != nil {
			err = &core.StorageError{Op: "save", Location: loc, Err: fmt.Errorf("backend panic: %v", r)}
		}
		nb.metrics.observeSave(err)
	}()

	loc, err = nb.resolve("save")
	if err != nil {
		return err
	}

	data, err := encodeDocument(nb.notes, nb.defaults)
	if err != nil {
		return &core.StorageError{Op: "save", Location: loc, Err: err}
	}

	if err := nb.backend.Write(ctx, loc, data); err != nil {
		nb.logger.Error("notebook save failed", zap.String("location", loc), zap.Error(err))
		return &core.StorageError{Op: "save", Location: loc, Err: err}
	}

	nb.synced = data
	now := time.Now()
	nb.lastSave = &now
	nb.logger.Debug("notebook saved",
		zap.String("location", loc),
		zap.Int("notes", len(nb.notes)),
		zap.Int("bytes", len(data)))

	return nil
}

// Load replaces the collection with the persisted document.
//
// A missing resource yields an empty notebook and no error. Element-level
// problems are returned as warnings (LoadLenient) or abort the load
// (LoadStrict). On any error the in-memory collection is unchanged.
func (nb *Notebook) Load(ctx context.Context) ([]core.ParseWarning, error) {
	warnings, _, err := nb.load(ctx, false)
	return warnings, err
}

// reload is Load for change notifications. A document byte-identical to the
// one this notebook last saved or loaded is left alone, so the echo of our own
// Save cannot discard notes added after it.
func (nb *Notebook) reload(ctx context.Context) (warnings []core.ParseWarning, changed bool, err error) {
	return nb.load(ctx, true)
}

func (nb *Notebook) load(ctx context.Context, onlyChanged bool) (warnings []core.ParseWarning, changed bool, err error) {
	nb.mu.Lock()
	defer nb.mu.Unlock()

	var loc string
	defer func() {
		if r := recover(); r != nil {
			err = &core.StorageError{Op: "load", Location: loc, Err: fmt.Errorf("backend panic: %v", r)}
		}
		if changed || err != nil {
			nb.metrics.observeLoad(err, len(warnings))
		}
	}()

	loc, err = nb.resolve("load")
	if err != nil {
		return nil, false, err
	}

	data, err := nb.backend.Read(ctx, loc)
	if errors.Is(err, core.ErrNotFound) {
		nb.logger.Debug("notebook not found, starting empty", zap.String("location", loc))
		data, err = nil, nil
	}
	if err != nil {
		nb.logger.Error("notebook load failed", zap.String("location", loc), zap.Error(err))
		return nil, false, &core.StorageError{Op: "load", Location: loc, Err: err}
	}

	if onlyChanged && bytes.Equal(data, nb.synced) {
		nb.logger.Debug("notebook unchanged, skipping reload", zap.String("location", loc))
		return nil, false, nil
	}

	warnings, err = nb.replaceLocked(data)
	if err != nil {
		nb.logger.Error("notebook document rejected", zap.String("location", loc), zap.Error(err))
		return warnings, false, err
	}

	nb.synced = bytes.Clone(data)
	now := time.Now()
	nb.lastLoad = &now
	nb.logger.Debug("notebook loaded",
		zap.String("location", loc),
		zap.Int("notes", len(nb.notes)),
		zap.Int("warnings", len(warnings)))

	return warnings, true, nil
}

// replaceLocked decodes data and swaps it in. nb.mu must be held.
func (nb *Notebook) replaceLocked(data []byte) ([]core.ParseWarning, error) {
	notes, warnings, err := decodeDocument(data, nb.defaults, nb.policy)
	for _, w := range warnings {
		nb.logger.Warn("skipping malformed note", zap.Int("index", w.Index), zap.Error(w.Err))
		if nb.warn != nil {
			nb.warn(w)
		}
	}
	if err != nil {
		return warnings, err
	}

	nb.notes = notes
	nb.lastWarnings = len(warnings)
	nb.metrics.setSize(len(nb.notes))
	return warnings, nil
}

// Location resolves the current storage location.
func (nb *Notebook) Location() (string, error) {
	return nb.resolve("resolve")
}

func (nb *Notebook) resolve(op string) (string, error) {
	loc, err := nb.locate()
	if err == nil && loc == "" {
		err = core.ErrLocationUnresolved
	}
	if err != nil {
		if !errors.Is(err, core.ErrLocationUnresolved) {
			err = fmt.Errorf("%w: %w", core.ErrLocationUnresolved, err)
		}
		return "", &core.StorageError{Op: op, Err: err}
	}
	return loc, nil
}
