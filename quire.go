package quire

import (
	"context"

	"github.com/aretw0/quire/internal/platform"
	"github.com/aretw0/quire/pkg/core"
	"github.com/aretw0/quire/pkg/notebook"
)

// --- Types ---

type (
	Note         = core.Note
	NoteOption   = core.NoteOption
	Color        = core.Color
	Importance   = core.Importance
	Defaults     = core.Defaults
	Backend      = core.Backend
	Event        = core.Event
	ParseWarning = core.ParseWarning

	Notebook   = notebook.Notebook
	LoadPolicy = notebook.LoadPolicy

	Config    = platform.Config
	Workspace = platform.Workspace
)

const (
	Important   = core.Important
	Normal      = core.Normal
	Unimportant = core.Unimportant

	LoadLenient = notebook.LoadLenient
	LoadStrict  = notebook.LoadStrict
)

var (
	White = core.White
	Black = core.Black

	StandardDefaults = core.StandardDefaults
)

// --- Notes ---

// NewNote builds a note; see core.NewNote.
func NewNote(title, content string, importance Importance, opts ...NoteOption) Note {
	return core.NewNote(title, content, importance, opts...)
}

// WithID sets the note id instead of generating one.
func WithID(id string) NoteOption {
	return core.WithID(id)
}

// WithColor sets the note color.
func WithColor(c Color) NoteOption {
	return core.WithColor(c)
}

// EncodeColor renders c as "RRGGBB".
func EncodeColor(c Color) string {
	return core.EncodeColor(c)
}

// DecodeColor parses "RRGGBB". Malformed input yields black and an error.
func DecodeColor(text string) (Color, error) {
	return core.DecodeColor(text)
}

// --- Notebook ---

// Option configures a Notebook created with New.
type Option = notebook.Option

// New creates an empty notebook persisting through backend.
func New(backend Backend, opts ...Option) *Notebook {
	return notebook.New(backend, opts...)
}

// --- Configured hosts ---

// OpenOption configures Open.
type OpenOption = platform.Option

// LoadConfig reads a quire.yaml file.
func LoadConfig(path string) (*Config, error) {
	return platform.LoadConfig(path)
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() (*Config, error) {
	return platform.DefaultConfig()
}

// Open builds the backend named by cfg and loads its notebook.
func Open(ctx context.Context, cfg *Config, opts ...OpenOption) (*Workspace, error) {
	return platform.Open(ctx, cfg, opts...)
}

// WithBackend injects a backend into Open.
func WithBackend(b Backend) OpenOption {
	return platform.WithBackend(b)
}

// WithForceTemp overrides dev-run detection in Open.
func WithForceTemp(force bool) OpenOption {
	return platform.WithForceTemp(force)
}
