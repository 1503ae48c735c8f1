package notebook

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/aretw0/quire/pkg/core"
)

// DefaultFileName is the resource name used when no location is configured.
const DefaultFileName = "notes.json"

// LoadPolicy decides what Load does with an element that fails to parse.
type LoadPolicy int

const (
	// LoadLenient skips bad elements and reports each one as a core.ParseWarning.
	LoadLenient LoadPolicy = iota
	// LoadStrict fails the whole load on the first bad element.
	LoadStrict
)

func (p LoadPolicy) String() string {
	switch p {
	case LoadLenient:
		return "lenient"
	case LoadStrict:
		return "strict"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParseLoadPolicy maps "lenient" or "strict" to a LoadPolicy.
func ParseLoadPolicy(s string) (LoadPolicy, error) {
	switch s {
	case "", "lenient":
		return LoadLenient, nil
	case "strict":
		return LoadStrict, nil
	default:
		return LoadLenient, fmt.Errorf("unknown load policy %q", s)
	}
}

// options holds the internal configuration for a Notebook.
type options struct {
	locator   core.Locator
	defaults  core.Defaults
	policy    LoadPolicy
	logger    *zap.Logger
	onWarning func(core.ParseWarning)
	registry  prometheus.Registerer
}

// Option configures a Notebook.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		locator:  core.FixedLocation(DefaultFileName),
		defaults: core.StandardDefaults,
		policy:   LoadLenient,
		logger:   zap.NewNop(),
	}
}

// WithLocation persists to a fixed resource name (a path for files, a key for Redis, etc).
func WithLocation(name string) Option {
	return func(o *options) {
		o.locator = core.FixedLocation(name)
	}
}

// WithLocator resolves the resource name on every Save and Load.
func WithLocator(l core.Locator) Option {
	return func(o *options) {
		if l != nil {
			o.locator = l
		}
	}
}

// WithDefaults overrides the default-omission values used by the document codec.
func WithDefaults(d core.Defaults) Option {
	return func(o *options) {
		o.defaults = d
	}
}

// WithLoadPolicy selects how Load treats malformed elements. Defaults to LoadLenient.
func WithLoadPolicy(p LoadPolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithWarningHandler registers a callback invoked for every warning produced by Load.
// It runs while the notebook lock is held and must not call back into the notebook.
func WithWarningHandler(fn func(core.ParseWarning)) Option {
	return func(o *options) {
		o.onWarning = fn
	}
}

// WithMetrics registers notebook collectors on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registry = reg
	}
}
