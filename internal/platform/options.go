package platform

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/aretw0/quire/pkg/core"
)

// options holds the wiring overrides for Open.
type options struct {
	backend   core.Backend
	logger    *zap.Logger
	registry  prometheus.Registerer
	onWarning func(core.ParseWarning)
	forceTemp *bool
}

// Option defines a functional option for Open.
type Option func(*options)

func defaultOptions() *options {
	return &options{logger: zap.NewNop()}
}

// WithBackend injects a storage backend, skipping the one named by the config.
func WithBackend(b core.Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithLogger sets the logger handed to the backend and the notebook.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics registers notebook collectors on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registry = reg
	}
}

// WithWarningHandler forwards load warnings to fn.
func WithWarningHandler(fn func(core.ParseWarning)) Option {
	return func(o *options) {
		o.onWarning = fn
	}
}

// WithForceTemp overrides dev-run detection. True always re-roots the
// notebook location into the temp dir; false never does.
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.forceTemp = &force
	}
}
