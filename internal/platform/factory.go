package platform

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aretw0/quire/pkg/adapters/fs"
	"github.com/aretw0/quire/pkg/adapters/mongo"
	"github.com/aretw0/quire/pkg/adapters/redis"
	"github.com/aretw0/quire/pkg/adapters/s3"
	"github.com/aretw0/quire/pkg/adapters/sql"
	"github.com/aretw0/quire/pkg/adapters/versioned"
	"github.com/aretw0/quire/pkg/adapters/webdav"
	"github.com/aretw0/quire/pkg/core"
	"github.com/aretw0/quire/pkg/notebook"
)

// Workspace is an opened notebook together with the backend it persists to.
type Workspace struct {
	Notebook *notebook.Notebook
	Backend  core.Backend
	Config   *Config
	// Dir is the resolved directory for the fs and git backends.
	Dir string

	closer func() error
}

// Close releases backend connections.
func (w *Workspace) Close() error {
	if w.closer == nil {
		return nil
	}
	return w.closer()
}

// Open builds the configured backend and notebook, then loads it.
// Load warnings are logged; a load error is returned with the workspace closed.
func Open(ctx context.Context, cfg *Config, opts ...Option) (*Workspace, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	policy, err := notebook.ParseLoadPolicy(cfg.Notebook.Policy)
	if err != nil {
		return nil, err
	}

	forceTemp := cfg.DevSafetyEnabled() && !cfg.Storage.ReadOnly && IsDevRun()
	if o.forceTemp != nil {
		forceTemp = *o.forceTemp
	}
	dir := ResolveLocation(cfg.Notebook.Location, forceTemp)
	if forceTemp {
		o.logger.Warn("dev run detected, notebook re-rooted into temp dir", zap.String("dir", dir))
	}

	w := &Workspace{Config: cfg, Dir: dir, Backend: o.backend}
	if w.Backend == nil {
		w.Backend, w.closer, err = NewBackend(ctx, cfg, dir, o.logger)
		if err != nil {
			return nil, err
		}
	}

	nbOpts := []notebook.Option{
		notebook.WithLocation(cfg.Notebook.FileName),
		notebook.WithLoadPolicy(policy),
		notebook.WithLogger(o.logger),
	}
	if o.registry != nil {
		nbOpts = append(nbOpts, notebook.WithMetrics(o.registry))
	}
	if o.onWarning != nil {
		nbOpts = append(nbOpts, notebook.WithWarningHandler(o.onWarning))
	}
	w.Notebook = notebook.New(w.Backend, nbOpts...)

	if _, err := w.Notebook.Load(ctx); err != nil {
		_ = w.Close()
		return nil, err
	}
	return w, nil
}

// NewBackend constructs the backend selected by cfg.Storage.Type. The
// returned closer may be nil.
func NewBackend(ctx context.Context, cfg *Config, dir string, logger *zap.Logger) (core.Backend, func() error, error) {
	st := cfg.Storage
	switch st.Type {
	case "", "fs":
		return fs.NewBackend(fs.Config{Root: dir, ReadOnly: st.ReadOnly, Logger: logger}), nil, nil

	case "git":
		b, err := versioned.New(dir, logger)
		return b, nil, err

	case "redis":
		timeout := st.Redis.ConnectTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client, err := redis.Connect(ctx, redis.ConnectOptions{
			Addr:           st.Redis.Addr,
			User:           st.Redis.User,
			Password:       st.Redis.Password,
			DB:             st.Redis.DB,
			ConnectTimeout: timeout,
			RetryInterval:  500 * time.Millisecond,
			MaxWait:        5 * time.Second,
			PingTimeout:    2 * time.Second,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		b := redis.New(client, redis.WithKeyPrefix(st.Redis.KeyPrefix), redis.WithLogger(logger))
		return b, client.Close, nil

	case "s3":
		b, err := s3.NewFromConfig(ctx, st.S3, s3.WithLogger(logger))
		return b, nil, err

	case "webdav":
		b, err := webdav.NewFromConfig(st.WebDAV, logger)
		return b, nil, err

	case "mongo":
		b, err := mongo.NewFromConfig(ctx, st.Mongo, logger)
		if err != nil {
			return nil, nil, err
		}
		return b, func() error { return b.Disconnect(context.Background()) }, nil

	case "sql":
		b, err := sql.Open(st.SQL, logger)
		if err != nil {
			return nil, nil, err
		}
		return b, b.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage type: %s", st.Type)
	}
}
