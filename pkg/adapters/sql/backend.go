// Package sql stores notebook documents in a relational table through gorm.
// SQLite, MySQL and PostgreSQL are supported.
package sql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/aretw0/quire/pkg/core"
)

// Config selects the dialect and connection.
type Config struct {
	Dialect     string `yaml:"dialect" default:"sqlite" validate:"oneof=sqlite mysql postgres"`
	DSN         string `yaml:"dsn" validate:"required"`
	TablePrefix string `yaml:"table-prefix"`
	Debug       bool   `yaml:"debug"`
}

// Resource is one stored document.
type Resource struct {
	Name      string `gorm:"primaryKey;size:255"`
	Data      []byte
	UpdatedAt time.Time
}

// Backend implements core.Backend over a gorm-managed table.
type Backend struct {
	db     *gorm.DB
	logger *zap.Logger
}

// Dialector maps cfg to a gorm dialector.
func Dialector(cfg Config) (gorm.Dialector, error) {
	switch cfg.Dialect {
	case "", "sqlite":
		return sqlite.Open(cfg.DSN), nil
	case "mysql":
		return mysql.Open(cfg.DSN), nil
	case "postgres":
		return postgres.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported sql dialect %q", cfg.Dialect)
	}
}

// Open connects using cfg and migrates the resources table.
func Open(cfg Config, log *zap.Logger) (*Backend, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	level := logger.Silent
	if cfg.Debug {
		level = logger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(level),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   cfg.TablePrefix,
			SingularTable: true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Dialect, err)
	}
	return New(db, log)
}

// New migrates the schema on db and returns a backend using it.
func New(db *gorm.DB, log *zap.Logger) (*Backend, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := db.AutoMigrate(&Resource{}); err != nil {
		return nil, fmt.Errorf("migrate resources: %w", err)
	}
	return &Backend{db: db, logger: log}, nil
}

// Read returns the stored document.
func (b *Backend) Read(ctx context.Context, name string) ([]byte, error) {
	var r Resource
	err := b.db.WithContext(ctx).Where("name = ?", name).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read resource %s: %w", name, err)
	}
	return r.Data, nil
}

// Write inserts or replaces the document.
func (b *Backend) Write(ctx context.Context, name string, data []byte) error {
	r := Resource{Name: name, Data: data, UpdatedAt: time.Now()}
	err := b.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&r).Error
	if err != nil {
		return fmt.Errorf("write resource %s: %w", name, err)
	}
	b.logger.Debug("stored notebook in sql", zap.String("name", name), zap.Int("bytes", len(data)))
	return nil
}

// Close releases the underlying connection pool.
func (b *Backend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ComponentType implements introspection.Component.
func (b *Backend) ComponentType() string {
	return "sql"
}

var _ core.Backend = (*Backend)(nil)
