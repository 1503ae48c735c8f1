package platform

import (
	"os"
	"path/filepath"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/quire/pkg/adapters/mongo"
	"github.com/aretw0/quire/pkg/adapters/s3"
	"github.com/aretw0/quire/pkg/adapters/sql"
	"github.com/aretw0/quire/pkg/adapters/webdav"
)

// ConfigFileNames are searched, in order, when no --config is given.
var ConfigFileNames = []string{"quire.yaml", ".quire.yaml"}

// Config is the quire.yaml layout.
type Config struct {
	File string `yaml:"-"`

	Log      LogConfig      `yaml:"log"`
	Notebook NotebookConfig `yaml:"notebook"`
	Storage  StorageConfig  `yaml:"storage"`
}

type LogConfig struct {
	Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
	Pretty bool   `yaml:"pretty"`
}

type NotebookConfig struct {
	// Location is the directory for the fs and git backends.
	Location string `yaml:"location" default:"."`
	FileName string `yaml:"file-name" default:"notes.json" validate:"required"`
	Policy   string `yaml:"policy" default:"lenient" validate:"oneof=lenient strict"`
	// DevSafety re-roots Location into the temp dir under `go run`/`go test`.
	DevSafety *bool `yaml:"dev-safety" default:"true"`
}

type StorageConfig struct {
	Type     string `yaml:"type" default:"fs" validate:"oneof=fs git redis s3 webdav mongo sql"`
	ReadOnly bool   `yaml:"read-only"`

	Redis  RedisConfig   `yaml:"redis" validate:"-"`
	S3     s3.Config     `yaml:"s3" validate:"-"`
	WebDAV webdav.Config `yaml:"webdav" validate:"-"`
	Mongo  mongo.Config  `yaml:"mongo" validate:"-"`
	SQL    sql.Config    `yaml:"sql" validate:"-"`
}

type RedisConfig struct {
	Addr           string        `yaml:"addr" default:"localhost:6379" validate:"required"`
	User           string        `yaml:"user"`
	Password       string        `yaml:"password"`
	DB             int           `yaml:"db"`
	KeyPrefix      string        `yaml:"key-prefix" default:"quire:"`
	ConnectTimeout time.Duration `yaml:"connect-timeout" default:"10s"`
}

// DevSafetyEnabled reports the effective dev-safety flag.
func (c *Config) DevSafetyEnabled() bool {
	return c.Notebook.DevSafety == nil || *c.Notebook.DevSafety
}

// Validate checks the top-level settings and the selected backend's section.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}

	var section any
	switch c.Storage.Type {
	case "redis":
		section = c.Storage.Redis
	case "s3":
		section = c.Storage.S3
	case "webdav":
		section = c.Storage.WebDAV
	case "mongo":
		section = c.Storage.Mongo
	case "sql":
		section = c.Storage.SQL
	default:
		return nil
	}
	if err := v.Struct(section); err != nil {
		return errors.Wrapf(err, "invalid storage.%s config", c.Storage.Type)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() (*Config, error) {
	c := new(Config)
	if err := defaults.Set(c); err != nil {
		return nil, errors.Wrap(err, "set default config failed")
	}
	return c, nil
}

// LoadConfig reads, defaults and validates the file at path.
func LoadConfig(path string) (*Config, error) {
	realpath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	c, err := DefaultConfig()
	if err != nil {
		return nil, err
	}
	c.File = filepath.Clean(realpath)

	file, err := os.ReadFile(c.File)
	if err != nil {
		return nil, errors.Wrap(err, "read config file failed")
	}
	if err := yaml.Unmarshal(file, c); err != nil {
		return nil, errors.Wrap(err, "parse config file failed")
	}
	// defaults.Set only fills zero values, so keys present but empty get defaults too.
	if err := defaults.Set(c); err != nil {
		return nil, errors.Wrap(err, "re-set default config failed")
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// ResolveConfig loads path if given, otherwise the first config file found
// from startDir upwards, otherwise the defaults.
func ResolveConfig(path, startDir string) (*Config, error) {
	if path != "" {
		return LoadConfig(path)
	}
	if found, err := FindConfig(startDir); err == nil {
		return LoadConfig(found)
	}
	return DefaultConfig()
}
