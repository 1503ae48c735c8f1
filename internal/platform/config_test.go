package platform

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quire.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	c, err := DefaultConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, ".", c.Notebook.Location)
	assert.Equal(t, "notes.json", c.Notebook.FileName)
	assert.Equal(t, "lenient", c.Notebook.Policy)
	assert.True(t, c.DevSafetyEnabled())
	assert.Equal(t, "fs", c.Storage.Type)
	assert.Equal(t, "localhost:6379", c.Storage.Redis.Addr)
	assert.Equal(t, 10*time.Second, c.Storage.Redis.ConnectTimeout)
	assert.Equal(t, "documents", c.Storage.Mongo.Collection)
	assert.Equal(t, "sqlite", c.Storage.SQL.Dialect)
	assert.NoError(t, c.Validate())
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
notebook:
  location: ./data
  policy: strict
  dev-safety: false
storage:
  type: sql
  sql:
    dsn: quire.db
`)
	c, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, path, c.File)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "./data", c.Notebook.Location)
	assert.Equal(t, "notes.json", c.Notebook.FileName)
	assert.Equal(t, "strict", c.Notebook.Policy)
	assert.False(t, c.DevSafetyEnabled())
	assert.Equal(t, "sql", c.Storage.Type)
	assert.Equal(t, "sqlite", c.Storage.SQL.Dialect)
	assert.Equal(t, "quire.db", c.Storage.SQL.DSN)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad policy", "notebook:\n  policy: sloppy\n"},
		{"bad storage type", "storage:\n  type: floppy\n"},
		{"bad log level", "log:\n  level: loud\n"},
		{"s3 without bucket", "storage:\n  type: s3\n"},
		{"sql without dsn", "storage:\n  type: sql\n"},
		{"webdav bad url", "storage:\n  type: webdav\n  webdav:\n    endpoint: not a url\n"},
		{"not yaml", "storage: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestResolveConfig(t *testing.T) {
	// No file anywhere: defaults.
	c, err := ResolveConfig("", t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, c.File)

	path := writeConfig(t, "log:\n  level: warn\n")
	c, err = ResolveConfig("", filepath.Dir(path))
	require.NoError(t, err)
	assert.Equal(t, "warn", c.Log.Level)

	c, err = ResolveConfig(path, "")
	require.NoError(t, err)
	assert.Equal(t, path, c.File)
}
