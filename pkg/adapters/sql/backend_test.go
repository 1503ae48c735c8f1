package sql_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quire/pkg/adapters/sql"
	"github.com/aretw0/quire/pkg/core"
	"github.com/aretw0/quire/pkg/notebook"
)

func openSQLite(t *testing.T) *sql.Backend {
	t.Helper()
	b, err := sql.Open(sql.Config{
		Dialect: "sqlite",
		DSN:     filepath.Join(t.TempDir(), "quire.db"),
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestBackend_ReadWrite(t *testing.T) {
	ctx := context.Background()
	b := openSQLite(t)

	_, err := b.Read(ctx, "notes.json")
	require.ErrorIs(t, err, core.ErrNotFound)

	require.NoError(t, b.Write(ctx, "notes.json", []byte(`[]`)))
	require.NoError(t, b.Write(ctx, "notes.json", []byte(`[{"title":"a"}]`)))

	data, err := b.Read(ctx, "notes.json")
	require.NoError(t, err)
	assert.Equal(t, `[{"title":"a"}]`, string(data))
}

func TestBackend_NotebookRoundTrip(t *testing.T) {
	ctx := context.Background()
	b := openSQLite(t)

	nb := notebook.New(b)
	nb.Add(core.NewNote("groceries", "milk", core.Important, core.WithID("1")))
	require.NoError(t, nb.Save(ctx))

	other := notebook.New(b)
	_, err := other.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, nb.Notes(), other.Notes())
}

func TestDialector(t *testing.T) {
	for _, d := range []string{"", "sqlite", "mysql", "postgres"} {
		_, err := sql.Dialector(sql.Config{Dialect: d, DSN: "x"})
		assert.NoError(t, err, d)
	}
	_, err := sql.Dialector(sql.Config{Dialect: "oracle"})
	assert.Error(t, err)
}
