package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quire/pkg/adapters/fs"
	"github.com/aretw0/quire/pkg/core"
	"github.com/aretw0/quire/pkg/notebook"
)

func TestBackend_ReadWrite(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	b := fs.NewBackend(fs.Config{Root: root})

	_, err := b.Read(ctx, "notes.json")
	require.ErrorIs(t, err, core.ErrNotFound)

	require.NoError(t, b.Write(ctx, "nested/dir/notes.json", []byte(`[]`)))

	got, err := os.ReadFile(filepath.Join(root, "nested", "dir", "notes.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))

	data, err := b.Read(ctx, "nested/dir/notes.json")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	st := b.State().(fs.BackendState)
	assert.Equal(t, 1, st.Writes)
	assert.NotNil(t, st.LastWrite)
	assert.Equal(t, "fs", b.ComponentType())
}

func TestBackend_AbsolutePathIgnoresRoot(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "abs.json")
	b := fs.NewBackend(fs.Config{Root: "/does/not/matter"})

	assert.Equal(t, abs, b.Path(abs))
	require.NoError(t, b.Write(context.Background(), abs, []byte("[]")))
	_, err := os.Stat(abs)
	assert.NoError(t, err)
}

func TestBackend_ReadOnly(t *testing.T) {
	b := fs.NewBackend(fs.Config{Root: t.TempDir(), ReadOnly: true})

	err := b.Write(context.Background(), "notes.json", []byte("[]"))
	assert.ErrorIs(t, err, fs.ErrReadOnly)
}

func TestBackend_NotebookRoundTrip(t *testing.T) {
	ctx := context.Background()
	b := fs.NewBackend(fs.Config{Root: t.TempDir()})

	nb := notebook.New(b, notebook.WithLocation("notes.json"))
	nb.Add(core.NewNote("groceries", "milk", core.Important, core.WithID("1")))
	nb.Add(core.NewNote("ideas", "", core.Normal, core.WithID("2"), core.WithColor(core.Color{R: 0x33, G: 0x66, B: 0x99})))
	require.NoError(t, nb.Save(ctx))

	fresh := notebook.New(b, notebook.WithLocation("notes.json"))
	warnings, err := fresh.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, nb.Notes(), fresh.Notes())
}

func TestBackend_Watch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	root := t.TempDir()
	b := fs.NewBackend(fs.Config{Root: root})

	events, err := b.Watch(ctx, "notes.json")
	require.NoError(t, err)

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(root, "other.txt"), []byte("x"), 0644))
	require.NoError(t, b.Write(ctx, "notes.json", []byte(`[]`)))

	select {
	case e := <-events:
		assert.Equal(t, core.EventModify, e.Type)
		assert.Equal(t, filepath.Join(root, "notes.json"), e.Location)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for modify event")
	}

	assert.Eventually(t, func() bool {
		return b.State().(fs.BackendState).WatcherActive
	}, time.Second, 10*time.Millisecond)

	cancel()
	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-events:
			return !ok
		default:
			return false
		}
	}, 3*time.Second, 10*time.Millisecond)
}
