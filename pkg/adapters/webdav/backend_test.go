package webdav

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/studio-b12/gowebdav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quire/pkg/core"
)

type fakeClient struct {
	files map[string][]byte
	dirs  []string
	err   error
}

func (f *fakeClient) Read(p string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, ok := f.files[p]
	if !ok {
		return nil, gowebdav.NewPathError("Read", p, http.StatusNotFound)
	}
	return data, nil
}

func (f *fakeClient) Write(p string, data []byte, _ os.FileMode) error {
	if f.err != nil {
		return f.err
	}
	f.files[p] = data
	return nil
}

func (f *fakeClient) MkdirAll(p string, _ os.FileMode) error {
	f.dirs = append(f.dirs, p)
	return nil
}

func TestBackend_ReadWrite(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{files: map[string][]byte{}}
	b := New(client, "notes", nil)

	_, err := b.Read(ctx, "notes.json")
	require.ErrorIs(t, err, core.ErrNotFound)

	require.NoError(t, b.Write(ctx, "notes.json", []byte(`[]`)))
	assert.Equal(t, []string{"/notes"}, client.dirs)

	data, err := b.Read(ctx, "notes.json")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestBackend_Errors(t *testing.T) {
	boom := errors.New("503 service unavailable")
	b := New(&fakeClient{err: boom}, "", nil)

	_, err := b.Read(context.Background(), "notes.json")
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, b.Write(context.Background(), "notes.json", nil), boom)
}

func TestBackend_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := New(&fakeClient{files: map[string][]byte{}}, "", nil)

	_, err := b.Read(ctx, "notes.json")
	assert.ErrorIs(t, err, context.Canceled)
}
