package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/quire/pkg/core"
)

func TestBackend_ReadWrite(t *testing.T) {
	ctx := context.Background()
	var b Backend

	if _, err := b.Read(ctx, "notes.json"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	payload := []byte(`[]`)
	if err := b.Write(ctx, "notes.json", payload); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	payload[0] = 'x' // caller mutation must not leak into the store

	got, err := b.Read(ctx, "notes.json")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(got) != "[]" {
		t.Errorf("expected %q, got %q", "[]", got)
	}
	if b.Writes() != 1 {
		t.Errorf("expected 1 write, got %d", b.Writes())
	}
}

func TestBackend_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := New()
	if err := b.Write(ctx, "n", nil); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if _, err := b.Read(ctx, "n"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
