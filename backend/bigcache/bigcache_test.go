package bigcache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	b, err := New(Config{LifeWindow: time.Minute})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = b.Quit(context.Background()) })
	return b
}

func TestSetGetDelete(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)

	if _, ok, err := b.Get(ctx, "k"); ok || err != nil {
		t.Fatalf("Get on empty = ok=%v err=%v", ok, err)
	}
	if err := b.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, ok, err := b.Get(ctx, "k"); err != nil || !ok || string(v) != "v" {
		t.Fatalf("Get = %q ok=%v err=%v", v, ok, err)
	}
	if ok, err := b.Delete(ctx, "k"); err != nil || !ok {
		t.Fatalf("Delete = %v err=%v", ok, err)
	}
	if ok, err := b.Delete(ctx, "k"); err != nil || ok {
		t.Fatalf("Delete absent = %v err=%v, want false", ok, err)
	}
}

func TestCounterSemantics(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)

	// missing key is a miss, not a creation
	if v, ok, err := b.Incr(ctx, "hits", 1); ok || v != 0 || err != nil {
		t.Fatalf("Incr on absent = %d ok=%v err=%v", v, ok, err)
	}

	if err := b.Set(ctx, "hits", []byte("5")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, ok, err := b.Incr(ctx, "hits", 3); err != nil || !ok || v != 8 {
		t.Fatalf("Incr = %d ok=%v err=%v, want 8", v, ok, err)
	}
	if v, ok, err := b.Decr(ctx, "hits", 2); err != nil || !ok || v != 6 {
		t.Fatalf("Decr = %d ok=%v err=%v, want 6", v, ok, err)
	}

	// decrement floors at zero like memcached
	if v, ok, err := b.Decr(ctx, "hits", 100); err != nil || !ok || v != 0 {
		t.Fatalf("Decr below zero = %d ok=%v err=%v, want 0", v, ok, err)
	}
}

func TestCounterRejectsNonNumeric(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)

	if err := b.Set(ctx, "blob", []byte{0xde, 0xad}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, _, err := b.Incr(ctx, "blob", 1); !errors.Is(err, ErrNotNumeric) {
		t.Fatalf("Incr on blob err = %v, want ErrNotNumeric", err)
	}
}
