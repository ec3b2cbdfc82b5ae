package nscache

import (
	"context"
	"time"

	be "github.com/unkn0wn-root/nscache/backend"
)

// Status is the transient result of a health probe.
type Status struct {
	Healthy bool
	Message string
}

// Cache is the namespaced, generation-versioned view over a backend store.
// All operations derive the physical key from the current generation before
// touching the backend; see DeriveKey.
type Cache interface {
	// Get returns the value stored under the logical key.
	// A miss is (nil, false, nil) - not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set dispatches a write and returns true without awaiting backend
	// confirmation. Backend write failures are reported through Hooks and
	// the failed-bytes histogram only; do not rely on Set for durability.
	Set(ctx context.Context, key string, value []byte) (bool, error)

	// Delete removes the entry. Returns false when the key did not exist.
	Delete(ctx context.Context, key string) (bool, error)

	// Increment adds delta to the counter stored under the logical key.
	// A missing counter is (0, false, nil).
	Increment(ctx context.Context, key string, delta int64) (int64, bool, error)

	// Decrement subtracts delta from the counter stored under the logical key.
	Decrement(ctx context.Context, key string, delta int64) (int64, bool, error)

	// DeriveKey resolves the current generation and returns the physical
	// key for a logical key. It never fails: an unreadable generation
	// degrades to the sentinel form ".<ns>.<key>".
	DeriveKey(ctx context.Context, key string) string

	// CheckHealth reports facade liveness independent of backend state.
	CheckHealth(ctx context.Context) Status

	// Close signals the backend to quit. Fire-and-forget; safe to call
	// more than once.
	Close(ctx context.Context)
}

// Options configure a facade instance. Only Namespace and Backend are
// required; everything else has a working default.
type Options struct {
	// Required
	Namespace string     // logical keyspace partition, e.g. "user", "session"
	Backend   be.Backend // the underlying byte store

	// SetKey is the physical key of the generation counter. Empty disables
	// generation prefixing entirely. The counter is owned by an external
	// invalidation process; the facade only reads it.
	SetKey string

	Logger          Logger        // nil => NopLogger
	Metrics         Metrics       // nil => NopMetrics
	Hooks           Hooks         // nil => NopHooks
	SetWriteTimeout time.Duration // deadline for dispatched writes; 0 => 10s
}

// New builds a Cache from opts.
func New(opts Options) (Cache, error) {
	return newCache(opts)
}
