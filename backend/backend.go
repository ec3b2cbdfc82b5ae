// Package backend defines the key-value store abstraction consumed by
// nscache.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly
// the same []byte that was previously passed to Set for a key (no prepended
// metadata, no re-encoding, no mutation). The facade reads the generation
// counter through the same Backend, so any transform would corrupt it.
//
// Miss conventions: absence of a key is never an error. Get reports a miss as
// (nil, false, nil), Delete as (false, nil), Incr/Decr as (0, false, nil).
// Only transport and server failures are returned as errors.
package backend

import "context"

// Backend is a minimal asynchronous byte store with counter support.
// Must be safe for concurrent use.
type Backend interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key, replacing any existing entry.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a key. Returns false when the key did not exist.
	Delete(ctx context.Context, key string) (bool, error)

	// Incr adds delta to the numeric value stored at key and returns the
	// new value. A missing key is a miss, not a creation.
	Incr(ctx context.Context, key string, delta int64) (int64, bool, error)

	// Decr subtracts delta from the numeric value stored at key and
	// returns the new value. Implementations backed by memcached floor
	// the result at zero per protocol.
	Decr(ctx context.Context, key string, delta int64) (int64, bool, error)

	// Quit signals the backend connection to terminate.
	Quit(ctx context.Context) error
}
