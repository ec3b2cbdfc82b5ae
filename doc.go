// Package nscache is a namespaced, generation-versioned facade over a
// key-value cache backend such as memcached or Redis.
//
// Every logical key is rewritten to a physical key that embeds the configured
// namespace and the current generation number:
//
//	<gen>.<ns>.<key>   when a generation is readable
//	.<ns>.<key>        when generation tracking is off or the counter is unreadable
//
// The generation lives in the backend itself, at a well-known counter key, as
// a 4-byte big-endian integer. An external invalidation process bumps that
// counter to logically invalidate every entry under the namespace at once;
// the facade only reads it. The counter is re-read before every operation, so
// a bump becomes visible to new operations as soon as the backend reflects it.
//
// Components:
//   - backend.Backend: the opaque byte store (Redis, memcached, BigCache).
//   - Metrics: per-operation timers and byte-volume histograms.
//   - Hooks: out-of-band callbacks for failures the caller never sees
//     (unreadable generation counter, failed background writes).
//
// Note on writes: Set is fire-and-forget. It returns true once the write has
// been dispatched; backend confirmation is never awaited. Callers must not
// treat the return value as a durability guarantee.
package nscache
