// Package backend defines the storage abstraction used by the memoization
// layer.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly
// the same []byte that was previously passed to Set for a key (no
// prepended/appended metadata, no re-encoding, no mutation). Payloads are
// opaque to backends; decoding and validation happen above, in the codecs.
//
// Backends are links in an ordered fallback chain. A Get error means "this
// link is unavailable right now" and is treated as a miss upstream; a Set
// error or ok=false means the write was dropped. Neither ever fails the
// surrounding Memoize call.
package backend

import "context"

// Backend is a minimal byte store.
//
// Stores may be shared by many processes with no coordination: writes and
// evictions race freely, and readers must tolerate entries vanishing or
// containing foreign bytes at any time.
type Backend interface {
	// Name identifies the backend in logs and hooks ("local", "memcache", ...).
	Name() string

	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key. Returns ok=false when the store dropped
	// the write (pressure, IO failure on a best-effort store).
	Set(ctx context.Context, key string, value []byte) (ok bool, err error)

	// Close releases resources.
	Close(ctx context.Context) error
}
