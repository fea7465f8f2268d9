package simplecache

import (
	"context"
	"errors"

	"github.com/isgasho/eden/backend"
	"github.com/isgasho/eden/backend/disk"
	"github.com/isgasho/eden/codec"
)

const defaultVersion = "1"

// Memoizer orchestrates key versioning, backend fallback on read,
// write-through on miss, and error containment.
type Memoizer struct {
	backends []backend.Backend
	version  string
	log      Logger
	hooks    Hooks
	enabled  bool
}

func newMemoizer(opts Options) (*Memoizer, error) {
	m := &Memoizer{
		backends: opts.Backends,
		enabled:  !opts.Disabled,
	}
	if m.backends == nil {
		m.backends = []backend.Backend{disk.New(disk.Config{})}
	}
	for _, b := range m.backends {
		if b == nil {
			return nil, &ContractError{Call: "New", Reason: "nil backend in chain"}
		}
	}
	m.version = coalesce(opts.Version, defaultVersion)
	if opts.Logger != nil {
		m.log = opts.Logger
	} else {
		m.log = defaultLogger()
	}
	if opts.Hooks != nil {
		m.hooks = opts.Hooks
	} else {
		m.hooks = NopHooks{}
	}
	return m, nil
}

func (m *Memoizer) Enabled() bool { return m.enabled }

// Close releases every backend in the chain, joining any errors.
func (m *Memoizer) Close(ctx context.Context) error {
	var errs []error
	for _, b := range m.backends {
		if err := b.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// storageKey appends the configured format version. Identical logical inputs
// under the same version always map to the same storage key.
func (m *Memoizer) storageKey(key string) string {
	return key + ":v" + m.version
}

// Memoize returns the cached value for key if any backend holds one, and
// otherwise runs compute, writes the result through to every backend, and
// returns it. compute runs at most once per call and must be deterministic
// for the key; non-determinism silently breaks the caching contract.
//
// A hit on a later backend does not repopulate earlier ones. That keeps a
// write-through-only discipline at the cost of never warming a fast backend
// from a slow one.
//
// An error from compute is returned unchanged. Backend and decode failures
// are contained: logged at debug level and treated as misses (reads) or
// no-ops (writes).
func Memoize[V any](ctx context.Context, m *Memoizer, key string, c codec.Codec[V], compute func() (V, error)) (V, error) {
	var zero V
	if err := validateKey(key); err != nil {
		return zero, err
	}
	if !m.enabled {
		return compute()
	}

	k := m.storageKey(key)
	for _, b := range m.backends {
		raw, ok, err := b.Get(ctx, k)
		if err != nil {
			m.log.Debug("backend get failed; treating as miss", Fields{"key": k, "backend": b.Name(), "err": err})
			m.hooks.BackendGetError(b.Name(), k, err)
			continue
		}
		if !ok {
			continue
		}
		v, err := c.Decode(raw)
		if err != nil {
			// Stale-format payloads are bypassed, not deleted.
			m.log.Debug("cached payload did not decode; treating as miss", Fields{"key": k, "backend": b.Name(), "err": err})
			m.hooks.DecodeError(b.Name(), k, err)
			continue
		}
		m.log.Debug("cache hit", Fields{"key": k, "backend": b.Name()})
		m.hooks.Hit(b.Name(), k)
		return v, nil
	}

	m.log.Debug("cache miss; computing", Fields{"key": k})
	m.hooks.Miss(k)
	v, err := compute()
	if err != nil {
		return zero, err
	}

	raw, err := c.Encode(v)
	if err != nil {
		m.log.Debug("encode failed; skipping write-through", Fields{"key": k, "err": err})
		return v, nil
	}
	for _, b := range m.backends {
		ok, err := b.Set(ctx, k, raw)
		switch {
		case err != nil:
			m.log.Debug("backend set failed", Fields{"key": k, "backend": b.Name(), "err": err})
			m.hooks.BackendSetError(b.Name(), k, err)
		case !ok:
			m.log.Debug("backend rejected set", Fields{"key": k, "backend": b.Name()})
			m.hooks.SetRejected(b.Name(), k)
		default:
			m.log.Debug("stored value", Fields{"key": k, "backend": b.Name()})
		}
	}
	return v, nil
}
