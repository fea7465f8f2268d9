package simplecache

// Hooks are lightweight callbacks for high-signal cache events.
// Implementations MUST be cheap and non-blocking; the Memoizer calls them
// on hot paths. Wrap with hooks/async to decouple slow consumers.
type Hooks interface {
	// A backend returned a decodable payload; value served from cache.
	Hit(backend, key string)

	// Every backend missed; the compute function is about to run.
	Miss(key string)

	// A backend Get failed (unreachable store, protocol desync). Treated
	// as a miss by the Memoizer.
	BackendGetError(backend, key string, err error)

	// A write-through Set failed. The computed value is still returned.
	BackendSetError(backend, key string, err error)

	// A stored payload did not decode (format drift, co-tenant write).
	// Bypassed, not deleted.
	DecodeError(backend, key string, err error)

	// A backend declined a Set without error (pressure, full store).
	SetRejected(backend, key string)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) Hit(string, string)                    {}
func (NopHooks) Miss(string)                           {}
func (NopHooks) BackendGetError(string, string, error) {}
func (NopHooks) BackendSetError(string, string, error) {}
func (NopHooks) DecodeError(string, string, error)     {}
func (NopHooks) SetRejected(string, string)            {}
