package simplecache

import (
	"github.com/isgasho/eden/backend"
)

// Options tune the behavior of a Memoizer.
// All fields are optional; the zero value yields a local-disk-only chain.
type Options struct {
	// Backends is the ordered fallback chain. Reads probe backends in slice
	// order and the first decodable hit wins; writes go to every backend.
	// If nil, a local disk backend with default settings is used.
	Backends []backend.Backend

	// Version is appended to every key as ":v<version>". Bumping it
	// invalidates all prior entries without touching the stores. Default "1".
	Version string

	Logger Logger // if nil, a debug logger is used (NopLogger under TESTTMP)
	Hooks  Hooks  // if nil, NopHooks

	// Disabled short-circuits every Memoize call straight to the compute
	// function. Useful as a kill switch; default false (enabled).
	Disabled bool
}

// New builds a Memoizer from opts. The returned Memoizer is the only
// component callers invoke directly; see Memoize.
func New(opts Options) (*Memoizer, error) {
	return newMemoizer(opts)
}
