package simplecache

import (
	"strings"
)

const keySeparator = ":"

// Key joins an operation tag and its content identifiers into a cache key.
// Identifiers must already be collision-resistant (content hashes); Key only
// concatenates, it does not hash. The Memoizer appends the version suffix.
func Key(op string, ids ...string) string {
	parts := make([]string, 0, len(ids)+1)
	parts = append(parts, op)
	parts = append(parts, ids...)
	return strings.Join(parts, keySeparator)
}

// validateKey rejects keys that cannot travel every backend: empty keys and
// keys containing whitespace or control bytes would desynchronize the
// memcached text framing. This is a programming error, not a runtime
// condition, so it fails the call instead of degrading to a miss.
func validateKey(key string) error {
	if key == "" {
		return &ContractError{Call: "Memoize", Reason: "empty key"}
	}
	for i := 0; i < len(key); i++ {
		if key[i] <= ' ' || key[i] == 0x7f {
			return &ContractError{Call: "Memoize", Reason: "key contains whitespace or control bytes", Detail: key}
		}
	}
	return nil
}
