// Package codec defines the serialization contract between cached values
// and the opaque byte payloads backends store.
//
// Every codec must be a pure, stateless pair of inverses:
// Decode(Encode(v)) == v for all values producible by the cached operation,
// including empty and degenerate results. Decode must fail fast on payloads
// of the wrong shape rather than coerce; an error here makes the memoizer
// bypass the entry as a miss.
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
