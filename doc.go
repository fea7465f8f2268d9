// Package simplecache is a transparent memoization layer for expensive,
// deterministic computations. Results are cached under a content-derived key
// across an ordered chain of backends; the first backend that yields a
// decodable payload wins, and a full miss falls back to the computation with
// a best-effort write-through to every backend afterwards.
//
// Components:
//   - Backend: byte store with Get/Set (e.g. local disk, memcached, Redis).
//   - Codec[V]: (de)serializes V <-> []byte for one result shape.
//   - Memoizer: fallback-then-compute-then-write-through orchestration.
//
// Keys:
//
//	<op>:<id>:...:<id>:v<version>  - op tag, content identifiers, version
//
// Bumping the configured version moves every key into a disjoint keyspace,
// implicitly invalidating all prior entries without deleting them.
//
// Cache failures never surface to the caller: an unreachable backend or an
// undecodable payload is an ordinary miss, and a failed write-through is
// ignored. Only a failure of the computation itself is returned.
package simplecache
