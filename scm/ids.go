// Package scm carries the revision-comparison result shapes the cache was
// built for (path-copy maps and status sets), their codecs, and the key
// policy for revision identifiers.
package scm

import (
	"errors"

	simplecache "github.com/isgasho/eden"
)

// Sentinel identifiers that name no stable content. A key built from one of
// them would pin a cache entry to a moving target (the working directory,
// or "no revision at all") and serve stale results forever, so key
// construction refuses them outright.
const (
	NullID       = "0000000000000000000000000000000000000000"
	WorkingDirID = "ffffffffffffffffffffffffffffffffffffffff"
)

// ErrUncacheable is returned when a comparison involves a revision with no
// stable identity. Callers should run the computation directly and skip the
// cache for that call.
var ErrUncacheable = errors.New("scm: revision has no stable identity; refusing to build a cache key")

// Cacheable reports whether every identifier names stable content.
func Cacheable(ids ...string) bool {
	for _, id := range ids {
		switch id {
		case "", NullID, WorkingDirID:
			return false
		}
	}
	return true
}

// CompareKey builds the cache key for a two-revision operation, refusing
// sentinel identifiers. This is the integration boundary check: backends
// and codecs below never see an uncacheable key.
func CompareKey(op, a, b string) (string, error) {
	if !Cacheable(a, b) {
		return "", ErrUncacheable
	}
	return simplecache.Key(op, a, b), nil
}

// CopiesKey is the key for a path-copies comparison between two revisions.
func CopiesKey(a, b string) (string, error) {
	return CompareKey("pathcopies", a, b)
}

// StatusKey is the key for a status comparison between two revisions.
func StatusKey(a, b string) (string, error) {
	return CompareKey("buildstatus", a, b)
}
