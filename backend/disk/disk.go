// Package disk implements a filesystem-backed backend with a probabilistic,
// metadata-free eviction policy.
//
// Each key maps to one file in a flat directory. When a write pushes the
// entry count past MaxEntries, a random EvictionFraction of all entries is
// deleted. This is explicitly not LRU/LFU: it trades eviction precision for
// zero bookkeeping. The directory may be shared by many uncoordinated
// processes, so the bound is best-effort — concurrent writers can race past
// it and the next write pulls it back down.
package disk

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

const (
	DefaultMaxEntries       = 2000
	DefaultEvictionFraction = 0.5
)

// DefaultDir returns the default cache directory, a fixed subdirectory of
// the system temp directory shared by all processes on the host.
func DefaultDir() string {
	return filepath.Join(os.TempDir(), "hgsimplecache")
}

type Config struct {
	Dir              string  // default: DefaultDir()
	MaxEntries       int     // eviction trigger; default 2000
	EvictionFraction float64 // share of entries deleted per eviction; default 0.5

	// Rand selects eviction victims. Inject a seeded source for reproducible
	// eviction in tests; if nil, a time-seeded source is used.
	Rand *rand.Rand
}

type Backend struct {
	dir      string
	max      int
	fraction float64
	rng      *rand.Rand
}

func New(cfg Config) *Backend {
	b := &Backend{
		dir:      cfg.Dir,
		max:      cfg.MaxEntries,
		fraction: cfg.EvictionFraction,
		rng:      cfg.Rand,
	}
	if b.dir == "" {
		b.dir = DefaultDir()
	}
	if b.max <= 0 {
		b.max = DefaultMaxEntries
	}
	if b.fraction <= 0 || b.fraction > 1 {
		b.fraction = DefaultEvictionFraction
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return b
}

func (b *Backend) Name() string { return "local" }

func (b *Backend) path(key string) string {
	return filepath.Join(b.dir, key)
}

// Get reads the entry file whole. A missing or unreadable file is a plain
// miss; disk trouble never fails the surrounding call.
func (b *Backend) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, err := os.ReadFile(b.path(key))
	if err != nil {
		return nil, false, nil
	}
	return v, true, nil
}

// Set writes the entry file and then runs eviction. All IO errors degrade
// to a dropped write (ok=false, nil error).
func (b *Backend) Set(_ context.Context, key string, value []byte) (bool, error) {
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return false, nil
	}
	if err := os.WriteFile(b.path(key), value, 0o644); err != nil {
		return false, nil
	}
	b.evict()
	return true, nil
}

// evict deletes a random fraction of all entries once the directory exceeds
// MaxEntries. No single call guarantees a bounded size; over a run of writes
// the count usually stays near the threshold.
func (b *Backend) evict() {
	entries, err := os.ReadDir(b.dir)
	if err != nil || len(entries) <= b.max {
		return
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	b.rng.Shuffle(len(names), func(i, j int) {
		names[i], names[j] = names[j], names[i]
	})
	n := int(float64(len(names)) * b.fraction)
	for _, name := range names[:n] {
		_ = os.Remove(filepath.Join(b.dir, name))
	}
}

func (b *Backend) Close(context.Context) error { return nil }
