// Package sloghooks emits cache events through log/slog with sampling on
// the hot-path events (hits and misses) and key redaction for shared logs.
package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	simplecache "github.com/isgasho/eden"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	HitEvery  uint64
	MissEvery uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	hitCtr  atomic.Uint64
	missCtr atomic.Uint64
}

var _ simplecache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) Hit(backend, key string) {
	if h.l == nil || !sample(h.opts.HitEvery, &h.hitCtr) {
		return
	}
	h.l.Debug("simplecache.hit",
		"backend", backend,
		"key", h.redact(key))
}

func (h *Hooks) Miss(key string) {
	if h.l == nil || !sample(h.opts.MissEvery, &h.missCtr) {
		return
	}
	h.l.Debug("simplecache.miss",
		"key", h.redact(key))
}

func (h *Hooks) BackendGetError(backend, key string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("simplecache.backend_get_error",
		"backend", backend,
		"key", h.redact(key),
		"err", err)
}

func (h *Hooks) BackendSetError(backend, key string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("simplecache.backend_set_error",
		"backend", backend,
		"key", h.redact(key),
		"err", err)
}

func (h *Hooks) DecodeError(backend, key string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("simplecache.decode_error",
		"backend", backend,
		"key", h.redact(key),
		"err", err)
}

func (h *Hooks) SetRejected(backend, key string) {
	if h.l == nil {
		return
	}
	h.l.Info("simplecache.set_rejected",
		"backend", backend,
		"key", h.redact(key))
}
