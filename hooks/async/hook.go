// Package asynchook wraps a Hooks implementation with a bounded queue and
// worker pool, so slow consumers (network sinks, heavy log pipelines) never
// stall the memoize hot path. Events are dropped when the queue is full.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    HitEvery:  10, // sample logs: ~every 10th hit
//	    MissEvery: 1,  // log every miss
//	})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
package asynchook

import (
	"sync"

	simplecache "github.com/isgasho/eden"
)

type Hooks struct {
	inner simplecache.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ simplecache.Hooks = (*Hooks)(nil)

func New(inner simplecache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) Hit(b, k string) { h.try(func() { h.inner.Hit(b, k) }) }
func (h *Hooks) Miss(k string)   { h.try(func() { h.inner.Miss(k) }) }
func (h *Hooks) BackendGetError(b, k string, err error) {
	h.try(func() { h.inner.BackendGetError(b, k, err) })
}
func (h *Hooks) BackendSetError(b, k string, err error) {
	h.try(func() { h.inner.BackendSetError(b, k, err) })
}
func (h *Hooks) DecodeError(b, k string, err error) {
	h.try(func() { h.inner.DecodeError(b, k, err) })
}
func (h *Hooks) SetRejected(b, k string) { h.try(func() { h.inner.SetRejected(b, k) }) }
