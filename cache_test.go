package simplecache

import (
	"context"
	"errors"
	"testing"

	"github.com/isgasho/eden/backend"
	c "github.com/isgasho/eden/codec"
)

// memBackend is an in-memory Backend with injectable failures, standing in
// for disk and memcache in orchestration tests.
type memBackend struct {
	name   string
	m      map[string][]byte
	getErr error // returned by every Get when set
	setErr error // returned by every Set when set
	reject bool  // Set returns ok=false without error

	gets, sets int
}

var _ backend.Backend = (*memBackend)(nil)

func newMemBackend(name string) *memBackend {
	return &memBackend{name: name, m: make(map[string][]byte)}
}

func (b *memBackend) Name() string { return b.name }

func (b *memBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	b.gets++
	if b.getErr != nil {
		return nil, false, b.getErr
	}
	v, ok := b.m[key]
	return v, ok, nil
}

func (b *memBackend) Set(_ context.Context, key string, value []byte) (bool, error) {
	b.sets++
	if b.setErr != nil {
		return false, b.setErr
	}
	if b.reject {
		return false, nil
	}
	b.m[key] = append([]byte(nil), value...)
	return true, nil
}

func (b *memBackend) Close(context.Context) error { return nil }

func newTestMemoizer(t *testing.T, backends ...backend.Backend) *Memoizer {
	t.Helper()
	m, err := New(Options{
		Backends: backends,
		Logger:   NopLogger{},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func TestMemoizeComputesOnceAndWritesThrough(t *testing.T) {
	ctx := context.Background()
	fast := newMemBackend("fast")
	slow := newMemBackend("slow")
	m := newTestMemoizer(t, fast, slow)

	calls := 0
	compute := func() (string, error) {
		calls++
		return "bar", nil
	}

	got, err := Memoize(ctx, m, "op:abc", c.String{}, compute)
	if err != nil || got != "bar" {
		t.Fatalf("Memoize: got=%q err=%v", got, err)
	}
	if calls != 1 {
		t.Fatalf("compute ran %d times, want 1", calls)
	}
	// Write-through reaches every backend, version suffix applied.
	for _, b := range []*memBackend{fast, slow} {
		if string(b.m["op:abc:v1"]) != "bar" {
			t.Fatalf("backend %s missing write-through, have %v", b.name, b.m)
		}
	}

	// Second call is a hit on the first backend; compute must not run.
	got, err = Memoize(ctx, m, "op:abc", c.String{}, compute)
	if err != nil || got != "bar" {
		t.Fatalf("Memoize (cached): got=%q err=%v", got, err)
	}
	if calls != 1 {
		t.Fatalf("compute ran again on a hit: %d calls", calls)
	}
	if slow.gets != 1 {
		t.Fatalf("second read should stop at the first backend; slow.gets=%d", slow.gets)
	}
}

func TestMemoizeLaterHitDoesNotBackfillEarlierBackend(t *testing.T) {
	ctx := context.Background()
	fast := newMemBackend("fast")
	slow := newMemBackend("slow")
	slow.m["op:abc:v1"] = []byte("bar")
	m := newTestMemoizer(t, fast, slow)

	got, err := Memoize(ctx, m, "op:abc", c.String{}, func() (string, error) {
		t.Fatal("compute must not run on a hit")
		return "", nil
	})
	if err != nil || got != "bar" {
		t.Fatalf("Memoize: got=%q err=%v", got, err)
	}
	// First-hit-wins: the fast backend is left cold.
	if len(fast.m) != 0 || fast.sets != 0 {
		t.Fatalf("fast backend was back-filled: %v", fast.m)
	}
}

func TestMemoizeSkipsFailingBackend(t *testing.T) {
	ctx := context.Background()
	down := newMemBackend("down")
	down.getErr = errors.New("connection refused")
	up := newMemBackend("up")
	up.m["k:v1"] = []byte("cached")
	m := newTestMemoizer(t, down, up)

	got, err := Memoize(ctx, m, "k", c.String{}, func() (string, error) {
		t.Fatal("compute must not run; second backend has the value")
		return "", nil
	})
	if err != nil || got != "cached" {
		t.Fatalf("Memoize: got=%q err=%v", got, err)
	}
}

func TestMemoizeTreatsUndecodablePayloadAsMiss(t *testing.T) {
	ctx := context.Background()
	stale := newMemBackend("stale")
	stale.m["k:v1"] = []byte("not json")
	good := newMemBackend("good")
	good.m["k:v1"] = []byte(`{"a":"b"}`)
	m := newTestMemoizer(t, stale, good)

	got, err := Memoize(ctx, m, "k", c.JSON[map[string]string]{}, func() (map[string]string, error) {
		t.Fatal("compute must not run")
		return nil, nil
	})
	if err != nil || got["a"] != "b" {
		t.Fatalf("Memoize: got=%v err=%v", got, err)
	}
	// Stale-format entries are bypassed, not deleted.
	if _, ok := stale.m["k:v1"]; !ok {
		t.Fatal("stale entry was deleted")
	}
}

func TestMemoizeComputeErrorPropagates(t *testing.T) {
	ctx := context.Background()
	b := newMemBackend("mem")
	m := newTestMemoizer(t, b)

	want := errors.New("diff blew up")
	_, err := Memoize(ctx, m, "k", c.String{}, func() (string, error) {
		return "", want
	})
	if err != want {
		t.Fatalf("compute error not propagated unchanged: %v", err)
	}
	if b.sets != 0 {
		t.Fatalf("failed compute must not be written through; sets=%d", b.sets)
	}
}

func TestMemoizeSurvivesAllWriteFailures(t *testing.T) {
	ctx := context.Background()
	broken := newMemBackend("broken")
	broken.setErr = errors.New("disk full")
	rejecting := newMemBackend("rejecting")
	rejecting.reject = true
	m := newTestMemoizer(t, broken, rejecting)

	got, err := Memoize(ctx, m, "k", c.String{}, func() (string, error) {
		return "value", nil
	})
	if err != nil || got != "value" {
		t.Fatalf("Memoize: got=%q err=%v", got, err)
	}
	// Both backends were still attempted.
	if broken.sets != 1 || rejecting.sets != 1 {
		t.Fatalf("write-through attempts: broken=%d rejecting=%d", broken.sets, rejecting.sets)
	}
}

func TestMemoizeRejectsUnframeableKeys(t *testing.T) {
	ctx := context.Background()
	b := newMemBackend("mem")
	m := newTestMemoizer(t, b)

	for _, key := range []string{"", "has space", "has\nnewline", "has\rcr"} {
		_, err := Memoize(ctx, m, key, c.String{}, func() (string, error) { return "", nil })
		var ce *ContractError
		if !errors.As(err, &ce) {
			t.Fatalf("key %q: want ContractError, got %v", key, err)
		}
	}
	if b.gets != 0 || b.sets != 0 {
		t.Fatal("contract violations must fail before reaching backends")
	}
}

func TestMemoizeVersionBumpInvalidates(t *testing.T) {
	ctx := context.Background()
	b := newMemBackend("mem")

	m1, err := New(Options{Backends: []backend.Backend{b}, Version: "1", Logger: NopLogger{}})
	if err != nil {
		t.Fatal(err)
	}
	m2, err := New(Options{Backends: []backend.Backend{b}, Version: "2", Logger: NopLogger{}})
	if err != nil {
		t.Fatal(err)
	}

	calls := 0
	compute := func() (string, error) { calls++; return "v", nil }

	if _, err := Memoize(ctx, m1, "k", c.String{}, compute); err != nil {
		t.Fatal(err)
	}
	if _, err := Memoize(ctx, m2, "k", c.String{}, compute); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Fatalf("version bump must produce disjoint keys; compute ran %d times", calls)
	}
	if _, ok := b.m["k:v1"]; !ok {
		t.Fatal("missing v1 entry")
	}
	if _, ok := b.m["k:v2"]; !ok {
		t.Fatal("missing v2 entry")
	}
}

func TestMemoizeDisabledAlwaysComputes(t *testing.T) {
	ctx := context.Background()
	b := newMemBackend("mem")
	m, err := New(Options{Backends: []backend.Backend{b}, Disabled: true, Logger: NopLogger{}})
	if err != nil {
		t.Fatal(err)
	}
	if m.Enabled() {
		t.Fatal("Enabled() should report false")
	}

	calls := 0
	for i := 0; i < 3; i++ {
		got, err := Memoize(ctx, m, "k", c.String{}, func() (string, error) {
			calls++
			return "v", nil
		})
		if err != nil || got != "v" {
			t.Fatalf("Memoize: got=%q err=%v", got, err)
		}
	}
	if calls != 3 {
		t.Fatalf("disabled memoizer must always compute; calls=%d", calls)
	}
	if b.gets != 0 || b.sets != 0 {
		t.Fatal("disabled memoizer must not touch backends")
	}
}

func TestNewRejectsNilBackend(t *testing.T) {
	_, err := New(Options{Backends: []backend.Backend{nil}, Logger: NopLogger{}})
	var ce *ContractError
	if !errors.As(err, &ce) {
		t.Fatalf("want ContractError, got %v", err)
	}
}

type countingHooks struct {
	hits, misses, getErrs, setErrs, decodeErrs, rejects int
}

func (h *countingHooks) Hit(string, string)                    { h.hits++ }
func (h *countingHooks) Miss(string)                           { h.misses++ }
func (h *countingHooks) BackendGetError(string, string, error) { h.getErrs++ }
func (h *countingHooks) BackendSetError(string, string, error) { h.setErrs++ }
func (h *countingHooks) DecodeError(string, string, error)     { h.decodeErrs++ }
func (h *countingHooks) SetRejected(string, string)            { h.rejects++ }

func TestMemoizeFiresHooks(t *testing.T) {
	ctx := context.Background()
	down := newMemBackend("down")
	down.getErr = errors.New("refused")
	down.setErr = errors.New("refused")
	ok := newMemBackend("ok")

	h := &countingHooks{}
	m, err := New(Options{Backends: []backend.Backend{down, ok}, Logger: NopLogger{}, Hooks: h})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Memoize(ctx, m, "k", c.String{}, func() (string, error) { return "v", nil }); err != nil {
		t.Fatal(err)
	}
	if h.misses != 1 || h.getErrs != 1 || h.setErrs != 1 {
		t.Fatalf("first call hooks: %+v", *h)
	}
	if _, err := Memoize(ctx, m, "k", c.String{}, func() (string, error) { return "v", nil }); err != nil {
		t.Fatal(err)
	}
	if h.hits != 1 {
		t.Fatalf("second call should hit: %+v", *h)
	}
}
