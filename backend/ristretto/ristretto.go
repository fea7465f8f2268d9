// Package ristretto adapts dgraph-io/ristretto as an in-process chain link
// with cost-based admission: the cost of an entry is its payload length, so
// MaxCost bounds resident bytes rather than entry count.
package ristretto

import (
	"context"
	"errors"

	rc "github.com/dgraph-io/ristretto"
)

type Config struct {
	NumCounters int64
	MaxCost     int64 // bound on total payload bytes
	BufferItems int64
	Metrics     bool
}

type Backend struct {
	c *rc.Cache
}

func New(cfg Config) (*Backend, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("ristretto: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Backend{c: c}, nil
}

func (b *Backend) Name() string { return "ristretto" }

func (b *Backend) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := b.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	raw, _ := v.([]byte)
	if raw == nil {
		// drop unexpected entry shape
		b.c.Del(key)
		return nil, false, nil
	}
	return raw, true, nil
}

func (b *Backend) Set(_ context.Context, key string, value []byte) (bool, error) {
	cost := int64(len(value))
	if cost == 0 {
		cost = 1
	}
	return b.c.Set(key, value, cost), nil
}

func (b *Backend) Close(context.Context) error {
	b.c.Wait()
	b.c.Close()
	return nil
}

// Metrics exposes ristretto's counters when Config.Metrics was set.
func (b *Backend) Metrics() *rc.Metrics { return b.c.Metrics }
