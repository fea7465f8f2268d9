// Package bigcache adapts allegro/bigcache as an in-process chain link: a
// fast first tier in front of disk or a remote fleet. Entries age out with
// the global LifeWindow rather than per-entry TTLs.
package bigcache

import (
	"context"
	"time"

	bc "github.com/allegro/bigcache/v3"
)

type Config struct {
	LifeWindow         time.Duration
	CleanWindow        time.Duration
	MaxEntriesInWindow int
	MaxEntrySize       int
	HardMaxCacheSizeMB int // ~ memory limit; 0 = unlimited
}

type Backend struct {
	c *bc.BigCache
}

func New(cfg Config) (*Backend, error) {
	conf := bc.DefaultConfig(cfg.LifeWindow)
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	c, err := bc.New(context.Background(), conf)
	if err != nil {
		return nil, err
	}
	return &Backend{c: c}, nil
}

func (b *Backend) Name() string { return "bigcache" }

func (b *Backend) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, err := b.c.Get(key)
	if err == bc.ErrEntryNotFound {
		return nil, false, nil
	}
	return v, err == nil, err
}

func (b *Backend) Set(_ context.Context, key string, value []byte) (bool, error) {
	return true, b.c.Set(key, value)
}

func (b *Backend) Close(context.Context) error {
	return b.c.Close()
}
