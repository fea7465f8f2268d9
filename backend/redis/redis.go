// Package redis adapts a go-redis client to the backend interface, for
// chains that want a shared remote tier with TTL-based expiry instead of
// (or in front of) the memcached wire client.
package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

var ErrNilClient = errors.New("redis backend: nil client")

type Config struct {
	Client      goredis.UniversalClient
	CloseClient bool // set true only if this backend exclusively owns the client

	// Prefix namespaces keys on the wire, isolating this cache's entries
	// from co-tenants. Optional.
	Prefix string

	// TTL applied to every write; 0 means no expiry.
	TTL time.Duration
}

type Backend struct {
	rdb         goredis.UniversalClient
	prefix      string
	ttl         time.Duration
	closeClient bool
}

func New(cfg Config) (*Backend, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Backend{
		rdb:         cfg.Client,
		prefix:      cfg.Prefix,
		ttl:         cfg.TTL,
		closeClient: cfg.CloseClient,
	}, nil
}

func (b *Backend) Name() string { return "redis" }

func (b *Backend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := b.rdb.Get(ctx, b.prefix+key).Bytes()
	if err == goredis.Nil {
		return nil, false, nil // miss
	}
	if err != nil {
		return nil, false, err // transport/server error
	}
	return v, true, nil
}

func (b *Backend) Set(ctx context.Context, key string, value []byte) (bool, error) {
	if err := b.rdb.Set(ctx, b.prefix+key, value, b.ttl).Err(); err != nil {
		return false, err
	}
	return true, nil
}

// Close releases the underlying client only when this backend owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (b *Backend) Close(context.Context) error {
	if b.closeClient {
		if err := b.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
