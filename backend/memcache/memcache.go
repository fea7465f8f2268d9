// Package memcache implements a backend speaking the memcached text
// protocol, typically against a local mcrouter that fans out to a shared
// fleet. Keys are prefixed with a namespace tag so this cache's entries are
// isolated from co-tenants on the same fleet.
//
// One TCP connection is opened per operation, used for exactly one
// exchange, and closed on every exit path. There is no pooling and no
// retry: a failed exchange is a miss (get) or a dropped write (set), and a
// fresh connection next call limits the blast radius of any framing
// desync.
package memcache

import (
	"context"
	"net"
	"strconv"

	"github.com/isgasho/eden/internal/mcproto"
)

const (
	DefaultHost      = "localhost"
	DefaultPort      = 11101
	DefaultNamespace = "cca.hg."
)

type Config struct {
	Host      string // default "localhost"
	Port      int    // default 11101
	Namespace string // key prefix on the wire; default "cca.hg."
}

type Backend struct {
	addr   string
	ns     string
	dialer net.Dialer
}

func New(cfg Config) *Backend {
	host := cfg.Host
	if host == "" {
		host = DefaultHost
	}
	port := cfg.Port
	if port == 0 {
		port = DefaultPort
	}
	ns := cfg.Namespace
	if ns == "" {
		ns = DefaultNamespace
	}
	return &Backend{
		addr: net.JoinHostPort(host, strconv.Itoa(port)),
		ns:   ns,
	}
}

func (b *Backend) Name() string { return "memcache" }

func (b *Backend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	k := b.ns + key
	if err := mcproto.ValidateKey(k); err != nil {
		return nil, false, err
	}
	conn, err := b.dialer.DialContext(ctx, "tcp", b.addr)
	if err != nil {
		return nil, false, err
	}
	defer conn.Close()

	if err := mcproto.WriteGet(conn, k); err != nil {
		return nil, false, err
	}
	return mcproto.ReadGetResponse(conn)
}

func (b *Backend) Set(ctx context.Context, key string, value []byte) (bool, error) {
	k := b.ns + key
	if err := mcproto.ValidateKey(k); err != nil {
		return false, err
	}
	conn, err := b.dialer.DialContext(ctx, "tcp", b.addr)
	if err != nil {
		return false, err
	}
	defer conn.Close()

	if err := mcproto.WriteSet(conn, k, value); err != nil {
		return false, err
	}
	return mcproto.ReadSetReply(conn)
}

func (b *Backend) Close(context.Context) error { return nil }
