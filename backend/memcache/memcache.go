// Package memcache adapts bradfitz/gomemcache to the backend contract.
//
// gomemcache has no context support; the ctx arguments are ignored and
// deadlines are governed by Client.Timeout.
package memcache

import (
	"context"
	"errors"
	"time"

	gomc "github.com/bradfitz/gomemcache/memcache"

	be "github.com/unkn0wn-root/nscache/backend"
)

var ErrNoServers = errors.New("memcache backend: no server addresses")

type Memcache struct {
	mc *gomc.Client
}

var _ be.Backend = (*Memcache)(nil)

type Config struct {
	// Addrs are the memcached server addresses ("host:port"). Ignored when
	// Client is set.
	Addrs []string

	// Client is an optional preconfigured client; the backend takes
	// ownership of it.
	Client *gomc.Client

	Timeout      time.Duration // socket read/write timeout; 0 keeps the client default
	MaxIdleConns int           // 0 keeps the client default
}

func New(cfg Config) (*Memcache, error) {
	if cfg.Client != nil {
		return &Memcache{mc: cfg.Client}, nil
	}
	if len(cfg.Addrs) == 0 {
		return nil, ErrNoServers
	}
	mc := gomc.New(cfg.Addrs...)
	if cfg.Timeout > 0 {
		mc.Timeout = cfg.Timeout
	}
	if cfg.MaxIdleConns > 0 {
		mc.MaxIdleConns = cfg.MaxIdleConns
	}
	return &Memcache{mc: mc}, nil
}

func (b *Memcache) Get(_ context.Context, key string) ([]byte, bool, error) {
	it, err := b.mc.Get(key)
	if errors.Is(err, gomc.ErrCacheMiss) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return it.Value, true, nil
}

func (b *Memcache) Set(_ context.Context, key string, value []byte) error {
	return b.mc.Set(&gomc.Item{Key: key, Value: value})
}

func (b *Memcache) Delete(_ context.Context, key string) (bool, error) {
	err := b.mc.Delete(key)
	if errors.Is(err, gomc.ErrCacheMiss) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (b *Memcache) Incr(_ context.Context, key string, delta int64) (int64, bool, error) {
	return b.apply(key, delta)
}

func (b *Memcache) Decr(_ context.Context, key string, delta int64) (int64, bool, error) {
	return b.apply(key, -delta)
}

// apply routes a signed delta through memcached's unsigned incr/decr.
// Decrements floor at zero per protocol.
func (b *Memcache) apply(key string, delta int64) (int64, bool, error) {
	var (
		v   uint64
		err error
	)
	if delta < 0 {
		v, err = b.mc.Decrement(key, uint64(-delta))
	} else {
		v, err = b.mc.Increment(key, uint64(delta))
	}
	if errors.Is(err, gomc.ErrCacheMiss) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return int64(v), true, nil
}

func (b *Memcache) Quit(context.Context) error {
	return b.mc.Close()
}
