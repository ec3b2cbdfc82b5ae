// Package bigcache provides an in-process backend for tests and
// single-process deployments. Counters are stored as ASCII decimal, the same
// representation memcached uses, and mutated read-modify-write under striped
// locks.
package bigcache

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	bc "github.com/allegro/bigcache/v3"

	be "github.com/unkn0wn-root/nscache/backend"
)

const lockStripes = 64

var ErrNotNumeric = errors.New("bigcache backend: value is not a counter")

type Backend struct {
	c     *bc.BigCache
	locks [lockStripes]sync.Mutex
}

var _ be.Backend = (*Backend)(nil)

type Config struct {
	LifeWindow         time.Duration
	CleanWindow        time.Duration
	MaxEntriesInWindow int
	MaxEntrySize       int
	HardMaxCacheSizeMB int // ~ memory limit; 0 = unlimited
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

func (b *Backend) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, err := b.c.Get(key)
	if errors.Is(err, bc.ErrEntryNotFound) {
		return nil, false, nil
	}
	return v, err == nil, err
}

func (b *Backend) Set(_ context.Context, key string, value []byte) error {
	return b.c.Set(key, value)
}

func (b *Backend) Delete(_ context.Context, key string) (bool, error) {
	err := b.c.Delete(key)
	if errors.Is(err, bc.ErrEntryNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (b *Backend) Incr(ctx context.Context, key string, delta int64) (int64, bool, error) {
	return b.addToCounter(ctx, key, delta)
}

func (b *Backend) Decr(ctx context.Context, key string, delta int64) (int64, bool, error) {
	return b.addToCounter(ctx, key, -delta)
}

// addToCounter applies a signed delta. Missing keys are a miss, not a
// creation, and results floor at zero like memcached counters.
func (b *Backend) addToCounter(ctx context.Context, key string, delta int64) (int64, bool, error) {
	mu := &b.locks[stripe(key)]
	mu.Lock()
	defer mu.Unlock()

	raw, ok, err := b.Get(ctx, key)
	if err != nil {
		return 0, false, err
	}
	if !ok {
		return 0, false, nil
	}
	cur, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, false, ErrNotNumeric
	}
	next := cur + delta
	if next < 0 {
		next = 0
	}
	if err := b.c.Set(key, []byte(strconv.FormatInt(next, 10))); err != nil {
		return 0, false, err
	}
	return next, true, nil
}

func stripe(key string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return h.Sum32() % lockStripes
}

func (b *Backend) Quit(context.Context) error {
	return b.c.Close()
}
