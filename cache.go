package nscache

import (
	"context"
	"fmt"
	"sync"
	"time"

	be "github.com/unkn0wn-root/nscache/backend"
)

const defaultSetWriteTimeout = 10 * time.Second

const healthMessage = "Cache Looking good"

type cache struct {
	ns      string
	setKey  string
	backend be.Backend
	log     Logger
	hooks   Hooks

	setWriteTimeout time.Duration

	// metric handles are resolved once at construction; names are
	// memcache.<ns>.<op> and memcache.<ns>.{inserted,failed}-data-bytes.
	getTimer    Timer
	setTimer    Timer
	deleteTimer Timer
	incrTimer   Timer
	decrTimer   Timer
	deriveTimer Timer

	insertedBytes Histogram
	failedBytes   Histogram

	closeOnce sync.Once
}

var _ Cache = (*cache)(nil)

func newCache(opts Options) (*cache, error) {
	if opts.Backend == nil {
		return nil, ErrBackendRequired
	}
	if opts.Namespace == "" {
		return nil, ErrNamespaceRequired
	}

	c := &cache{
		ns:      opts.Namespace,
		setKey:  opts.SetKey,
		backend: opts.Backend,
	}

	// defaults
	c.log = coalesce[Logger](opts.Logger, NopLogger{})
	c.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	c.setWriteTimeout = coalesce[time.Duration](opts.SetWriteTimeout, defaultSetWriteTimeout)

	m := coalesce[Metrics](opts.Metrics, NopMetrics{})
	c.getTimer = m.Timer(timerName(c.ns, "get"))
	c.setTimer = m.Timer(timerName(c.ns, "set"))
	c.deleteTimer = m.Timer(timerName(c.ns, "delete"))
	c.incrTimer = m.Timer(timerName(c.ns, "increment"))
	c.decrTimer = m.Timer(timerName(c.ns, "decrement"))
	c.deriveTimer = m.Timer(timerName(c.ns, "derive-key"))
	c.insertedBytes = m.Histogram(timerName(c.ns, "inserted-data-bytes"))
	c.failedBytes = m.Histogram(timerName(c.ns, "failed-data-bytes"))

	return c, nil
}

func timerName(ns, op string) string {
	return "memcache." + ns + "." + op
}

func (c *cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	sw := c.getTimer.Start()
	k := c.deriveKey(ctx, key)
	v, ok, err := c.backend.Get(ctx, k)
	if err != nil {
		sw.Failure()
		return nil, false, fmt.Errorf("get %q: %w", key, err)
	}
	if !ok {
		// A miss is a valid empty result for the caller but is sampled
		// on the failure side of the timer.
		sw.Failure()
		return nil, false, nil
	}
	sw.Success()
	return v, true, nil
}

// Set returns once the write has been dispatched. The backend write runs on
// its own goroutine under setWriteTimeout; its outcome is reported through
// the failed-bytes histogram and Hooks.BackgroundSetFailed, never the caller.
func (c *cache) Set(ctx context.Context, key string, value []byte) (bool, error) {
	sw := c.setTimer.Start()
	k := c.deriveKey(ctx, key)
	n := len(value)

	go func() {
		wctx, cancel := context.WithTimeout(context.Background(), c.setWriteTimeout)
		defer cancel()
		if err := c.backend.Set(wctx, k, value); err != nil {
			c.failedBytes.Update(int64(n))
			c.hooks.BackgroundSetFailed(key, n, err)
			c.log.Warn("background set failed", Fields{"key": key, "bytes": n, "err": err})
		}
	}()

	c.insertedBytes.Update(int64(n))
	sw.Success()
	return true, nil
}

func (c *cache) Delete(ctx context.Context, key string) (bool, error) {
	sw := c.deleteTimer.Start()
	k := c.deriveKey(ctx, key)
	ok, err := c.backend.Delete(ctx, k)
	if err != nil {
		sw.Failure()
		return false, fmt.Errorf("delete %q: %w", key, err)
	}
	sw.Success()
	return ok, nil
}

func (c *cache) Increment(ctx context.Context, key string, delta int64) (int64, bool, error) {
	sw := c.incrTimer.Start()
	k := c.deriveKey(ctx, key)
	v, ok, err := c.backend.Incr(ctx, k, delta)
	if err != nil {
		sw.Failure()
		return 0, false, fmt.Errorf("incr %q: %w", key, err)
	}
	sw.Success()
	return v, ok, nil
}

func (c *cache) Decrement(ctx context.Context, key string, delta int64) (int64, bool, error) {
	sw := c.decrTimer.Start()
	k := c.deriveKey(ctx, key)
	v, ok, err := c.backend.Decr(ctx, k, delta)
	if err != nil {
		sw.Failure()
		return 0, false, fmt.Errorf("decr %q: %w", key, err)
	}
	sw.Success()
	return v, ok, nil
}

func (c *cache) DeriveKey(ctx context.Context, key string) string {
	sw := c.deriveTimer.Start()
	k := c.deriveKey(ctx, key)
	// resolution cannot fail; unreadable generations degrade to the sentinel
	sw.Success()
	return k
}

// CheckHealth reports the facade itself, not backend reachability. A real
// liveness probe (stats round-trip) would hang off the backend here.
func (c *cache) CheckHealth(context.Context) Status {
	return Status{Healthy: true, Message: healthMessage}
}

func (c *cache) Close(context.Context) {
	c.closeOnce.Do(func() {
		go func() {
			qctx, cancel := context.WithTimeout(context.Background(), c.setWriteTimeout)
			defer cancel()
			if err := c.backend.Quit(qctx); err != nil {
				c.hooks.BackendQuitFailed(err)
				c.log.Warn("backend quit failed", Fields{"err": err})
			}
		}()
	})
}
