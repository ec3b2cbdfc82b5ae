// Package asynchook wraps a Hooks implementation with a bounded worker
// queue so slow sinks never stall the cache hot path. Events are dropped
// when the queue is full.
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
package asynchook

import (
	"sync"

	"github.com/unkn0wn-root/nscache"
)

type Hooks struct {
	inner nscache.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ nscache.Hooks = (*Hooks)(nil)

func New(inner nscache.Hooks, workers, qlen int) *Hooks {
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

// Close drains the queue and stops the workers. Events submitted after
// Close are dropped.
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

func (h *Hooks) GenerationUnreadable(setKey string, err error) {
	h.try(func() { h.inner.GenerationUnreadable(setKey, err) })
}

func (h *Hooks) BackgroundSetFailed(key string, bytes int, err error) {
	h.try(func() { h.inner.BackgroundSetFailed(key, bytes, err) })
}

func (h *Hooks) BackendQuitFailed(err error) {
	h.try(func() { h.inner.BackendQuitFailed(err) })
}
