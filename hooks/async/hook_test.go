package asynchook

import (
	"errors"
	"sync"
	"testing"
)

type countingHooks struct {
	mu            sync.Mutex
	genUnreadable int
	setFailed     int
	quitFailed    int
}

func (c *countingHooks) GenerationUnreadable(string, error) {
	c.mu.Lock()
	c.genUnreadable++
	c.mu.Unlock()
}

func (c *countingHooks) BackgroundSetFailed(string, int, error) {
	c.mu.Lock()
	c.setFailed++
	c.mu.Unlock()
}

func (c *countingHooks) BackendQuitFailed(error) {
	c.mu.Lock()
	c.quitFailed++
	c.mu.Unlock()
}

func TestEventsReachInnerHooks(t *testing.T) {
	inner := &countingHooks{}
	h := New(inner, 2, 100)

	err := errors.New("boom")
	for i := 0; i < 10; i++ {
		h.GenerationUnreadable("app-set", err)
		h.BackgroundSetFailed("user:1", 10, err)
	}
	h.BackendQuitFailed(err)
	h.Close() // drains the queue

	inner.mu.Lock()
	defer inner.mu.Unlock()
	if inner.genUnreadable != 10 || inner.setFailed != 10 || inner.quitFailed != 1 {
		t.Fatalf("counts = %d/%d/%d, want 10/10/1", inner.genUnreadable, inner.setFailed, inner.quitFailed)
	}
}

func TestFullQueueDropsInsteadOfBlocking(t *testing.T) {
	block := make(chan struct{})
	inner := blockingHooks{block: block}
	h := New(inner, 1, 1)

	// first event occupies the worker, second fills the queue; the rest
	// must drop without blocking this goroutine
	for i := 0; i < 50; i++ {
		h.BackendQuitFailed(errors.New("x"))
	}
	close(block)
	h.Close()
}

type blockingHooks struct{ block chan struct{} }

func (b blockingHooks) GenerationUnreadable(string, error)     { <-b.block }
func (b blockingHooks) BackgroundSetFailed(string, int, error) { <-b.block }
func (b blockingHooks) BackendQuitFailed(error)                { <-b.block }
