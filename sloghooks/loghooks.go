// Package sloghooks logs nscache hook events via log/slog, with sampling
// for events that can flood (a dead generation counter fires on every
// operation) and key redaction for logs that leave the process.
package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/nscache"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	GenerationEvery uint64
	SetFailedEvery  uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	genCtr atomic.Uint64
	setCtr atomic.Uint64
}

var _ nscache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) GenerationUnreadable(setKey string, err error) {
	if h.l == nil || !sample(h.opts.GenerationEvery, &h.genCtr) {
		return
	}
	h.l.Warn("nscache.generation_unreadable",
		"set_key", setKey,
		"err", err)
}

func (h *Hooks) BackgroundSetFailed(key string, bytes int, err error) {
	if h.l == nil || !sample(h.opts.SetFailedEvery, &h.setCtr) {
		return
	}
	h.l.Warn("nscache.background_set_failed",
		"key", h.redact(key),
		"bytes", bytes,
		"err", err)
}

func (h *Hooks) BackendQuitFailed(err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("nscache.backend_quit_failed",
		"err", err)
}
