// Package prometheus adapts a prometheus Registerer to the nscache Metrics
// interface. Timers become duration histograms partitioned by an "outcome"
// label (success/failure); byte histograms stay plain histograms.
//
// Dots and hyphens in metric names are rewritten to underscores, so
// "memcache.user.get" is exported as "memcache_user_get_duration_seconds".
package prometheus

import (
	"errors"
	"strings"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/unkn0wn-root/nscache"
)

const (
	outcomeLabel   = "outcome"
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

type Adapter struct {
	reg         prom.Registerer
	durBuckets  []float64
	byteBuckets []float64

	mu     sync.Mutex
	timers map[string]*prom.HistogramVec
	hists  map[string]prom.Histogram
}

var _ nscache.Metrics = (*Adapter)(nil)

type Config struct {
	Registerer      prom.Registerer // nil => prometheus.DefaultRegisterer
	DurationBuckets []float64       // nil => prometheus.DefBuckets
	ByteBuckets     []float64       // nil => exponential 64B..1MB
}

func New(cfg Config) *Adapter {
	a := &Adapter{
		reg:         cfg.Registerer,
		durBuckets:  cfg.DurationBuckets,
		byteBuckets: cfg.ByteBuckets,
		timers:      make(map[string]*prom.HistogramVec),
		hists:       make(map[string]prom.Histogram),
	}
	if a.reg == nil {
		a.reg = prom.DefaultRegisterer
	}
	if a.durBuckets == nil {
		a.durBuckets = prom.DefBuckets
	}
	if a.byteBuckets == nil {
		a.byteBuckets = prom.ExponentialBuckets(64, 4, 8)
	}
	return a
}

func (a *Adapter) Timer(name string) nscache.Timer {
	a.mu.Lock()
	defer a.mu.Unlock()

	hv, ok := a.timers[name]
	if !ok {
		hv = prom.NewHistogramVec(prom.HistogramOpts{
			Name:    sanitize(name) + "_duration_seconds",
			Help:    "Latency of " + name + " by outcome.",
			Buckets: a.durBuckets,
		}, []string{outcomeLabel})
		hv = a.registerVec(hv)
		a.timers[name] = hv
	}
	return timer{hv: hv}
}

func (a *Adapter) Histogram(name string) nscache.Histogram {
	a.mu.Lock()
	defer a.mu.Unlock()

	h, ok := a.hists[name]
	if !ok {
		h = prom.NewHistogram(prom.HistogramOpts{
			Name:    sanitize(name),
			Help:    "Sample distribution of " + name + ".",
			Buckets: a.byteBuckets,
		})
		h = a.registerHist(h)
		a.hists[name] = h
	}
	return histogram{h: h}
}

func (a *Adapter) registerVec(hv *prom.HistogramVec) *prom.HistogramVec {
	if err := a.reg.Register(hv); err != nil {
		var are prom.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prom.HistogramVec); ok {
				return existing
			}
		}
	}
	return hv
}

func (a *Adapter) registerHist(h prom.Histogram) prom.Histogram {
	if err := a.reg.Register(h); err != nil {
		var are prom.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(prom.Histogram); ok {
				return existing
			}
		}
	}
	return h
}

func sanitize(name string) string {
	r := strings.NewReplacer(".", "_", "-", "_")
	return r.Replace(name)
}

type timer struct {
	hv *prom.HistogramVec
}

func (t timer) Start() nscache.Stopwatch {
	return &stopwatch{hv: t.hv, begin: time.Now()}
}

type stopwatch struct {
	hv    *prom.HistogramVec
	begin time.Time
}

func (s *stopwatch) Success() { s.observe(outcomeSuccess) }
func (s *stopwatch) Failure() { s.observe(outcomeFailure) }

func (s *stopwatch) observe(outcome string) {
	s.hv.WithLabelValues(outcome).Observe(time.Since(s.begin).Seconds())
}

type histogram struct {
	h prom.Histogram
}

func (h histogram) Update(v int64) { h.h.Observe(float64(v)) }
