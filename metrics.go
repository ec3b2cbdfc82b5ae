package nscache

// Metrics resolves named timers and histograms. Handles are looked up once
// per facade at construction; implementations may return the same handle for
// the same name. Handles must be safe for concurrent recording from multiple
// in-flight operations.
//
// Names are dot-joined: memcache.<ns>.<op> for timers,
// memcache.<ns>.inserted-data-bytes / memcache.<ns>.failed-data-bytes for
// byte histograms.
type Metrics interface {
	Timer(name string) Timer
	Histogram(name string) Histogram
}

// Timer produces one Stopwatch per timed attempt.
type Timer interface {
	Start() Stopwatch
}

// Stopwatch finishes exactly one timed attempt. Exactly one of Success or
// Failure is called per Start.
type Stopwatch interface {
	Success()
	Failure()
}

// Histogram records a numeric sample (byte volumes here).
type Histogram interface {
	Update(v int64)
}

// NopMetrics is the default when Options.Metrics is nil.
type NopMetrics struct{}

func (NopMetrics) Timer(string) Timer         { return nopTimer{} }
func (NopMetrics) Histogram(string) Histogram { return nopHistogram{} }

type nopTimer struct{}

func (nopTimer) Start() Stopwatch { return nopStopwatch{} }

type nopStopwatch struct{}

func (nopStopwatch) Success() {}
func (nopStopwatch) Failure() {}

type nopHistogram struct{}

func (nopHistogram) Update(int64) {}
