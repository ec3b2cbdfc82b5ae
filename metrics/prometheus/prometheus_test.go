package prometheus

import (
	"testing"

	prom "github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func gather(t *testing.T, reg *prom.Registry) map[string]*dto.MetricFamily {
	t.Helper()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	out := make(map[string]*dto.MetricFamily, len(mfs))
	for _, mf := range mfs {
		out[mf.GetName()] = mf
	}
	return out
}

func TestTimerObservesByOutcome(t *testing.T) {
	reg := prom.NewRegistry()
	a := New(Config{Registerer: reg})

	tm := a.Timer("memcache.app.get")
	tm.Start().Success()
	tm.Start().Failure()
	tm.Start().Failure()

	fams := gather(t, reg)
	mf, ok := fams["memcache_app_get_duration_seconds"]
	if !ok {
		t.Fatalf("duration family missing; got %v", keysOf(fams))
	}
	counts := map[string]uint64{}
	for _, m := range mf.GetMetric() {
		for _, l := range m.GetLabel() {
			if l.GetName() == outcomeLabel {
				counts[l.GetValue()] = m.GetHistogram().GetSampleCount()
			}
		}
	}
	if counts[outcomeSuccess] != 1 || counts[outcomeFailure] != 2 {
		t.Fatalf("sample counts = %v, want success=1 failure=2", counts)
	}
}

func TestTimerLookupIsIdempotent(t *testing.T) {
	reg := prom.NewRegistry()
	a := New(Config{Registerer: reg})

	a.Timer("memcache.app.set").Start().Success()
	a.Timer("memcache.app.set").Start().Success()

	// a second adapter over the same registry must reuse the collector
	b := New(Config{Registerer: reg})
	b.Timer("memcache.app.set").Start().Success()

	fams := gather(t, reg)
	mf := fams["memcache_app_set_duration_seconds"]
	if mf == nil {
		t.Fatal("duration family missing")
	}
	var total uint64
	for _, m := range mf.GetMetric() {
		total += m.GetHistogram().GetSampleCount()
	}
	if total != 3 {
		t.Fatalf("sample count = %d, want 3", total)
	}
}

func TestHistogramUpdates(t *testing.T) {
	reg := prom.NewRegistry()
	a := New(Config{Registerer: reg})

	h := a.Histogram("memcache.app.inserted-data-bytes")
	h.Update(10)
	h.Update(2048)

	fams := gather(t, reg)
	mf := fams["memcache_app_inserted_data_bytes"]
	if mf == nil {
		t.Fatal("byte histogram family missing")
	}
	hist := mf.GetMetric()[0].GetHistogram()
	if hist.GetSampleCount() != 2 {
		t.Fatalf("sample count = %d, want 2", hist.GetSampleCount())
	}
	if hist.GetSampleSum() != 2058 {
		t.Fatalf("sample sum = %v, want 2058", hist.GetSampleSum())
	}
}

func keysOf(m map[string]*dto.MetricFamily) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
