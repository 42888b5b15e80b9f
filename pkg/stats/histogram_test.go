package stats

import (
	"testing"
	"time"
)

func within(got, want time.Duration) bool {
	diff := got - want
	if diff < 0 {
		diff = -diff
	}
	// 3 significant figures.
	return diff <= want/500+1
}

func TestHistogram(t *testing.T) {
	h := NewHistogram()
	for i := 1; i <= 1000; i++ {
		h.Record(time.Duration(i) * time.Microsecond)
	}

	if h.Count() != 1000 {
		t.Errorf("Count() = %d, want 1000", h.Count())
	}
	if got := h.ValueAtQuantile(0.5); !within(got, 500*time.Microsecond) {
		t.Errorf("p50 = %v, want ~500µs", got)
	}
	if got := h.ValueAtQuantile(0.99); !within(got, 990*time.Microsecond) {
		t.Errorf("p99 = %v, want ~990µs", got)
	}
	if got := h.Mean(); !within(got, 500500*time.Nanosecond) {
		t.Errorf("Mean() = %v, want ~500.5µs", got)
	}
}

func TestHistogramClamp(t *testing.T) {
	h := NewHistogram()
	h.Record(0)
	h.Record(-5)
	h.Record(time.Hour)
	if h.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", h.Count())
	}
	if got := h.Max(); !within(got, 10*time.Second) {
		t.Errorf("Max() = %v, want ~10s", got)
	}
}

func TestHistogramMerge(t *testing.T) {
	a, b := NewHistogram(), NewHistogram()
	for i := 0; i < 10; i++ {
		a.Record(time.Microsecond)
		b.Record(time.Millisecond)
	}
	a.Merge(b)
	a.Merge(NewHistogram())
	a.Merge(nil)

	if a.Count() != 20 {
		t.Errorf("Count() = %d, want 20", a.Count())
	}
	if got := a.ValueAtQuantile(1); !within(got, time.Millisecond) {
		t.Errorf("p100 = %v, want ~1ms", got)
	}
}

func TestHistogramEmpty(t *testing.T) {
	h := NewHistogram()
	if h.ValueAtQuantile(0.99) != 0 || h.Mean() != 0 {
		t.Errorf("empty histogram reports p99=%v mean=%v", h.ValueAtQuantile(0.99), h.Mean())
	}
}
