package stats

import (
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

const (
	// Tracked range for a single Observe call, in nanoseconds.
	minTracked = 1
	maxTracked = int64(10 * time.Second)
	sigFigs    = 3
)

// Histogram records per-sample latencies in nanoseconds. Values outside the
// tracked range are clamped rather than dropped.
type Histogram struct {
	h *hdrhistogram.Histogram
}

func NewHistogram() *Histogram {
	return &Histogram{h: hdrhistogram.New(minTracked, maxTracked, sigFigs)}
}

func (h *Histogram) Record(d time.Duration) {
	v := int64(d)
	if v < minTracked {
		v = minTracked
	}
	if v > maxTracked {
		v = maxTracked
	}
	// Cannot fail once clamped.
	_ = h.h.RecordValue(v)
}

func (h *Histogram) Merge(other *Histogram) {
	if other == nil || other.h.TotalCount() == 0 {
		return
	}
	h.h.Merge(other.h)
}

// ValueAtQuantile takes q in [0, 1].
func (h *Histogram) ValueAtQuantile(q float64) time.Duration {
	if h.h.TotalCount() == 0 {
		return 0
	}
	return time.Duration(h.h.ValueAtQuantile(q * 100))
}

func (h *Histogram) Mean() time.Duration {
	return time.Duration(h.h.Mean())
}

func (h *Histogram) Count() int64 { return h.h.TotalCount() }

func (h *Histogram) Max() time.Duration { return time.Duration(h.h.Max()) }
