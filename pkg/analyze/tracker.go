package analyze

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNonIncreasing = errors.New("x must be strictly increasing")
	ErrNonFinite     = errors.New("sample is not finite")
)

type Option func(*Tracker)

// WithOnset makes the tracker emit an Onset event once the first slope
// estimate is known.
func WithOnset() Option {
	return func(t *Tracker) { t.onset = true }
}

// Tracker estimates the first and second derivative of a sampled curve with
// finite differences and reports where either one changes sign.
//
// A Tracker is not safe for concurrent use.
type Tracker struct {
	sink  Sink
	onset bool

	last   Optional[Sample]
	lastD1 Optional[float64]
	lastD2 Optional[float64]
	seen   int
}

func New(sink Sink, opts ...Option) *Tracker {
	if sink == nil {
		sink = discard{}
	}
	t := &Tracker{sink: sink}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Observe feeds the next sample. Samples must arrive in strictly increasing x;
// a sample that breaks this (or is NaN/Inf) is rejected and the tracker state
// is left as it was.
func (t *Tracker) Observe(x, y float64) error {
	if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
		return fmt.Errorf("%w: (%v, %v)", ErrNonFinite, x, y)
	}
	pt := Sample{X: x, Y: y}

	lpt, ok := t.last.Get()
	if !ok {
		t.last = Some(pt)
		t.seen++
		return nil
	}

	dx := pt.X - lpt.X
	if !(dx > 0) {
		return fmt.Errorf("%w: x=%v after x=%v", ErrNonIncreasing, pt.X, lpt.X)
	}
	d1 := (pt.Y - lpt.Y) / dx

	if ld1, ok := t.lastD1.Get(); ok {
		if Between(0, d1, ld1) {
			t.sink.Emit(Event{Kind: Stationary, Trend: trendOf(d1), From: lpt, To: pt, Before: ld1, After: d1})
		}

		d2 := (d1 - ld1) / dx
		if ld2, ok := t.lastD2.Get(); ok && Between(0, d2, ld2) {
			t.sink.Emit(Event{Kind: Inflection, Trend: trendOf(d1), From: lpt, To: pt, Before: ld2, After: d2})
		}
		t.lastD2 = Some(d2)
	} else if t.onset {
		t.sink.Emit(Event{Kind: Onset, Trend: trendOf(d1), From: lpt, To: pt, Before: d1, After: d1})
	}

	t.lastD1 = Some(d1)
	t.last = Some(pt)
	t.seen++
	return nil
}

// Seen returns the number of samples accepted so far.
func (t *Tracker) Seen() int { return t.seen }

// Reset drops all history so the tracker can start a new stream.
func (t *Tracker) Reset() {
	t.last = Optional[Sample]{}
	t.lastD1 = Optional[float64]{}
	t.lastD2 = Optional[float64]{}
	t.seen = 0
}
