package analyze

import "fmt"

// Sample is a single (x, y) point of the curve being tracked.
type Sample struct {
	X float64
	Y float64
}

// Mid returns the midpoint between two samples.
func (s Sample) Mid(o Sample) Sample {
	return Sample{X: (s.X + o.X) / 2, Y: (s.Y + o.Y) / 2}
}

type Kind int

const (
	// Stationary marks a zero crossing of the first derivative (local min/max).
	Stationary Kind = iota + 1
	// Inflection marks a zero crossing of the second derivative.
	Inflection
	// Onset reports the direction of the very first slope estimate.
	Onset
)

func (k Kind) String() string {
	switch k {
	case Stationary:
		return "stationary"
	case Inflection:
		return "inflection"
	case Onset:
		return "onset"
	}
	return "unknown"
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for _, k := range []Kind{Stationary, Inflection, Onset} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown event kind %q", s)
}

// Trend is the sign of the newest first-derivative estimate when an event fired.
type Trend int

const (
	Flat Trend = iota
	Rising
	Falling
)

func trendOf(slope float64) Trend {
	switch {
	case slope > 0:
		return Rising
	case slope < 0:
		return Falling
	}
	return Flat
}

func (t Trend) String() string {
	switch t {
	case Rising:
		return "rising"
	case Falling:
		return "falling"
	}
	return "flat"
}

// ParseTrend is the inverse of Trend.String.
func ParseTrend(s string) (Trend, error) {
	for _, t := range []Trend{Flat, Rising, Falling} {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown trend %q", s)
}

// Event is a feature detected between two consecutive samples.
type Event struct {
	Kind  Kind
	Trend Trend

	// From and To are the samples bracketing the crossing.
	From Sample
	To   Sample

	// Before and After are the two estimates of the derivative whose sign
	// changed (first derivative for Stationary, second for Inflection).
	// Onset events carry the first slope estimate in both.
	Before float64
	After  float64
}

// At is the approximate location of the feature.
func (e Event) At() Sample {
	return e.From.Mid(e.To)
}

// IsMaximum reports a stationary point where the slope turned negative.
func (e Event) IsMaximum() bool {
	return e.Kind == Stationary && e.Trend == Falling
}

// IsMinimum reports a stationary point where the slope turned positive.
func (e Event) IsMinimum() bool {
	return e.Kind == Stationary && e.Trend == Rising
}

// Sink receives events as the tracker detects them.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a plain function to a Sink.
type SinkFunc func(Event)

func (f SinkFunc) Emit(e Event) { f(e) }

type discard struct{}

func (discard) Emit(Event) {}
