// Package report turns tracker events into something a person can read.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/runningwild/inflex/pkg/analyze"
)

// Sink is an analyze.Sink that owns an output and must be closed.
type Sink interface {
	analyze.Sink
	Close() error
}

// Text writes events in the classic compact layout, "(x,y)" followed by the
// trend symbol, all on one line. With Lines set every event gets its own
// labelled line instead.
type Text struct {
	w         io.Writer
	precision int
	symbols   Symbols
	lines     bool
	err       error
}

func NewText(w io.Writer, precision int, symbols Symbols, lines bool) *Text {
	return &Text{w: w, precision: precision, symbols: symbols, lines: lines}
}

func (t *Text) Emit(e analyze.Event) {
	if t.err != nil {
		return
	}
	sym := t.symbols.For(e.Trend)
	at := e.At()
	switch {
	case t.lines:
		_, t.err = fmt.Fprintf(t.w, "%-10s %s %s\n", label(e), t.point(at), sym)
	case e.Kind == analyze.Onset:
		_, t.err = io.WriteString(t.w, sym)
	default:
		_, t.err = io.WriteString(t.w, t.point(at)+sym)
	}
}

func (t *Text) point(s analyze.Sample) string {
	return "(" + t.num(s.X) + "," + t.num(s.Y) + ")"
}

func (t *Text) num(v float64) string {
	r := Round(v, t.precision)
	if r == 0 {
		r = 0 // no "-0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// Close terminates the line and reports the first write error, if any.
func (t *Text) Close() error {
	if t.err == nil && !t.lines {
		_, t.err = io.WriteString(t.w, "\n")
	}
	return t.err
}

func label(e analyze.Event) string {
	switch {
	case e.IsMaximum():
		return "maximum"
	case e.IsMinimum():
		return "minimum"
	}
	return e.Kind.String()
}

type jsonEvent struct {
	Kind   string  `json:"kind"`
	Label  string  `json:"label"`
	Trend  string  `json:"trend"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	FromX  float64 `json:"from_x"`
	ToX    float64 `json:"to_x"`
	Before float64 `json:"before"`
	After  float64 `json:"after"`
}

// JSON writes one object per event.
type JSON struct {
	enc       *json.Encoder
	precision int
	err       error
}

func NewJSON(w io.Writer, precision int) *JSON {
	return &JSON{enc: json.NewEncoder(w), precision: precision}
}

func (j *JSON) Emit(e analyze.Event) {
	if j.err != nil {
		return
	}
	at := e.At()
	j.err = j.enc.Encode(jsonEvent{
		Kind:   e.Kind.String(),
		Label:  label(e),
		Trend:  e.Trend.String(),
		X:      Round(at.X, j.precision),
		Y:      Round(at.Y, j.precision),
		FromX:  Round(e.From.X, j.precision),
		ToX:    Round(e.To.X, j.precision),
		Before: e.Before,
		After:  e.After,
	})
}

func (j *JSON) Close() error { return j.err }

// Multi fans every event out to each sink in order.
type Multi []analyze.Sink

func (m Multi) Emit(e analyze.Event) {
	for _, s := range m {
		s.Emit(e)
	}
}
