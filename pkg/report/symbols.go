package report

import (
	"fmt"
	"io"

	"github.com/runningwild/inflex/pkg/analyze"
)

// Symbols maps a trend to the marker printed after an event.
type Symbols struct {
	Rising  string
	Falling string
	Flat    string
}

var (
	ASCII   = Symbols{Rising: "/", Falling: `\`}
	Unicode = Symbols{Rising: "↗", Falling: "↘"}
)

func (s Symbols) For(t analyze.Trend) string {
	switch t {
	case analyze.Rising:
		return s.Rising
	case analyze.Falling:
		return s.Falling
	}
	return s.Flat
}

// SymbolsFor resolves a symbol set name. "auto" picks Unicode when w is a
// terminal.
func SymbolsFor(name string, w io.Writer) (Symbols, error) {
	switch name {
	case "ascii":
		return ASCII, nil
	case "unicode":
		return Unicode, nil
	case "auto":
		if isTerminal(w) {
			return Unicode, nil
		}
		return ASCII, nil
	}
	return Symbols{}, fmt.Errorf("unknown symbol set %q", name)
}
