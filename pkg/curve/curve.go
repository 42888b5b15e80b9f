// Package curve provides the functions that inflex samples.
package curve

import (
	"fmt"
	"strconv"
	"strings"
)

// Func is anything that can be evaluated at x.
type Func interface {
	Eval(x float64) float64
}

// FuncOf adapts a plain function to Func.
type FuncOf func(float64) float64

func (f FuncOf) Eval(x float64) float64 { return f(x) }

// Cubic is y = A·x³ + B·x² + C.
type Cubic struct {
	A, B, C float64
}

func (c Cubic) Eval(x float64) float64 {
	return c.A*x*x*x + c.B*x*x + c.C
}

func (c Cubic) String() string {
	return Polynomial{c.A, c.B, 0, c.C}.String()
}

// Polynomial holds coefficients from the highest power down to the constant
// term, so {1, 0, -3, 0} is x³ - 3x.
type Polynomial []float64

func (p Polynomial) Eval(x float64) float64 {
	var y float64
	for _, c := range p {
		y = y*x + c
	}
	return y
}

func (p Polynomial) String() string {
	var sb strings.Builder
	for i, c := range p {
		if c == 0 {
			continue
		}
		pow := len(p) - 1 - i
		if sb.Len() == 0 {
			if c < 0 {
				sb.WriteString("-")
			}
		} else if c < 0 {
			sb.WriteString(" - ")
		} else {
			sb.WriteString(" + ")
		}
		abs := c
		if abs < 0 {
			abs = -abs
		}
		if abs != 1 || pow == 0 {
			sb.WriteString(strconv.FormatFloat(abs, 'g', -1, 64))
		}
		switch pow {
		case 0:
		case 1:
			sb.WriteString("x")
		default:
			fmt.Fprintf(&sb, "x^%d", pow)
		}
	}
	if sb.Len() == 0 {
		return "0"
	}
	return sb.String()
}
