package analyze

import "testing"

func TestBetween(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi float64
		want   bool
	}{
		{"Rising Through", -1, 1, true},
		{"Falling Through", 1, -1, true},
		{"Both Positive", 1, 2, false},
		{"Both Negative", -2, -1, false},
		{"Lands On Zero From Above", 0, 1, true},
		{"Lands On Zero From Below", 0, -1, true},
		{"Leaves Zero Upwards", 1, 0, false},
		{"Leaves Zero Downwards", -1, 0, false},
		{"Stuck At Zero", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Between(0, tt.lo, tt.hi); got != tt.want {
				t.Errorf("Between(0, %v, %v) = %v, want %v", tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestBetweenSymmetric(t *testing.T) {
	bounds := []float64{-3, -1, -0.5, -1e-12, 1e-12, 0.5, 1, 3}
	for _, lo := range bounds {
		for _, hi := range bounds {
			if lo == hi {
				continue
			}
			if Between(0, lo, hi) != Between(0, hi, lo) {
				t.Errorf("Between(0, %v, %v) != Between(0, %v, %v)", lo, hi, hi, lo)
			}
		}
	}
}

func TestOptional(t *testing.T) {
	var o Optional[float64]
	if _, ok := o.Get(); ok {
		t.Error("zero Optional reports a value")
	}
	o = Some(0.0)
	v, ok := o.Get()
	if !ok || v != 0 {
		t.Errorf("Some(0).Get() = %v, %v", v, ok)
	}
}

func TestParseKindAndTrend(t *testing.T) {
	for _, k := range []Kind{Stationary, Inflection, Onset} {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	for _, tr := range []Trend{Flat, Rising, Falling} {
		got, err := ParseTrend(tr.String())
		if err != nil || got != tr {
			t.Errorf("ParseTrend(%q) = %v, %v", tr.String(), got, err)
		}
	}
	if _, err := ParseKind("saddle"); err == nil {
		t.Error("ParseKind accepted an unknown kind")
	}
	if _, err := ParseTrend("sideways"); err == nil {
		t.Error("ParseTrend accepted an unknown trend")
	}
}
