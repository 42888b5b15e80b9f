package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/runningwild/inflex/pkg/curve"
)

// Config represents the top-level configuration for a scan.
type Config struct {
	Curve  Curve  `yaml:"curve"`
	Sweep  Sweep  `yaml:"sweep"`
	Output Output `yaml:"output"`
	Store  Store  `yaml:"store,omitempty"`
	Log    Log    `yaml:"log,omitempty"`
}

// Curve selects the function to sample. Coefficients wins over the A/B/C
// cubic shorthand when both are given.
type Curve struct {
	Coefficients []float64 `yaml:"coefficients,omitempty"` // highest power first
	A            float64   `yaml:"a,omitempty"`
	B            float64   `yaml:"b,omitempty"`
	C            float64   `yaml:"c,omitempty"`
}

type Sweep struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

type Output struct {
	Format    string `yaml:"format"`    // "text", "lines" or "json"
	Precision int    `yaml:"precision"` // decimal places shown
	Symbols   string `yaml:"symbols"`   // "ascii", "unicode" or "auto"
	Onset     bool   `yaml:"onset"`     // report the initial slope direction
}

type Store struct {
	Path string `yaml:"path,omitempty"` // SQLite file; empty disables the run log
}

type Log struct {
	Level string `yaml:"level,omitempty"`
}

const (
	defaultPrecision = 2

	// MaxSamples bounds a single sweep.
	MaxSamples = 1 << 30
)

// Default matches the original demo: y = x³ + 12x² over [-20, 10].
func Default() *Config {
	cfg := &Config{
		Curve:  Curve{A: 1, B: 12},
		Output: Output{Precision: defaultPrecision},
	}
	cfg.setDefaults()
	return cfg
}

// Func returns the curve to sample.
func (c Curve) Func() curve.Func {
	if len(c.Coefficients) > 0 {
		return curve.Polynomial(c.Coefficients)
	}
	return curve.Cubic{A: c.A, B: c.B, C: c.C}
}

func (c Curve) empty() bool {
	return len(c.Coefficients) == 0 && c.A == 0 && c.B == 0 && c.C == 0
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	// Precision 0 is a real setting, so its default has to be in place
	// before decoding rather than filled in afterwards.
	cfg := Config{Output: Output{Precision: defaultPrecision}}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) setDefaults() {
	if c.Sweep.Step == 0 {
		c.Sweep.Step = 0.001
		if c.Sweep.Min == 0 && c.Sweep.Max == 0 {
			c.Sweep.Min, c.Sweep.Max = -20, 10
		}
	}
	if c.Output.Format == "" {
		c.Output.Format = "text"
	}
	if c.Output.Symbols == "" {
		c.Output.Symbols = "auto"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Samples returns how many points the sweep takes. The count is computed in
// floating point first so that huge ranges are reported instead of wrapping.
func (s Sweep) Samples() (int, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	// Allow a little slack so that max is included when (max-min)/step is
	// integral but not exactly representable.
	return int(math.Floor((s.Max-s.Min)/s.Step+1e-9)) + 1, nil
}

func (s Sweep) Validate() error {
	for _, v := range []float64{s.Min, s.Max, s.Step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("range [%v, %v] step %v is not finite", s.Min, s.Max, s.Step)
		}
	}
	if s.Step <= 0 {
		return fmt.Errorf("step must be positive, got %v", s.Step)
	}
	if s.Max < s.Min {
		return fmt.Errorf("max %v is below min %v", s.Max, s.Min)
	}
	if span := (s.Max - s.Min) / s.Step; !(span < MaxSamples) {
		return fmt.Errorf("range [%v, %v] step %v needs more than %d samples", s.Min, s.Max, s.Step, MaxSamples)
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Curve.empty() {
		errs = append(errs, errors.New("curve: no coefficients given"))
	}
	if err := c.Sweep.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("sweep: %w", err))
	}
	switch c.Output.Format {
	case "text", "lines", "json":
	default:
		errs = append(errs, fmt.Errorf("output: unknown format %q", c.Output.Format))
	}
	switch c.Output.Symbols {
	case "ascii", "unicode", "auto":
	default:
		errs = append(errs, fmt.Errorf("output: unknown symbol set %q", c.Output.Symbols))
	}
	if c.Output.Precision < 0 || c.Output.Precision > 15 {
		errs = append(errs, fmt.Errorf("output: precision %d out of range", c.Output.Precision))
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}
	return errors.Join(errs...)
}
