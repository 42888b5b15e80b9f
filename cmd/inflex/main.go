package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/runningwild/inflex/pkg/analyze"
	"github.com/runningwild/inflex/pkg/config"
	"github.com/runningwild/inflex/pkg/report"
	"github.com/runningwild/inflex/pkg/store"
	"github.com/runningwild/inflex/pkg/sweep"
)

var (
	log              = logrus.New()
	stdout io.Writer = os.Stdout
)

func main() {
	log.SetOutput(os.Stderr)

	// Dispatch subcommands
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "scan":
			runScanCmd(os.Args[2:])
			return
		case "bench":
			runBenchCmd(os.Args[2:])
			return
		case "runs":
			runRunsCmd(os.Args[2:])
			return
		}
	}

	// Default behavior (flags -> scan)
	runScanCmd(os.Args[1:])
}

// Flags holds pointers to all supported CLI flags
type Flags struct {
	ConfigFile  *string
	WriteConfig *string

	// Curve
	A      *float64
	B      *float64
	C      *float64
	Coeffs *string

	// Sweep
	Min  *float64
	Max  *float64
	Step *float64

	// Output
	Format    *string
	Precision *int
	Symbols   *string
	Onset     *bool
	Store     *string

	Verbose *bool
}

func SetupFlags(fs *flag.FlagSet) *Flags {
	def := config.Default()
	f := &Flags{}
	f.ConfigFile = fs.String("config", "", "Path to configuration file (disables other flags)")
	f.WriteConfig = fs.String("write-config", "", "Save the effective configuration to this YAML file")

	f.A = fs.Float64("a", def.Curve.A, "Cubic coefficient of y = a·x³ + b·x² + c")
	f.B = fs.Float64("b", def.Curve.B, "Quadratic coefficient of y = a·x³ + b·x² + c")
	f.C = fs.Float64("c", def.Curve.C, "Constant term of y = a·x³ + b·x² + c")
	f.Coeffs = fs.String("coeffs", "", "Polynomial coefficients, highest power first (e.g. '1,0,-3,0'); overrides -a/-b/-c")

	f.Min = fs.Float64("min", def.Sweep.Min, "First x value")
	f.Max = fs.Float64("max", def.Sweep.Max, "Last x value")
	f.Step = fs.Float64("step", def.Sweep.Step, "Distance between samples")

	f.Format = fs.String("format", def.Output.Format, "Output format: 'text', 'lines' or 'json'")
	f.Precision = fs.Int("precision", def.Output.Precision, "Decimal places shown")
	f.Symbols = fs.String("symbols", def.Output.Symbols, "Trend symbols: 'ascii', 'unicode' or 'auto'")
	f.Onset = fs.Bool("onset", false, "Also report the direction of the initial slope")
	f.Store = fs.String("store", "", "Record the run in this SQLite file")

	f.Verbose = fs.Bool("v", false, "Verbose logging")
	return f
}

// LoadConfig determines the config source (file or flags) and returns a Config object.
func (f *Flags) LoadConfig() (*config.Config, error) {
	if *f.ConfigFile != "" {
		cfg, err := config.Load(*f.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		if *f.Verbose {
			cfg.Log.Level = "debug"
		}
		return cfg, nil
	}

	cfg := config.Default()
	cfg.Curve = config.Curve{A: *f.A, B: *f.B, C: *f.C}
	if *f.Coeffs != "" {
		coeffs, err := parseCoeffs(*f.Coeffs)
		if err != nil {
			return nil, err
		}
		cfg.Curve = config.Curve{Coefficients: coeffs}
	}
	cfg.Sweep = config.Sweep{Min: *f.Min, Max: *f.Max, Step: *f.Step}
	cfg.Output = config.Output{
		Format:    *f.Format,
		Precision: *f.Precision,
		Symbols:   *f.Symbols,
		Onset:     *f.Onset,
	}
	cfg.Store.Path = *f.Store
	if *f.Verbose {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseCoeffs(s string) ([]float64, error) {
	var coeffs []float64
	for _, part := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("bad coefficient %q: %w", part, err)
		}
		coeffs = append(coeffs, v)
	}
	return coeffs, nil
}

func (f *Flags) MaybeWriteConfig(cfg *config.Config) {
	if *f.WriteConfig == "" {
		return
	}
	if err := cfg.Save(*f.WriteConfig); err != nil {
		log.WithError(err).Warn("failed to write config file")
		return
	}
	log.Infof("configuration written to %s", *f.WriteConfig)
}

// parseAndLoad handles the flag boilerplate shared by subcommands.
func parseAndLoad(name string, args []string, extra func(fs *flag.FlagSet)) (*Flags, *config.Config) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	f := SetupFlags(fs)
	if extra != nil {
		extra(fs)
	}
	fs.Parse(args)

	cfg, err := f.LoadConfig()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	level, _ := logrus.ParseLevel(cfg.Log.Level)
	log.SetLevel(level)
	f.MaybeWriteConfig(cfg)
	return f, cfg
}

// runScanCmd handles "inflex [scan] [flags]"
func runScanCmd(args []string) {
	_, cfg := parseAndLoad("scan", args, nil)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := scan(ctx, cfg); err != nil {
		log.Fatalf("Scan failed: %v", err)
	}
}

func scan(ctx context.Context, cfg *config.Config) error {
	out, err := newOutput(cfg.Output)
	if err != nil {
		return err
	}

	var opts []analyze.Option
	if cfg.Output.Onset {
		opts = append(opts, analyze.WithOnset())
	}
	f := cfg.Curve.Func()
	sink := report.Multi{out}

	var run *store.Run
	if cfg.Store.Path != "" {
		st, err := store.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer st.Close()
		run, err = st.BeginRun(ctx, fmt.Sprint(f), cfg.Sweep.Min, cfg.Sweep.Max, cfg.Sweep.Step)
		if err != nil {
			return err
		}
		sink = append(sink, run)
	}

	log.WithField("curve", fmt.Sprint(f)).Debug("scanning")
	sum, err := sweep.New(cfg.Sweep, log, opts...).Run(ctx, f, sink)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		if run != nil {
			run.Abort()
		}
		return err
	}

	if run != nil {
		if err := run.Finish(sum.Samples); err != nil {
			return err
		}
		log.WithField("run", run.ID).Info("run recorded")
	}
	log.WithFields(logrus.Fields{
		"samples":    sum.Samples,
		"stationary": sum.Stationary,
		"inflection": sum.Inflection,
		"elapsed":    sum.Elapsed,
	}).Debug("scan complete")
	return nil
}

func newOutput(o config.Output) (report.Sink, error) {
	if o.Format == "json" {
		return report.NewJSON(stdout, o.Precision), nil
	}
	syms, err := report.SymbolsFor(o.Symbols, stdout)
	if err != nil {
		return nil, err
	}
	return report.NewText(stdout, o.Precision, syms, o.Format == "lines"), nil
}
