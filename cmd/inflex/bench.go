package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/runningwild/inflex/pkg/analyze"
	"github.com/runningwild/inflex/pkg/config"
	"github.com/runningwild/inflex/pkg/stats"
)

// runBenchCmd handles "inflex bench [flags]"
func runBenchCmd(args []string) {
	var rounds *int
	_, cfg := parseAndLoad("bench", args, func(fs *flag.FlagSet) {
		rounds = fs.Int("rounds", 5, "Number of full sweeps to time")
	})

	res, err := bench(cfg, *rounds)
	if err != nil {
		log.Fatalf("Bench failed: %v", err)
	}

	fmt.Printf("\n>>> Bench Complete <<<\n")
	fmt.Printf("Samples:    %d over %d rounds\n", res.Samples, res.Rounds)
	fmt.Printf("Events:     %d\n", res.Events)
	fmt.Printf("Throughput: %.0f samples/s\n", res.Throughput)
	fmt.Printf("Latency:    mean=%v p50=%v p99=%v max=%v\n",
		res.Hist.Mean(), res.Hist.ValueAtQuantile(0.5), res.Hist.ValueAtQuantile(0.99), res.Hist.Max())
}

type benchResult struct {
	Rounds     int
	Samples    int
	Events     int
	Throughput float64
	Hist       *stats.Histogram
}

// bench times every Observe call of repeated sweeps. The tracker is reset
// between rounds; each round records into its own histogram and the
// histograms are merged at the end.
func bench(cfg *config.Config, rounds int) (benchResult, error) {
	if rounds <= 0 {
		return benchResult{}, fmt.Errorf("rounds must be positive, got %d", rounds)
	}
	f := cfg.Curve.Func()
	res := benchResult{Rounds: rounds, Hist: stats.NewHistogram()}
	n, err := cfg.Sweep.Samples()
	if err != nil {
		return benchResult{}, err
	}
	tr := analyze.New(analyze.SinkFunc(func(analyze.Event) { res.Events++ }))

	var total time.Duration
	for r := 0; r < rounds; r++ {
		hist := stats.NewHistogram()
		tr.Reset()
		for i := 0; i < n; i++ {
			x := cfg.Sweep.Min + float64(i)*cfg.Sweep.Step
			y := f.Eval(x)
			start := time.Now()
			err := tr.Observe(x, y)
			d := time.Since(start)
			if err != nil {
				return res, err
			}
			hist.Record(d)
			total += d
		}
		res.Samples += tr.Seen()
		res.Hist.Merge(hist)
		log.WithField("round", r+1).Debugf("p99=%v", hist.ValueAtQuantile(0.99))
	}
	if total > 0 {
		res.Throughput = float64(res.Samples) / total.Seconds()
	}
	return res, nil
}
