package sweep

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/runningwild/inflex/pkg/analyze"
	"github.com/runningwild/inflex/pkg/config"
	"github.com/runningwild/inflex/pkg/curve"
)

// Summary describes a completed sweep.
type Summary struct {
	Samples    int
	Stationary int
	Inflection int
	Elapsed    time.Duration
}

type Sweeper struct {
	cfg  config.Sweep
	opts []analyze.Option
	log  logrus.FieldLogger
}

func New(cfg config.Sweep, log logrus.FieldLogger, opts ...analyze.Option) *Sweeper {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Sweeper{cfg: cfg, opts: opts, log: log}
}

// Run samples f across the configured range, feeding each point to a fresh
// tracker that reports to sink.
func (s *Sweeper) Run(ctx context.Context, f curve.Func, sink analyze.Sink) (Summary, error) {
	n, err := s.cfg.Samples()
	if err != nil {
		return Summary{}, fmt.Errorf("invalid sweep: %w", err)
	}

	var sum Summary
	counting := analyze.SinkFunc(func(e analyze.Event) {
		switch e.Kind {
		case analyze.Stationary:
			sum.Stationary++
		case analyze.Inflection:
			sum.Inflection++
		}
		if sink != nil {
			sink.Emit(e)
		}
	})
	tr := analyze.New(counting, s.opts...)

	s.log.WithFields(logrus.Fields{
		"min": s.cfg.Min, "max": s.cfg.Max, "step": s.cfg.Step, "samples": n,
	}).Debug("starting sweep")

	start := time.Now()
	for i := 0; i < n; i++ {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				sum.Samples = tr.Seen()
				return sum, err
			}
		}
		// Computing x from the index keeps the step from accumulating error.
		x := s.cfg.Min + float64(i)*s.cfg.Step
		if err := tr.Observe(x, f.Eval(x)); err != nil {
			sum.Samples = tr.Seen()
			return sum, fmt.Errorf("sample %d: %w", i, err)
		}
	}
	sum.Samples = tr.Seen()
	sum.Elapsed = time.Since(start)

	s.log.WithFields(logrus.Fields{
		"samples":    sum.Samples,
		"stationary": sum.Stationary,
		"inflection": sum.Inflection,
		"elapsed":    sum.Elapsed,
	}).Debug("sweep complete")
	return sum, nil
}
