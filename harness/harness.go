package harness

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/weiihann/statbench/bench"
	"github.com/weiihann/statbench/discover"
)

// Config holds parameters for a benchmark run. It is read-only once the
// runner is constructed.
type Config struct {
	Target     string
	TimeBudget time.Duration
	Repeat     int
	Delay      time.Duration
	Workers    int
}

// Reporter consumes one Result per iteration.
type Reporter interface {
	Write(Result) error
}

// Runner executes the benchmark loop: discover paths once, then per
// iteration measure the parallel and serial stat phases and report.
type Runner struct {
	cfg      Config
	reporter Reporter
	logger   *slog.Logger
}

// NewRunner creates a Runner. Zero Repeat and Workers fall back to one
// iteration and bench.DefaultWorkers.
func NewRunner(cfg Config, reporter Reporter, logger *slog.Logger) *Runner {
	if cfg.Repeat < 1 {
		cfg.Repeat = 1
	}

	if cfg.Workers < 1 {
		cfg.Workers = bench.DefaultWorkers
	}

	return &Runner{
		cfg:      cfg,
		reporter: reporter,
		logger:   logger.With(slog.String("target", cfg.Target)),
	}
}

// Run performs cfg.Repeat iterations, sleeping cfg.Delay between them.
// Discovery runs only on the first iteration; later iterations reuse
// the cached path list and the first iteration's discovery figures, so
// every record reports the same paths_found against independently
// measured stat phases. The path list lives only as long as this call.
func (r *Runner) Run(ctx context.Context) error {
	var (
		paths      []string
		discovered bool

		discSecs float64
		discRate float64
	)

	for i := 0; i < r.cfg.Repeat; i++ {
		iterStart := time.Now()

		if !discovered {
			found, err := discover.Discover(ctx, r.cfg.Target, r.cfg.TimeBudget)
			if err != nil {
				return fmt.Errorf("discover %s: %w", r.cfg.Target, err)
			}

			elapsed := time.Since(iterStart)

			paths = found
			discovered = true
			discSecs = elapsed.Seconds()

			if len(paths) > 0 && elapsed > 0 {
				discRate = float64(len(paths)) / elapsed.Seconds()
			}

			r.logger.InfoContext(ctx, "discovery complete",
				slog.Int("paths", len(paths)),
				slog.Duration("elapsed", elapsed),
			)
		}

		par := bench.Parallel(paths, r.cfg.Workers)
		ser := bench.Serial(paths)

		result := Result{
			Timestamp:    iterStart.Unix(),
			PathsFound:   len(paths),
			DiscoverSecs: discSecs,
			DiscoverRate: discRate,
			SerialSecs:   ser.Duration.Seconds(),
			SerialRate:   ser.Rate,
			ParallelSecs: par.Duration.Seconds(),
			ParallelRate: par.Rate,
		}

		if err := r.reporter.Write(result); err != nil {
			return fmt.Errorf("report iteration %d: %w", i+1, err)
		}

		r.logger.InfoContext(ctx, "iteration complete",
			slog.Int("iteration", i+1),
			slog.Float64("serial_rate", ser.Rate),
			slog.Float64("parallel_rate", par.Rate),
		)

		if i < r.cfg.Repeat-1 && r.cfg.Delay > 0 {
			select {
			case <-time.After(r.cfg.Delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	return nil
}
