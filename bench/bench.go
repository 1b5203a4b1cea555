// Package bench measures filesystem metadata-query throughput over a
// fixed list of paths.
package bench

import (
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"
)

// DefaultWorkers is the parallel-phase fan-out used when the caller
// does not override it.
const DefaultWorkers = 24

// Measurement holds the wall-clock duration of one stat pass and the
// resulting throughput in paths per second. Rate is zero for an empty
// path list or a zero duration.
type Measurement struct {
	Duration time.Duration
	Rate     float64
}

// Serial issues one lstat call per path, in order, and measures the
// pass from first call to last. Individual stat failures are ignored;
// the call still counts toward the rate.
func Serial(paths []string) Measurement {
	start := time.Now()

	var st unix.Stat_t
	for _, path := range paths {
		_ = unix.Lstat(path, &st)
	}

	return measure(len(paths), time.Since(start))
}

// Parallel splits paths into workers contiguous chunks and stats each
// chunk on its own goroutine, chunks in order internally, no ordering
// across workers. Measured from dispatch of the first worker to
// completion of the last.
func Parallel(paths []string, workers int) Measurement {
	spans := partition(len(paths), workers)

	start := time.Now()

	var g errgroup.Group

	for _, s := range spans {
		if s.lo == s.hi {
			continue
		}

		chunk := paths[s.lo:s.hi]

		g.Go(func() error {
			var st unix.Stat_t
			for _, path := range chunk {
				_ = unix.Lstat(path, &st)
			}

			return nil
		})
	}

	_ = g.Wait()

	return measure(len(paths), time.Since(start))
}

// span is a half-open index range [lo, hi) into the path list.
type span struct {
	lo, hi int
}

// partition splits n items across workers contiguous spans. Every index
// lands in exactly one span; the first n%workers spans carry one extra
// item.
func partition(n, workers int) []span {
	if workers < 1 {
		workers = 1
	}

	base := n / workers
	rem := n % workers

	spans := make([]span, workers)
	lo := 0

	for i := range spans {
		size := base
		if i < rem {
			size++
		}

		spans[i] = span{lo: lo, hi: lo + size}
		lo += size
	}

	return spans
}

func measure(n int, elapsed time.Duration) Measurement {
	m := Measurement{Duration: elapsed}

	if n > 0 && elapsed > 0 {
		m.Rate = float64(n) / elapsed.Seconds()
	}

	return m
}
