package solver

import (
	"sync/atomic"
	"time"
)

// ProgressFunc observes a run. Arguments are candidates processed so far,
// total candidates, and matches found so far. Invocations are throttled and
// never originate from a worker's critical path; processed is monotonically
// non-decreasing across one run.
type ProgressFunc func(processed, total, matches uint64)

// reporter owns the run's shared counters and forwards throttled snapshots
// to the observer from a single goroutine, so concurrent batch completions
// never contend on the callback itself.
type reporter struct {
	total    uint64
	interval time.Duration
	fn       ProgressFunc

	processed atomic.Uint64
	matches   atomic.Uint64

	quit     chan struct{}
	finished chan struct{}
}

func newReporter(total uint64, interval time.Duration, fn ProgressFunc) *reporter {
	return &reporter{
		total:    total,
		interval: interval,
		fn:       fn,
		quit:     make(chan struct{}),
		finished: make(chan struct{}),
	}
}

// add records a completed batch. Fire-and-forget: workers only touch the
// atomics.
func (r *reporter) add(processed, matches uint64) {
	r.processed.Add(processed)
	r.matches.Add(matches)
}

// start spawns the throttling goroutine. With no observer there is nothing
// to do; the counters still feed RunStats.
func (r *reporter) start() {
	if r.fn == nil {
		close(r.finished)
		return
	}
	go func() {
		defer close(r.finished)
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		var last uint64
		for {
			select {
			case <-ticker.C:
				if p := r.processed.Load(); p > last {
					last = p
					r.fn(p, r.total, r.matches.Load())
				}
			case <-r.quit:
				return
			}
		}
	}()
}

// stop halts the throttling goroutine and waits for it, then emits the
// guaranteed final snapshot. On a complete run the final processed count
// equals the total; on a cancelled run it reports how far the run got.
func (r *reporter) stop(final bool) {
	close(r.quit)
	<-r.finished
	if final && r.fn != nil {
		r.fn(r.processed.Load(), r.total, r.matches.Load())
	}
}
