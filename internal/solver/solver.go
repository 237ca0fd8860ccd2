// Package solver runs the enumerate-decode-match pipeline over a puzzle's
// full sequence space. The space is partitioned into contiguous batches
// claimed by a pool of workers; all of them share the read-only alphabet and
// dictionary, and the only synchronized state is the per-batch result merge
// and the progress counters.
package solver

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pthomasfournet/nytspellingbeesolver-sub001/internal/dictionary"
	"github.com/pthomasfournet/nytspellingbeesolver-sub001/internal/permgen"
	"github.com/pthomasfournet/nytspellingbeesolver-sub001/internal/puzzle"
)

const (
	// DefaultBatchSize balances claim overhead against progress granularity.
	DefaultBatchSize = 1 << 16
	// DefaultProgressInterval throttles observer callbacks.
	DefaultProgressInterval = 100 * time.Millisecond
)

// Engine generates every candidate sequence for one alphabet and tests each
// against a caller-supplied dictionary. An engine is reusable across runs
// with different dictionaries; the alphabet is fixed at construction.
type Engine struct {
	alpha    *puzzle.Alphabet
	space    *permgen.Space
	workers  int
	batch    uint64
	interval time.Duration
}

// Option adjusts engine tuning knobs.
type Option func(*Engine)

// WithWorkers sets the number of parallel workers. Values below 1 fall back
// to the default.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n >= 1 {
			e.workers = n
		}
	}
}

// WithBatchSize sets how many contiguous indexes a worker claims at a time.
// Cancellation is only observed between batches, so very large batches trade
// responsiveness for lower claim overhead.
func WithBatchSize(n uint64) Option {
	return func(e *Engine) {
		if n >= 1 {
			e.batch = n
		}
	}
}

// WithProgressInterval sets the observer throttle.
func WithProgressInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.interval = d
		}
	}
}

// New builds an engine for a validated alphabet and precomputes its
// enumeration space.
func New(alpha *puzzle.Alphabet, opts ...Option) *Engine {
	e := &Engine{
		alpha:    alpha,
		space:    permgen.NewSpace(alpha),
		workers:  runtime.GOMAXPROCS(0),
		batch:    DefaultBatchSize,
		interval: DefaultProgressInterval,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// TotalPermutations is the fixed amount of work one run performs. The engine
// commits to full enumeration so this is exact, not an estimate.
func (e *Engine) TotalPermutations() uint64 { return e.space.Total() }

// GenerateAll enumerates the whole space and returns every dictionary word
// that can be decoded from it and contains the required letter. It blocks
// until all batches complete, the context is cancelled, or the dictionary
// faults. progress may be nil.
func (e *Engine) GenerateAll(ctx context.Context, dict dictionary.Dictionary, progress ProgressFunc) (*Result, error) {
	if dict == nil {
		return nil, fmt.Errorf("%w: no dictionary supplied", ErrDictionaryFault)
	}
	defer timeTrack(time.Now(), "generate_all")

	total := e.space.Total()
	rep := newReporter(total, e.interval, progress)
	rep.start()

	// Workers watch runCtx; a dictionary fault cancels it so peers stop
	// claiming batches.
	runCtx, abort := context.WithCancel(ctx)
	defer abort()

	var (
		cursor  atomic.Uint64
		mu      sync.Mutex
		merged  []Match
		faultMu sync.Mutex
		fault   error
	)

	start := time.Now()
	required := e.alpha.Required()
	var wg sync.WaitGroup
	for w := 0; w < e.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			buf := make([]byte, e.space.MaxLength())
			found := make([]Match, 0, 32)
			for runCtx.Err() == nil {
				lo := cursor.Add(e.batch) - e.batch
				if lo >= total {
					return
				}
				hi := min(lo+e.batch, total)
				found = found[:0]
				for idx := lo; idx < hi; idx++ {
					n := e.space.DecodeAt(buf, idx)
					cand := buf[:n]
					// Cheap structural check first; the lookup dominates.
					if bytes.IndexByte(cand, required) < 0 {
						continue
					}
					ok, err := dict.Contains(cand)
					if err != nil {
						faultMu.Lock()
						if fault == nil {
							fault = fmt.Errorf("%w: %v", ErrDictionaryFault, err)
						}
						faultMu.Unlock()
						abort()
						return
					}
					if ok {
						found = append(found, Match{Word: string(cand), Length: n})
					}
				}
				rep.add(hi-lo, uint64(len(found)))
				if len(found) > 0 {
					mu.Lock()
					merged = append(merged, found...)
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	if fault != nil {
		rep.stop(false)
		return nil, fault
	}
	rep.stop(true)

	evaluated := rep.processed.Load()
	res := &Result{
		Matches: dedupeAndSort(merged),
		Status:  StatusComplete,
		Stats: RunStats{
			Evaluated: evaluated,
			Elapsed:   time.Since(start),
		},
	}
	if secs := res.Stats.Elapsed.Seconds(); secs > 0 {
		res.Stats.PermsPerSecond = float64(evaluated) / secs
	}
	if ctx.Err() != nil && evaluated < total {
		res.Status = StatusCancelled
	}
	log.Debug().
		Uint64("evaluated", evaluated).
		Int("matches", len(res.Matches)).
		Str("status", res.Status.String()).
		Msg("run finished")
	return res, nil
}

func timeTrack(start time.Time, name string) {
	elapsed := time.Since(start)
	log.Info().Msgf("%s took %s", name, elapsed)
}
