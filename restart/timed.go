package restart

import (
	"context"
	"time"

	channerics "github.com/niceyeti/channerics/channels"
	"github.com/sourcegraph/log"

	"multistart/heuristic"
	"multistart/telemetry"
	"multistart/tracker"
)

// DefaultTimeUnit is the default sampling granularity, matching spec's
// stated default of 1000ms.
const DefaultTimeUnit = time.Second

// TimedParallelMultistarter wraps a ParallelMultistarter with a wall-clock
// budget: workers optimize continuously while the controlling goroutine
// samples the tracker every timeUnit for k units, using the same
// channerics.NewTicker helper the teacher used for its periodic console
// dump (print_values_async).
type TimedParallelMultistarter[T tracker.Copyable[T], C tracker.Cost] struct {
	inner    *ParallelMultistarter[T, C]
	timeUnit time.Duration
	tracker  *tracker.ProgressTracker[T, C]
	log      telemetry.Logger
	history  []heuristic.SolutionCostPair[T, C]
}

// NewTimedParallelMultistarter wraps an already-constructed
// ParallelMultistarter with a sampling interval, which must be > 0.
func NewTimedParallelMultistarter[T tracker.Copyable[T], C tracker.Cost](
	inner *ParallelMultistarter[T, C], timeUnit time.Duration,
) (*TimedParallelMultistarter[T, C], error) {
	if timeUnit <= 0 {
		return nil, ErrInvalidTimeUnit
	}
	return &TimedParallelMultistarter[T, C]{
		inner:    inner,
		timeUnit: timeUnit,
		tracker:  inner.tracker,
		log:      telemetry.Nop(),
	}, nil
}

// SetLogger overrides the Nop default with a real sink.
func (t *TimedParallelMultistarter[T, C]) SetLogger(log telemetry.Logger) {
	t.log = log
}

// History returns the snapshots taken during the most recently completed
// Optimize call, oldest first. Costs are non-increasing; the final entry's
// cost equals the tracker's final best cost.
func (t *TimedParallelMultistarter[T, C]) History() []heuristic.SolutionCostPair[T, C] {
	return t.history
}

// Optimize runs every worker continuously for up to k time units, sampling
// the tracker once per elapsed unit into History, then interrupts all
// workers and returns the tracker's final best. The last History entry is
// refreshed with that final best once the workers have stopped, so updates
// landing after the last tick are not lost. It never blocks
// indefinitely: interruption is unconditional once the sampling loop ends.
func (t *TimedParallelMultistarter[T, C]) Optimize(ctx context.Context, k int) (heuristic.SolutionCostPair[T, C], bool, error) {
	if t.inner.pool.IsClosed() {
		return heuristic.SolutionCostPair[T, C]{}, false, ErrPoolClosed
	}
	t.history = t.history[:0]

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	tasks := make([]Task[heuristic.SolutionCostPair[T, C]], len(t.inner.workers))
	for i, w := range t.inner.workers {
		w, idx := w, i
		tasks[i] = func(taskCtx context.Context) (result heuristic.SolutionCostPair[T, C], ok bool, err error) {
			defer func() {
				if r := recover(); r != nil {
					t.log.Warn("restart: timed worker panicked, contributing no result",
						log.Int("restart.worker", idx))
					ok, err = false, nil
				}
			}()
			// A very large effective restart count: the worker runs until
			// interrupted or the tracker signals stop/found-best.
			result, ok, err = w.Optimize(taskCtx, int64(1)<<62)
			if err != nil {
				t.log.Warn("restart: timed worker inner-search failed",
					log.Int("restart.worker", idx),
					log.Int64("restart.run_length", w.TotalRunLength()),
					log.Error(err))
				return result, false, nil
			}
			return result, ok, nil
		}
	}

	handle, err := t.inner.pool.SubmitAll(runCtx, tasks)
	if err != nil {
		return heuristic.SolutionCostPair[T, C]{}, false, err
	}

	done := make(chan struct{})
	ticks := channerics.NewTicker(done, t.timeUnit)

	for samples := 0; samples < k; samples++ {
		if t.tracker.DidFindBest() {
			t.log.Info("restart: tracker found the optimum",
				log.Int64("restart.run_length", t.inner.TotalRunLength()))
			break
		}
		if t.tracker.IsStopped() {
			t.log.Info("restart: tracker stopped",
				log.Int64("restart.run_length", t.inner.TotalRunLength()))
			break
		}
		<-ticks
		if cost, ok := t.tracker.GetCost(); ok {
			solution, _ := t.tracker.GetSolution()
			t.history = append(t.history, heuristic.SolutionCostPair[T, C]{Solution: solution, Cost: cost})
			t.log.Info("restart: sampled tracker progress",
				log.Int64("restart.run_length", t.inner.TotalRunLength()),
				log.Float64("restart.best_cost", float64(cost)))
		}
	}
	close(done)

	t.inner.pool.InterruptAll(handle)

	cost, ok := t.tracker.GetCost()
	if !ok {
		return heuristic.SolutionCostPair[T, C]{}, false, nil
	}
	solution, _ := t.tracker.GetSolution()
	final := heuristic.SolutionCostPair[T, C]{Solution: solution, Cost: cost}
	if n := len(t.history); n > 0 {
		t.history[n-1] = final
	}
	return final, true, nil
}
