package restart

import (
	"context"
	"time"

	"github.com/sourcegraph/log"

	"multistart/heuristic"
	"multistart/schedule"
	"multistart/telemetry"
	"multistart/tracker"
)

// ParallelMultistarter fans N independent single-threaded multistarters
// across a worker pool and merges their per-worker bests. It generalizes the
// teacher's channerics.Merge-based episode fan-in (reinforcement.Train) into
// a result-merging fan-out/fan-in pair, swapping unbounded channel streaming
// for a bounded submit/await round per Optimize call.
type ParallelMultistarter[T tracker.Copyable[T], C tracker.Cost] struct {
	workers []*SingleThreadedMultistarter[T, C]
	pool    *WorkerPool[heuristic.SolutionCostPair[T, C]]
	problem heuristic.Problem[T, C]
	tracker *tracker.ProgressTracker[T, C]
	log     telemetry.Logger
	busy    Gauge
}

// NewParallelMultistarter is the canonical constructor: a list of
// already-built single-threaded multistarters, each wrapping one
// (adapter, schedule) pair. All must share the same problem and progress
// tracker identity; the list must be non-empty.
func NewParallelMultistarter[T tracker.Copyable[T], C tracker.Cost](
	starters []*SingleThreadedMultistarter[T, C],
) (*ParallelMultistarter[T, C], error) {
	if len(starters) == 0 {
		return nil, ErrEmptyWorkerList
	}

	problem := starters[0].adapter.Problem()
	tr := starters[0].adapter.Tracker()
	for _, s := range starters[1:] {
		if s.adapter.Problem() != problem {
			return nil, ErrProblemIdentityMismatch
		}
		if s.adapter.Tracker() != tr {
			return nil, ErrTrackerIdentityMismatch
		}
	}

	pool, err := NewWorkerPool[heuristic.SolutionCostPair[T, C]](len(starters))
	if err != nil {
		return nil, err
	}

	return &ParallelMultistarter[T, C]{
		workers: starters,
		pool:    pool,
		problem: problem,
		tracker: tr,
		log:     telemetry.Nop(),
	}, nil
}

// NewParallelMultistarterConstant builds n workers, each running an
// independent Constant(length) schedule: the first uses adapter itself, the
// other n-1 use adapter.Split().
func NewParallelMultistarterConstant[T tracker.Copyable[T], C tracker.Cost](
	adapter heuristic.Metaheuristic[T, C], length int64, n int,
) (*ParallelMultistarter[T, C], error) {
	if n < 1 {
		return nil, ErrEmptyWorkerList
	}
	scheds := make([]schedule.Schedule, n)
	for i := range scheds {
		c, err := schedule.NewConstant(length)
		if err != nil {
			return nil, err
		}
		scheds[i] = c
	}
	return newParallelFromAdapterAndSchedules(adapter, scheds)
}

// NewParallelMultistarterSameSchedule builds n workers: the first uses
// adapter and sched themselves, the other n-1 use splits of both.
func NewParallelMultistarterSameSchedule[T tracker.Copyable[T], C tracker.Cost](
	adapter heuristic.Metaheuristic[T, C], sched schedule.Schedule, n int,
) (*ParallelMultistarter[T, C], error) {
	if n < 1 {
		return nil, ErrEmptyWorkerList
	}
	scheds := make([]schedule.Schedule, n)
	for i := range scheds {
		if i == 0 {
			scheds[i] = sched
		} else {
			scheds[i] = sched.Split()
		}
	}
	return newParallelFromAdapterAndSchedules(adapter, scheds)
}

// NewParallelMultistarterSchedules builds len(scheds) workers, one per
// schedule: the first uses adapter itself, the rest a fresh split of it.
func NewParallelMultistarterSchedules[T tracker.Copyable[T], C tracker.Cost](
	adapter heuristic.Metaheuristic[T, C], scheds []schedule.Schedule,
) (*ParallelMultistarter[T, C], error) {
	return newParallelFromAdapterAndSchedules(adapter, scheds)
}

func newParallelFromAdapterAndSchedules[T tracker.Copyable[T], C tracker.Cost](
	adapter heuristic.Metaheuristic[T, C], scheds []schedule.Schedule,
) (*ParallelMultistarter[T, C], error) {
	if len(scheds) == 0 {
		return nil, ErrEmptyWorkerList
	}
	starters := make([]*SingleThreadedMultistarter[T, C], len(scheds))
	for i, s := range scheds {
		a := adapter
		if i > 0 {
			a = adapter.Split()
		}
		starters[i] = NewSingleThreadedMultistarter(a, s)
	}
	return NewParallelMultistarter(starters)
}

// NewParallelMultistarterAdaptersConstant builds one worker per adapter, all
// running an independent Constant(length) schedule.
func NewParallelMultistarterAdaptersConstant[T tracker.Copyable[T], C tracker.Cost](
	adapters []heuristic.Metaheuristic[T, C], length int64,
) (*ParallelMultistarter[T, C], error) {
	if len(adapters) == 0 {
		return nil, ErrEmptyWorkerList
	}
	starters := make([]*SingleThreadedMultistarter[T, C], len(adapters))
	for i, a := range adapters {
		c, err := schedule.NewConstant(length)
		if err != nil {
			return nil, err
		}
		starters[i] = NewSingleThreadedMultistarter(a, c)
	}
	return NewParallelMultistarter(starters)
}

// NewParallelMultistarterAdaptersSchedules zips adapters with schedules
// one-to-one; the lists must be the same non-zero length.
func NewParallelMultistarterAdaptersSchedules[T tracker.Copyable[T], C tracker.Cost](
	adapters []heuristic.Metaheuristic[T, C], scheds []schedule.Schedule,
) (*ParallelMultistarter[T, C], error) {
	if len(adapters) != len(scheds) {
		return nil, ErrLengthMismatch
	}
	if len(adapters) == 0 {
		return nil, ErrEmptyWorkerList
	}
	starters := make([]*SingleThreadedMultistarter[T, C], len(adapters))
	for i := range adapters {
		starters[i] = NewSingleThreadedMultistarter(adapters[i], scheds[i])
	}
	return NewParallelMultistarter(starters)
}

// NewParallelMultistarterReoptimizing builds n workers from a reoptimizable
// adapter (the first uses adapter and sched themselves, the other n-1 use
// splits of both), each dispatching through Reoptimize instead
// of Optimize — exercising the same dispatch-strategy mechanism
// SingleThreadedMultistarter uses, rather than a duplicated parallel type.
func NewParallelMultistarterReoptimizing[T tracker.Copyable[T], C tracker.Cost](
	adapter heuristic.ReoptimizableMetaheuristic[T, C], sched schedule.Schedule, n int,
) (*ParallelMultistarter[T, C], error) {
	if n < 1 {
		return nil, ErrEmptyWorkerList
	}
	starters := make([]*SingleThreadedMultistarter[T, C], n)
	for i := 0; i < n; i++ {
		var a heuristic.ReoptimizableMetaheuristic[T, C]
		var s schedule.Schedule
		if i == 0 {
			a, s = adapter, sched
		} else {
			split := adapter.Split()
			ra, ok := split.(heuristic.ReoptimizableMetaheuristic[T, C])
			if !ok {
				return nil, ErrReoptimizeUnsupported
			}
			a, s = ra, sched.Split()
		}
		starters[i] = NewReoptimizingSingleThreadedMultistarter(a, s)
	}
	return NewParallelMultistarter(starters)
}

// SetLogger overrides the Nop default with a real sink.
func (p *ParallelMultistarter[T, C]) SetLogger(log telemetry.Logger) {
	p.log = log
}

// BusySeconds reports the cumulative wall-clock time every worker has spent
// inside Optimize calls made by this multistarter.
func (p *ParallelMultistarter[T, C]) BusySeconds() float64 {
	return p.busy.Load()
}

// Optimize submits "run k restarts" to every worker, awaits them all, and
// returns the minimum-cost local best across workers (ok=false if every
// worker contributed ⊥). A worker's panic or inner-search error never
// aborts the fan-out; it contributes no result.
func (p *ParallelMultistarter[T, C]) Optimize(ctx context.Context, k int64) (heuristic.SolutionCostPair[T, C], bool, error) {
	if p.pool.IsClosed() {
		return heuristic.SolutionCostPair[T, C]{}, false, ErrPoolClosed
	}

	tasks := make([]Task[heuristic.SolutionCostPair[T, C]], len(p.workers))
	for i, w := range p.workers {
		w, idx := w, i
		tasks[i] = func(taskCtx context.Context) (result heuristic.SolutionCostPair[T, C], ok bool, err error) {
			defer func() {
				if r := recover(); r != nil {
					p.log.Warn("restart: worker panicked, contributing no result",
						log.Int("restart.worker", idx))
					ok, err = false, nil
				}
			}()
			start := time.Now()
			result, ok, err = w.Optimize(taskCtx, k)
			p.busy.Add(time.Since(start).Seconds())
			if err != nil {
				p.log.Warn("restart: worker inner-search failed, contributing no result",
					log.Int("restart.worker", idx),
					log.Int64("restart.run_length", w.TotalRunLength()),
					log.Error(err))
				return result, false, nil
			}
			return result, ok, nil
		}
	}

	handle, err := p.pool.SubmitAll(ctx, tasks)
	if err != nil {
		return heuristic.SolutionCostPair[T, C]{}, false, err
	}
	results := p.pool.AwaitAll(handle)

	var best heuristic.SolutionCostPair[T, C]
	haveBest := false
	for _, r := range results {
		if r.OK && (!haveBest || r.Value.Less(best)) {
			best = r.Value
			haveBest = true
		}
	}

	fields := []log.Field{log.Int64("restart.run_length", p.TotalRunLength())}
	if haveBest {
		fields = append(fields, log.Float64("restart.best_cost", float64(best.Cost)))
	}
	switch {
	case p.tracker.DidFindBest():
		p.log.Info("restart: tracker found the optimum", fields...)
	case p.tracker.IsStopped():
		p.log.Info("restart: tracker stopped", fields...)
	}

	return best, haveBest, nil
}

// TotalRunLength sums adapterᵢ.TotalRunLength() across every held worker.
func (p *ParallelMultistarter[T, C]) TotalRunLength() int64 {
	var total int64
	for _, w := range p.workers {
		total += w.TotalRunLength()
	}
	return total
}

// Split returns a new parallel multistarter whose adapters and schedules
// are fresh splits of this one's, owning its own worker pool.
func (p *ParallelMultistarter[T, C]) Split() (*ParallelMultistarter[T, C], error) {
	fresh := make([]*SingleThreadedMultistarter[T, C], len(p.workers))
	for i, w := range p.workers {
		fresh[i] = w.Split()
	}
	return NewParallelMultistarter(fresh)
}

// Close shuts down the underlying worker pool; idempotent. Further Optimize
// calls fail with ErrPoolClosed.
func (p *ParallelMultistarter[T, C]) Close() {
	p.pool.Close()
}
