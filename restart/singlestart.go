package restart

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sourcegraph/log"

	"multistart/heuristic"
	"multistart/schedule"
	"multistart/telemetry"
	"multistart/tracker"
)

// dispatchFunc is the strategy closure a SingleThreadedMultistarter stores
// at construction, selecting Optimize or Reoptimize so the rest of the
// engine (and everything built atop it: ParallelMultistarter,
// TimedParallelMultistarter) never branches on which one a worker uses.
type dispatchFunc[T tracker.Copyable[T], C tracker.Cost] func(ctx context.Context, length int64) (heuristic.SolutionCostPair[T, C], bool, error)

// SingleThreadedMultistarter sequences runs of one inner search against one
// schedule: ask schedule for a length, run the inner adapter, merge the
// result into a local best, repeat until told to stop or the restart budget
// is exhausted.
type SingleThreadedMultistarter[T tracker.Copyable[T], C tracker.Cost] struct {
	adapter       heuristic.Metaheuristic[T, C]
	schedule      schedule.Schedule
	call          dispatchFunc[T, C]
	reoptimizing  bool
	optimizeCalls int64
	log           telemetry.Logger
}

// NewSingleThreadedMultistarter constructs a multistarter whose dispatch
// strategy is adapter.Optimize.
func NewSingleThreadedMultistarter[T tracker.Copyable[T], C tracker.Cost](
	adapter heuristic.Metaheuristic[T, C], sched schedule.Schedule,
) *SingleThreadedMultistarter[T, C] {
	return &SingleThreadedMultistarter[T, C]{
		adapter:  adapter,
		schedule: sched,
		call:     adapter.Optimize,
		log:      telemetry.Nop(),
	}
}

// NewReoptimizingSingleThreadedMultistarter constructs a multistarter whose
// dispatch strategy is adapter.Reoptimize instead of Optimize, continuing
// from prior inner-search state on every restart rather than starting fresh.
func NewReoptimizingSingleThreadedMultistarter[T tracker.Copyable[T], C tracker.Cost](
	adapter heuristic.ReoptimizableMetaheuristic[T, C], sched schedule.Schedule,
) *SingleThreadedMultistarter[T, C] {
	return &SingleThreadedMultistarter[T, C]{
		adapter:      adapter,
		schedule:     sched,
		call:         adapter.Reoptimize,
		reoptimizing: true,
		log:          telemetry.Nop(),
	}
}

// SetLogger overrides the Nop default with a real sink.
func (s *SingleThreadedMultistarter[T, C]) SetLogger(log telemetry.Logger) {
	s.log = log
}

// Optimize loops up to numRestarts times: stop early if the tracker has
// stopped or found the optimum; otherwise pull a run length from the
// schedule and dispatch one inner-search call, keeping the best non-⊥
// result seen. An inner-search error propagates to the caller; the
// multistarter itself never retries.
func (s *SingleThreadedMultistarter[T, C]) Optimize(ctx context.Context, numRestarts int64) (heuristic.SolutionCostPair[T, C], bool, error) {
	var best heuristic.SolutionCostPair[T, C]
	haveBest := false
	tr := s.adapter.Tracker()

	for k := int64(0); k < numRestarts; k++ {
		select {
		case <-ctx.Done():
			return best, haveBest, nil
		default:
		}
		if tr.DidFindBest() {
			s.log.Info("restart: tracker found the optimum",
				log.Int64("restart.run_length", s.adapter.TotalRunLength()))
			break
		}
		if tr.IsStopped() {
			s.log.Info("restart: tracker stopped",
				log.Int64("restart.run_length", s.adapter.TotalRunLength()))
			break
		}

		length := s.schedule.Next()
		s.optimizeCalls++
		result, ok, err := s.call(ctx, length)
		if err != nil {
			return best, haveBest, errors.Wrap(err, "restart: inner search failed")
		}
		if ok && (!haveBest || result.Less(best)) {
			best = result
			haveBest = true
		}
	}

	return best, haveBest, nil
}

// OptimizeCalls reports how many times the dispatch strategy has been
// invoked across every Optimize call made on this multistarter.
func (s *SingleThreadedMultistarter[T, C]) OptimizeCalls() int64 {
	return s.optimizeCalls
}

// TotalRunLength is the adapter's own monotonically increasing run-length
// counter.
func (s *SingleThreadedMultistarter[T, C]) TotalRunLength() int64 {
	return s.adapter.TotalRunLength()
}

// Split returns a new multistarter wrapping adapter.Split() and
// schedule.Split(), preserving this multistarter's dispatch strategy. If
// this multistarter reoptimizes but the split adapter does not itself
// implement ReoptimizableMetaheuristic, Split falls back to the Optimize
// strategy for the clone.
func (s *SingleThreadedMultistarter[T, C]) Split() *SingleThreadedMultistarter[T, C] {
	newAdapter := s.adapter.Split()
	newSchedule := s.schedule.Split()

	clone := &SingleThreadedMultistarter[T, C]{
		adapter:  newAdapter,
		schedule: newSchedule,
		call:     newAdapter.Optimize,
		log:      s.log,
	}
	if s.reoptimizing {
		if ra, ok := newAdapter.(heuristic.ReoptimizableMetaheuristic[T, C]); ok {
			clone.call = ra.Reoptimize
			clone.reoptimizing = true
		}
	}
	return clone
}
