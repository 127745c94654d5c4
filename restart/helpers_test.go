package restart

import (
	"context"
	"sync"

	"multistart/heuristic"
	"multistart/tracker"
)

// intSolution is a trivial Copyable[int] solution shared across restart
// package tests.
type intSolution int64

func (s intSolution) Copy() intSolution { return s }

// intProblem is a minimal heuristic.Problem[intSolution, int64] for tests;
// cost 1 is the unique optimum.
type intProblem struct{}

func (intProblem) Cost(s intSolution) int64 { return int64(s) }
func (intProblem) MinCost() int64           { return 1 }
func (intProblem) IsMinCost(c int64) bool   { return c <= 1 }

// scriptedBehavior computes one call's outcome given the adapter's
// cumulative run length before the call and the requested length; consumed
// reports how much of length was actually spent (< length models an inner
// search that stops partway through a run).
type scriptedBehavior func(before, length int64) (result heuristic.SolutionCostPair[intSolution, int64], ok bool, err error, consumed int64)

// scriptedAdapter is a test Metaheuristic whose behavior on each call is
// driven by a caller-supplied function, letting tests simulate normal runs,
// thrown errors, returned ⊥, and partial-length stops without a real inner
// search.
type scriptedAdapter struct {
	mu             sync.Mutex
	tr             *tracker.ProgressTracker[intSolution, int64]
	totalRunLength int64
	calls          int64
	reoptCalls     int64
	behavior       scriptedBehavior
}

func newScriptedAdapter(tr *tracker.ProgressTracker[intSolution, int64], behavior scriptedBehavior) *scriptedAdapter {
	return &scriptedAdapter{tr: tr, behavior: behavior}
}

func (a *scriptedAdapter) Optimize(ctx context.Context, length int64) (heuristic.SolutionCostPair[intSolution, int64], bool, error) {
	a.mu.Lock()
	before := a.totalRunLength
	a.calls++
	a.mu.Unlock()

	result, ok, err, consumed := a.behavior(before, length)

	a.mu.Lock()
	a.totalRunLength = before + consumed
	a.mu.Unlock()

	return result, ok, err
}

func (a *scriptedAdapter) Reoptimize(ctx context.Context, length int64) (heuristic.SolutionCostPair[intSolution, int64], bool, error) {
	a.mu.Lock()
	a.reoptCalls++
	a.mu.Unlock()
	return a.Optimize(ctx, length)
}

func (a *scriptedAdapter) Split() heuristic.Metaheuristic[intSolution, int64] {
	return &scriptedAdapter{tr: a.tr, behavior: a.behavior}
}

func (a *scriptedAdapter) TotalRunLength() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.totalRunLength
}

func (a *scriptedAdapter) Problem() heuristic.Problem[intSolution, int64] { return intProblem{} }

func (a *scriptedAdapter) Tracker() *tracker.ProgressTracker[intSolution, int64] { return a.tr }

func (a *scriptedAdapter) SetTracker(t *tracker.ProgressTracker[intSolution, int64]) { a.tr = t }

func (a *scriptedAdapter) callCount() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls
}

func (a *scriptedAdapter) reoptimizeCallCount() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.reoptCalls
}

// alwaysRuns is a scripted-adapter behavior that always succeeds with a
// fixed cost, consuming the full requested length, never stopping or
// flagging the optimum.
func alwaysRuns(cost int64) scriptedBehavior {
	return func(before, length int64) (heuristic.SolutionCostPair[intSolution, int64], bool, error, int64) {
		return heuristic.SolutionCostPair[intSolution, int64]{Solution: intSolution(cost), Cost: cost}, true, nil, length
	}
}

// throws is a scripted-adapter behavior that always fails.
func throws(err error) scriptedBehavior {
	return func(before, length int64) (heuristic.SolutionCostPair[intSolution, int64], bool, error, int64) {
		return heuristic.SolutionCostPair[intSolution, int64]{}, false, err, length
	}
}

// returnsNothing is a scripted-adapter behavior that always declines to run.
func returnsNothing() scriptedBehavior {
	return func(before, length int64) (heuristic.SolutionCostPair[intSolution, int64], bool, error, int64) {
		return heuristic.SolutionCostPair[intSolution, int64]{}, false, nil, length
	}
}

// stopAtEval is a scripted-adapter behavior that runs a fixed sub-optimal
// cost and, once cumulative run length would reach eval, consumes only up
// to eval and stops the tracker — modeling an inner search that notices a
// stop condition mid-run rather than only between calls.
func stopAtEval(tr *tracker.ProgressTracker[intSolution, int64], eval int64, cost int64) scriptedBehavior {
	return func(before, length int64) (heuristic.SolutionCostPair[intSolution, int64], bool, error, int64) {
		if before+length >= eval {
			consumed := eval - before
			tr.Update(cost, intSolution(cost), false)
			tr.Stop()
			return heuristic.SolutionCostPair[intSolution, int64]{Solution: intSolution(cost), Cost: cost}, true, nil, consumed
		}
		return heuristic.SolutionCostPair[intSolution, int64]{Solution: intSolution(cost), Cost: cost}, true, nil, length
	}
}

// foundOptimumAtEval is stopAtEval's found-optimum counterpart: flags
// containsOptimum instead of calling Stop.
func foundOptimumAtEval(tr *tracker.ProgressTracker[intSolution, int64], eval int64) scriptedBehavior {
	return func(before, length int64) (heuristic.SolutionCostPair[intSolution, int64], bool, error, int64) {
		if before+length >= eval {
			consumed := eval - before
			tr.Update(1, intSolution(1), true)
			return heuristic.SolutionCostPair[intSolution, int64]{Solution: intSolution(1), Cost: 1, ContainsOptimum: true}, true, nil, consumed
		}
		return heuristic.SolutionCostPair[intSolution, int64]{Solution: intSolution(10), Cost: 10}, true, nil, length
	}
}
