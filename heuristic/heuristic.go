// Package heuristic declares the contract between the restart engine and the
// inner metaheuristics it orchestrates. The engine never inspects a solution
// or a cost function itself; it only calls through these interfaces.
package heuristic

import (
	"context"

	"multistart/tracker"
)

// Copyable is the capability a solution type must expose so the progress
// tracker can retain an independent snapshot of the current best, decoupled
// from whatever mutable state the inner search keeps walking over.
type Copyable[T any] = tracker.Copyable[T]

// SolutionCostPair is the immutable result of one inner-search run. Pairs
// are ordered by Cost ascending; ContainsOptimum flags that the inner search
// believes Cost is a provable optimum, never inferred from its value.
type SolutionCostPair[T any, C tracker.Cost] struct {
	Solution        T
	Cost            C
	ContainsOptimum bool
}

// Less reports whether x strictly improves on other, i.e. has a lower cost.
func (x SolutionCostPair[T, C]) Less(other SolutionCostPair[T, C]) bool {
	return x.Cost < other.Cost
}

// Problem exposes the cost function and optimum-related queries the core
// needs opaquely; it never owns solution or cost semantics itself.
type Problem[T any, C tracker.Cost] interface {
	Cost(solution T) C
	MinCost() C
	IsMinCost(cost C) bool
}

// Metaheuristic is the adapter interface the engine calls into to run one
// restart of a wrapped local-search or annealing procedure.
//
// Optimize runs length units of work and returns its result pair, or ok=false
// if it declined to run (e.g. the tracker already stopped, or already found
// the optimum). An error is an inner-search failure (*inner-failure*); the
// engine recovers and swallows this at a worker boundary but an unwrapped
// single-threaded multistarter propagates it to its own caller.
type Metaheuristic[T tracker.Copyable[T], C tracker.Cost] interface {
	Optimize(ctx context.Context, length int64) (result SolutionCostPair[T, C], ok bool, err error)

	// Split returns an independent clone sharing this adapter's problem and
	// progress tracker identity, but owning an independent random stream.
	Split() Metaheuristic[T, C]

	// TotalRunLength is the monotonically increasing sum of length consumed
	// across every Optimize/Reoptimize call made on this adapter.
	TotalRunLength() int64

	Problem() Problem[T, C]

	// Tracker returns the progress tracker this adapter reports into.
	Tracker() *tracker.ProgressTracker[T, C]

	// SetTracker rebinds the progress tracker this adapter reports into.
	SetTracker(t *tracker.ProgressTracker[T, C])
}

// ReoptimizableMetaheuristic additionally supports continuing from prior
// search state rather than restarting fresh.
type ReoptimizableMetaheuristic[T tracker.Copyable[T], C tracker.Cost] interface {
	Metaheuristic[T, C]

	Reoptimize(ctx context.Context, length int64) (result SolutionCostPair[T, C], ok bool, err error)
}
