// Package tracker implements the single cross-worker shared-state object
// carrying the best-so-far solution, the stop flag, and the found-optimum
// flag for a running multistart engine.
package tracker

import (
	"sync/atomic"
)

// Cost constrains the numeric cost types a progress tracker can hold: either
// integer- or double-valued problems, chosen once at construction.
type Cost interface {
	~int64 | ~float64
}

// Copyable is the capability a solution type must expose so Update can
// retain an independent snapshot of the candidate, decoupled from whatever
// mutable state the inner search keeps walking over.
type Copyable[T any] interface {
	Copy() T
}

// best is the immutable record a ProgressTracker swaps in atomically. A nil
// *best means no update has landed yet.
type best[T Copyable[T], C Cost] struct {
	solution T
	cost     C
}

// ProgressTracker is the shared best-solution plus stop/found-optimum state
// referenced by an engine and by every inner adapter it drives. Any number
// of goroutines may call its methods concurrently; see Update for the
// linearisability guarantee.
//
// The zero value is not usable; construct with New.
type ProgressTracker[T Copyable[T], C Cost] struct {
	best            atomic.Pointer[best[T, C]]
	stopped         atomic.Bool
	foundOptimum    atomic.Bool
	containsIntCost bool
}

// New constructs a tracker whose cost type is fixed for its lifetime.
// containsIntCost only affects the value reported by ContainsIntCost; it
// does not otherwise change Update's behavior.
func New[T Copyable[T], C Cost](containsIntCost bool) *ProgressTracker[T, C] {
	return &ProgressTracker[T, C]{containsIntCost: containsIntCost}
}

// Update replaces the best solution if cost strictly improves on whatever is
// currently recorded (or if nothing has been recorded yet), and reports
// whether it did so. If containsOptimum is true, the found-optimum flag is
// set irreversibly regardless of whether cost was an improvement.
//
// Concurrent callers race on the same compare-and-swap loop the teacher's
// atomic float helpers use, generalized from an unsafe-punned float64 to an
// immutable pointer swap so no unsafe package is needed.
func (p *ProgressTracker[T, C]) Update(cost C, solution T, containsOptimum bool) bool {
	defer func() {
		if containsOptimum {
			p.foundOptimum.Store(true)
		}
	}()

	next := &best[T, C]{solution: solution.Copy(), cost: cost}
	for {
		cur := p.best.Load()
		if cur != nil && cur.cost <= cost {
			return false
		}
		if p.best.CompareAndSwap(cur, next) {
			return true
		}
	}
}

// Stop sets the stopped flag irreversibly.
func (p *ProgressTracker[T, C]) Stop() {
	p.stopped.Store(true)
}

// IsStopped reports whether Stop has ever been called.
func (p *ProgressTracker[T, C]) IsStopped() bool {
	return p.stopped.Load()
}

// DidFindBest reports whether any Update call has flagged containsOptimum.
func (p *ProgressTracker[T, C]) DidFindBest() bool {
	return p.foundOptimum.Load()
}

// GetCost returns the current best cost, and false if no Update has landed.
func (p *ProgressTracker[T, C]) GetCost() (cost C, ok bool) {
	cur := p.best.Load()
	if cur == nil {
		return cost, false
	}
	return cur.cost, true
}

// GetSolution returns a copy of the current best solution, and false if no
// Update has landed.
func (p *ProgressTracker[T, C]) GetSolution() (solution T, ok bool) {
	cur := p.best.Load()
	if cur == nil {
		return solution, false
	}
	return cur.solution.Copy(), true
}

// ContainsIntCost reports the cost-type choice fixed at construction.
func (p *ProgressTracker[T, C]) ContainsIntCost() bool {
	return p.containsIntCost
}
