package rng_test

// This file demonstrates the wiring heuristic.Metaheuristic.Split documents
// as a contract requirement ("Split returns an independent clone... but
// owning an independent random stream"): a minimal adapter embeds an
// rng.Source and derives its clone's stream via Source.Split rather than
// reseeding from wall-clock time or sharing the parent's *rand.Rand.

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"multistart/heuristic"
	"multistart/rng"
	"multistart/tracker"
)

type coinFlipSolution int64

func (s coinFlipSolution) Copy() coinFlipSolution { return s }

type coinFlipProblem struct{}

func (coinFlipProblem) Cost(s coinFlipSolution) int64 { return int64(s) }
func (coinFlipProblem) MinCost() int64                { return 0 }
func (coinFlipProblem) IsMinCost(cost int64) bool     { return cost == 0 }

// coinFlipAdapter is a toy inner search whose one "move" is a coin flip
// drawn from its own rng.Source, illustrating how a concrete adapter
// threads a splittable stream through Optimize and Split.
type coinFlipAdapter struct {
	problem coinFlipProblem
	tracker *tracker.ProgressTracker[coinFlipSolution, int64]
	source  *rng.Source
	total   int64
}

func newCoinFlipAdapter(seed uint64, tr *tracker.ProgressTracker[coinFlipSolution, int64]) *coinFlipAdapter {
	return &coinFlipAdapter{tracker: tr, source: rng.New(seed)}
}

func (a *coinFlipAdapter) Optimize(_ context.Context, length int64) (heuristic.SolutionCostPair[coinFlipSolution, int64], bool, error) {
	cost := coinFlipSolution(a.source.Rand().Int63n(2))
	a.total += length
	result := heuristic.SolutionCostPair[coinFlipSolution, int64]{Solution: cost, Cost: int64(cost)}
	a.tracker.Update(result.Cost, result.Solution, a.problem.IsMinCost(result.Cost))
	return result, true, nil
}

func (a *coinFlipAdapter) Split() heuristic.Metaheuristic[coinFlipSolution, int64] {
	return &coinFlipAdapter{
		problem: a.problem,
		tracker: a.tracker,
		source:  a.source.Split(),
	}
}

func (a *coinFlipAdapter) TotalRunLength() int64 { return a.total }
func (a *coinFlipAdapter) Problem() heuristic.Problem[coinFlipSolution, int64] {
	return a.problem
}
func (a *coinFlipAdapter) Tracker() *tracker.ProgressTracker[coinFlipSolution, int64] {
	return a.tracker
}
func (a *coinFlipAdapter) SetTracker(t *tracker.ProgressTracker[coinFlipSolution, int64]) {
	a.tracker = t
}

func TestAdapterSplitDerivesIndependentSource(t *testing.T) {
	Convey("Given an adapter whose Split derives its stream from rng.Source.Split", t, func() {
		tr := tracker.New[coinFlipSolution, int64](true)
		parent := newCoinFlipAdapter(99, tr)

		Convey("Splitting it twice yields siblings seeded from the same parent deterministically", func() {
			a := parent.Split().(*coinFlipAdapter)
			b := parent.Split().(*coinFlipAdapter)

			pa := rng.New(99)
			sibling1 := pa.Split()
			sibling2 := pa.Split()

			So(a.source.Rand().Int63(), ShouldEqual, sibling1.Rand().Int63())
			So(b.source.Rand().Int63(), ShouldEqual, sibling2.Rand().Int63())
		})
	})
}
