package tracker

import (
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

type intSolution int64

func (s intSolution) Copy() intSolution { return s }

func TestUpdateMonotoneBest(t *testing.T) {
	Convey("Given a fresh int-cost tracker", t, func() {
		tr := New[intSolution, int64](true)

		Convey("The first update always improves", func() {
			ok := tr.Update(10, 10, false)
			So(ok, ShouldBeTrue)
			cost, found := tr.GetCost()
			So(found, ShouldBeTrue)
			So(cost, ShouldEqual, int64(10))
		})

		Convey("A strictly lower cost improves; a higher or equal cost does not", func() {
			So(tr.Update(10, 10, false), ShouldBeTrue)
			So(tr.Update(20, 20, false), ShouldBeFalse)
			So(tr.Update(10, 10, false), ShouldBeFalse)
			So(tr.Update(5, 5, false), ShouldBeTrue)

			cost, _ := tr.GetCost()
			So(cost, ShouldEqual, int64(5))
		})

		Convey("Concurrent updates converge to the minimum cost", func() {
			var wg sync.WaitGroup
			costs := []int64{50, 3, 77, 1, 42, 9, 100, 2}
			for _, c := range costs {
				c := c
				wg.Add(1)
				go func() {
					defer wg.Done()
					tr.Update(c, intSolution(c), false)
				}()
			}
			wg.Wait()

			cost, found := tr.GetCost()
			So(found, ShouldBeTrue)
			So(cost, ShouldEqual, int64(1))
		})
	})
}

func TestStopIsIrreversible(t *testing.T) {
	Convey("Given a tracker that has been stopped", t, func() {
		tr := New[intSolution, int64](true)
		tr.Stop()

		Convey("IsStopped returns true forever after", func() {
			So(tr.IsStopped(), ShouldBeTrue)
			tr.Update(1, 1, false)
			So(tr.IsStopped(), ShouldBeTrue)
		})
	})
}

func TestUpdateWithContainsOptimumSetsFoundBestForever(t *testing.T) {
	Convey("Given a tracker that has never found the optimum", t, func() {
		tr := New[intSolution, int64](true)
		So(tr.DidFindBest(), ShouldBeFalse)

		Convey("update(c, s, true) sets DidFindBest irreversibly, regardless of later updates", func() {
			tr.Update(5, 5, true)
			So(tr.DidFindBest(), ShouldBeTrue)

			tr.Update(1, 1, false)
			So(tr.DidFindBest(), ShouldBeTrue)
		})
	})
}

func TestGetSolutionReturnsRecordedValue(t *testing.T) {
	Convey("Given a tracker with a recorded best", t, func() {
		tr := New[intSolution, int64](true)
		tr.Update(1, intSolution(1), false)

		Convey("GetSolution returns the recorded value", func() {
			solution, ok := tr.GetSolution()
			So(ok, ShouldBeTrue)
			So(solution, ShouldEqual, intSolution(1))
		})
	})
}

func TestContainsIntCostReportsConstructionChoice(t *testing.T) {
	Convey("A tracker constructed with containsIntCost=true reports it", t, func() {
		tr := New[intSolution, int64](true)
		So(tr.ContainsIntCost(), ShouldBeTrue)
	})

	Convey("A tracker constructed with containsIntCost=false reports it", t, func() {
		tr := New[intSolution, int64](false)
		So(tr.ContainsIntCost(), ShouldBeFalse)
	})
}
