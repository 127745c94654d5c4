// Package restart implements the concurrent-restart engine: the
// single-threaded multistarter (C4), the worker pool (C5), the parallel
// multistarter (C6), and the timed parallel multistarter (C7). They share
// one package because C6 and C7 are both built from C4 workers driven
// through a dispatch strategy rather than duplicated per optimize/reoptimize
// variant, the way the teacher kept one reinforcement package around a
// single training loop instead of splitting by algorithm variant.
package restart

import "github.com/pkg/errors"

var (
	// ErrEmptyWorkerList is returned when constructing a parallel
	// multistarter with zero workers.
	ErrEmptyWorkerList = errors.New("restart: worker list must be non-empty")

	// ErrProblemIdentityMismatch is returned when the supplied workers do
	// not all share the same problem-object identity.
	ErrProblemIdentityMismatch = errors.New("restart: all adapters must share the same problem identity")

	// ErrTrackerIdentityMismatch is returned when the supplied workers do
	// not all share the same progress-tracker identity.
	ErrTrackerIdentityMismatch = errors.New("restart: all adapters must share the same progress tracker identity")

	// ErrLengthMismatch is returned when zipping adapters against
	// schedules of differing lengths.
	ErrLengthMismatch = errors.New("restart: adapter and schedule list lengths must match")

	// ErrPoolClosed is returned by SubmitAll (and, in turn, Optimize) once
	// the owning worker pool has been closed.
	ErrPoolClosed = errors.New("restart: worker pool is closed")

	// ErrInvalidPoolSize is returned when constructing a worker pool with
	// fewer than one worker.
	ErrInvalidPoolSize = errors.New("restart: pool size must be >= 1")

	// ErrInvalidTimeUnit is returned when constructing a timed parallel
	// multistarter with a non-positive time unit.
	ErrInvalidTimeUnit = errors.New("restart: time unit must be > 0")

	// ErrReoptimizeUnsupported is returned when a reoptimizing parallel
	// multistarter is built from an adapter whose Split does not itself
	// implement ReoptimizableMetaheuristic.
	ErrReoptimizeUnsupported = errors.New("restart: adapter split does not support reoptimize")
)
