// Package schedule implements the restart-schedule abstraction: a stateful,
// lazy, resettable, splittable generator of positive run lengths that
// governs how long each restart of the inner search runs for.
package schedule

import "github.com/pkg/errors"

// MaxRunLength is the saturation ceiling run lengths converge to: 2^31 - 1.
const MaxRunLength int64 = (1 << 31) - 1

var (
	// ErrInvalidMultiplier is returned when constructing a Luby schedule
	// with a non-positive multiplier.
	ErrInvalidMultiplier = errors.New("schedule: multiplier must be >= 1")

	// ErrInvalidInitialLength is returned when constructing a Constant or
	// VariableAnnealingLength schedule with a non-positive initial length.
	ErrInvalidInitialLength = errors.New("schedule: initial length must be >= 1")
)

// Schedule is a stateful, infinite generator of positive run lengths.
//
// Next never returns a value <= 0. Reset returns the generator to its
// construction state; this is a precondition violation if called while the
// schedule is concurrently being consumed by a running engine — schedules
// are never shared across workers (see ParallelMultistarter), so this only
// matters for a caller driving a SingleThreadedMultistarter directly. Split
// returns an independent copy that would produce the same sequence from a
// fresh state, sharing no mutable state with the original.
type Schedule interface {
	Next() int64
	Reset()
	Split() Schedule
}
