package schedule

import "fmt"

// valSaturationThreshold is the point (2^30) past which doubling again would
// risk overflow before reaching MaxRunLength; beyond it the schedule jumps
// straight to MaxRunLength and stays there.
const valSaturationThreshold int64 = 1 << 30

// DefaultParallelVALBase is the default r_base used by NewParallelVAL: 1000.
const DefaultParallelVALBase int64 = 1000

var (
	// ErrInvalidFleetSize is returned by NewParallelVAL when fleetSize < 1.
	ErrInvalidFleetSize = fmt.Errorf("schedule: fleet size must be >= 1")

	// ErrInvalidFleetIndex is returned by NewParallelVAL when index is
	// outside [0, fleetSize).
	ErrInvalidFleetIndex = fmt.Errorf("schedule: fleet index out of range")
)

// VariableAnnealingLength (VAL) is a restart schedule doubling its run
// length on every call, saturating at MaxRunLength (2^31 - 1) forever after.
type VariableAnnealingLength struct {
	initial int64
	r       int64
}

// NewVAL constructs a VAL schedule with initial length r0, which must be
// >= 1.
func NewVAL(r0 int64) (*VariableAnnealingLength, error) {
	if r0 < 1 {
		return nil, ErrInvalidInitialLength
	}
	return &VariableAnnealingLength{initial: r0, r: r0}, nil
}

// Next emits the current run length, then doubles it (or saturates at
// MaxRunLength once doubling further would risk overflow).
func (v *VariableAnnealingLength) Next() int64 {
	result := v.r
	if v.r < valSaturationThreshold {
		v.r *= 2
	} else {
		v.r = MaxRunLength
	}
	return result
}

// Reset returns r to its construction value r0.
func (v *VariableAnnealingLength) Reset() {
	v.r = v.initial
}

// Split returns an independent VAL schedule with the same initial length.
func (v *VariableAnnealingLength) Split() Schedule {
	return &VariableAnnealingLength{initial: v.initial, r: v.initial}
}

// NewParallelVAL constructs the i-th of t parallel VAL schedules using
// DefaultParallelVALBase, staggered so that run j on worker i has length
// DefaultParallelVALBase * 2^(j+i): the union across the fleet approximates
// single-stream VAL at t times the rate.
func NewParallelVAL(fleetSize, index int) (*VariableAnnealingLength, error) {
	return NewParallelVALWithBase(DefaultParallelVALBase, fleetSize, index)
}

// NewParallelVALWithBase is NewParallelVAL parameterized by r_base instead
// of assuming DefaultParallelVALBase.
func NewParallelVALWithBase(base int64, fleetSize, index int) (*VariableAnnealingLength, error) {
	if fleetSize < 1 {
		return nil, ErrInvalidFleetSize
	}
	if index < 0 || index >= fleetSize {
		return nil, ErrInvalidFleetIndex
	}
	if base < 1 {
		return nil, ErrInvalidInitialLength
	}

	initial := base
	for i := 0; i < index; i++ {
		if initial >= valSaturationThreshold {
			initial = MaxRunLength
			break
		}
		initial *= 2
	}
	return NewVAL(initial)
}

// NewParallelVALFleet constructs all t schedules of a ParallelVAL fleet at
// once, as a convenience over calling NewParallelVAL for each index.
func NewParallelVALFleet(fleetSize int) ([]*VariableAnnealingLength, error) {
	fleet := make([]*VariableAnnealingLength, fleetSize)
	for i := 0; i < fleetSize; i++ {
		s, err := NewParallelVAL(fleetSize, i)
		if err != nil {
			return nil, err
		}
		fleet[i] = s
	}
	return fleet, nil
}
