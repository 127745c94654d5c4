package schedule

// Constant is a restart schedule emitting the same run length forever.
type Constant struct {
	length int64
}

// NewConstant constructs a Constant schedule emitting length on every call
// to Next. length must be >= 1.
func NewConstant(length int64) (*Constant, error) {
	if length < 1 {
		return nil, ErrInvalidInitialLength
	}
	return &Constant{length: length}, nil
}

// Next always returns the constructed length.
func (c *Constant) Next() int64 { return c.length }

// Reset is a no-op: a Constant schedule has no mutable state to reset.
func (c *Constant) Reset() {}

// Split returns an independent Constant schedule with the same length.
func (c *Constant) Split() Schedule {
	return &Constant{length: c.length}
}
