package schedule

// Luby is a restart schedule emitting multiplier times the classical Luby
// sequence 1,1,2,1,1,2,4,1,1,2,1,1,2,4,8,... .
type Luby struct {
	multiplier int64
	u, v       int64
}

// NewLuby constructs a Luby schedule with the given multiplier, which must
// be >= 1.
func NewLuby(multiplier int64) (*Luby, error) {
	if multiplier < 1 {
		return nil, ErrInvalidMultiplier
	}
	return &Luby{multiplier: multiplier, u: 1, v: 1}, nil
}

// Next emits multiplier * the next term of the Luby sequence. The
// doubling-reset test ((-u) & u) == v identifies the positions at which the
// Luby sequence's recursive structure resets to a fresh power-of-two run.
func (l *Luby) Next() int64 {
	result := l.multiplier * l.v
	if (-l.u)&l.u == l.v {
		l.u++
		l.v = 1
	} else {
		l.v *= 2
	}
	return result
}

// Reset returns u, v to their construction state (1, 1).
func (l *Luby) Reset() {
	l.u, l.v = 1, 1
}

// Split returns an independent Luby schedule with the same multiplier,
// starting from a fresh (u, v) = (1, 1) state.
func (l *Luby) Split() Schedule {
	return &Luby{multiplier: l.multiplier, u: 1, v: 1}
}
