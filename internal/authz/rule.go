package authz

// Level is a numeric permission grade in [0,3]. Higher grants broader access.
type Level int

// MinLevel and MaxLevel bound the valid range.
const (
	MinLevel Level = 0
	MaxLevel Level = 3
)

// Valid reports whether the level is inside the allowed range.
func (l Level) Valid() bool {
	return l >= MinLevel && l <= MaxLevel
}

// Satisfies is the one comparison rule in the system: a principal at level l
// may perform a task requiring level required iff l >= required. The server
// gate and the capability filter both call this function; there is no second
// copy of the comparison anywhere.
func (l Level) Satisfies(required Level) bool {
	return l >= required
}
