package symdiff

// Round bundles every piece of state the engine touches while processing one
// line of input: the node arena/freelist, the variable table, and the two
// error flags. Between rounds no state persists; NewRound constructs a
// completely fresh context rather than resetting shared globals.
type Round struct {
	Vars *VarTable

	freelist []*Node

	// FailedToParse halts the round before differentiation (set by Parse).
	FailedToParse bool
	// DividedByZero silences output for the current derivation only; it is
	// checked and cleared per variable, not once per round.
	DividedByZero bool
}

func NewRound() *Round {
	return &Round{Vars: newVarTable()}
}

// ResetDividedByZero clears the per-derivation error flag before computing
// the next variable's derivative, so one variable's divide-by-zero does not
// suppress another's.
func (r *Round) ResetDividedByZero() {
	r.DividedByZero = false
}
