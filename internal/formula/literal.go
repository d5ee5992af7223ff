package formula

import "fmt"

// Literal identifies a boolean variable together with a polarity. Variables
// are 1-indexed at the DIMACS/WCNF boundary but a Literal always addresses
// variable 0 through NumVars()-1 internally, matching the teacher's
// var*2+polarity encoding so that Opposite is a single XOR.
type Literal int

// PositiveLiteral returns the literal asserting varID.
func PositiveLiteral(varID int) Literal {
	return Literal(varID * 2)
}

// NegativeLiteral returns the literal asserting the negation of varID.
func NegativeLiteral(varID int) Literal {
	return PositiveLiteral(varID).Opposite()
}

// VarID returns the ID of the literal's variable.
func (l Literal) VarID() int {
	return int(l) / 2
}

// IsPositive reports whether the literal asserts its variable (as opposed to
// its negation).
func (l Literal) IsPositive() bool {
	return l&1 == 0
}

// Opposite returns the negation of l.
func (l Literal) Opposite() Literal {
	return l ^ 1
}

// Satisfied reports whether the literal is true when its variable holds the
// given value.
func (l Literal) Satisfied(varValue bool) bool {
	return varValue == l.IsPositive()
}

func (l Literal) String() string {
	if l.IsPositive() {
		return fmt.Sprintf("x%d", l.VarID())
	}
	return fmt.Sprintf("-x%d", l.VarID())
}
