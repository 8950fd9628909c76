package casematch

import "github.com/npillmayer/casematch/value"

// --- Matchable -------------------------------------------------------------

// Matchable is an interface for types which can be compared to another instance and
// decomposed into two parts.
type Matchable[T, A, B comparable] interface {
	Matches(other T) bool
	Decompose() (A, B)
}

// --- Pair ------------------------------------------------------------------

// Pair is a typed 2-tuple.
type Pair[A, B comparable] struct {
	Left  A
	Right B
}

// P creates a pair (x, y).
func P[A, B comparable](x A, y B) Pair[A, B] {
	return Pair[A, B]{x, y}
}

func (p Pair[A, B]) Matches(other Pair[A, B]) bool {
	return p.Left == other.Left && p.Right == other.Right
}

func (p Pair[A, B]) Decompose() (A, B) {
	return p.Left, p.Right
}

// Tuple converts p to an unlabeled runtime tuple of arity 2, suitable for
// matching against tuple patterns.
func (p Pair[A, B]) Tuple() value.Tuple {
	return value.Tup(p.Left, p.Right)
}

// Labeled converts p to a runtime tuple with field labels l and r.
func (p Pair[A, B]) Labeled(l, r string) value.Tuple {
	return value.Tuple{Fields: []value.Field{
		{Label: l, Value: p.Left},
		{Label: r, Value: p.Right},
	}}
}

var _ Matchable[Pair[int, int], int, int] = Pair[int, int]{1, 2}
var _ Matchable[Pair[int, int], int, int] = P(1, 2)
