/*
Package either implements a sum type of two alternatives.

Haskell:

    type Either a b = Left a | Right b

Stand-in in Go:

    e := either.Left[int, string](1)

Either values are tagged variants (type id "Either", cases "Left" and "Right")
and may therefore be destructured by patterns of package pattern.
*/
package either

import (
	"fmt"

	"github.com/npillmayer/casematch/value"
)

// Type id and case names for matching Either values as variants.
const (
	TypeID    = "Either"
	LeftCase  = "Left"
	RightCase = "Right"
)

// Either holds either a value of type L or a value of type R.
type Either[L, R any] struct {
	discr bool // true ⇒ right
	left  L
	right R
}

func Left[L, R any](l L) Either[L, R] {
	return Either[L, R]{left: l}
}

func Right[L, R any](r R) Either[L, R] {
	return Either[L, R]{discr: true, right: r}
}

func (e Either[L, R]) IsLeft() bool {
	return !e.discr
}

// Fold applies f to a left value or g to a right value.
func Fold[L, R, T any](e Either[L, R], f func(L) T, g func(R) T) T {
	if e.discr {
		return g(e.right)
	}
	return f(e.left)
}

// Match returns a matcher for the switch idiom:
//
//     switch m := e.Match(); m {
//     case m.Left(&l): …
//     case m.Right(&r): …
//     }
//
func (e Either[L, R]) Match() Matcher[L, R] {
	return matcher[L, R]{e: e}
}

func (e Either[L, R]) TypeID() string {
	return TypeID
}

func (e Either[L, R]) Case() string {
	if e.discr {
		return RightCase
	}
	return LeftCase
}

func (e Either[L, R]) Payload() []value.Value {
	if e.discr {
		return []value.Value{e.right}
	}
	return []value.Value{e.left}
}

func (e Either[L, R]) String() string {
	if e.discr {
		return fmt.Sprintf("Right(%v)", e.right)
	}
	return fmt.Sprintf("Left(%v)", e.left)
}

var _ value.Variant = Either[int, string]{}

// --- Matching --------------------------------------------------------------

type Matcher[L, R any] interface {
	Left(*L) Matcher[L, R]
	Right(*R) Matcher[L, R]
}

type matcher[L, R any] struct {
	e Either[L, R]
}

func (em matcher[L, R]) Left(l *L) Matcher[L, R] {
	if !em.e.discr {
		*l = em.e.left
		return em
	}
	return nil
}

func (em matcher[L, R]) Right(r *R) Matcher[L, R] {
	if em.e.discr {
		*r = em.e.right
		return em
	}
	return nil
}
