package casematch

// Unit returns unit for any input => the zero value for T.
func Unit[T any](_ T) T {
	var a T
	return a
}

// Const returns a function that produces a.
func Const[T any](a T) func() T {
	return func() T {
		return a
	}
}

// Compose returns h = f . g
func Compose[A, B, C any](g func(a A) B, f func(b B) C) func(A) C {
	return func(a A) C {
		b := g(a)
		return f(b)
	}
}

// --- Predicates ------------------------------------------------------------

// Predicate is a boolean test on values of type T.
type Predicate[T any] func(T) bool

// Always returns a predicate which is true for every input.
func Always[T any]() Predicate[T] {
	return func(T) bool { return true }
}

// And returns a predicate which is true if all of ps are true. Evaluation stops
// at the first predicate returning false. And() with no arguments is always true.
func And[T any](ps ...Predicate[T]) Predicate[T] {
	return func(x T) bool {
		for _, p := range ps {
			if !p(x) {
				return false
			}
		}
		return true
	}
}

// Or returns a predicate which is true if any of ps is true. Evaluation stops
// at the first predicate returning true. Or() with no arguments is always false.
func Or[T any](ps ...Predicate[T]) Predicate[T] {
	return func(x T) bool {
		for _, p := range ps {
			if p(x) {
				return true
			}
		}
		return false
	}
}

// Not negates p.
func Not[T any](p Predicate[T]) Predicate[T] {
	return func(x T) bool {
		return !p(x)
	}
}

// Lift turns a projection and a predicate on the projected value into a predicate
// on the source, i.e. Lift(f, p) = p . f
func Lift[A, B any](f func(A) B, p Predicate[B]) Predicate[A] {
	return Predicate[A](Compose(f, (func(B) bool)(p)))
}
