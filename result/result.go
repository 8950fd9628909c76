/*
Package result implements a Result type, which is the result of a computation
that may fail: either Ok(x) or Err(e).

Results may be inspected with the switch idiom of package maybe, or matched
with patterns from package pattern, as every Result is a tagged variant with
cases "Ok" and "Err":

	pattern.Case(result.TypeID, result.OkCase, pattern.Bind("x"))
*/
package result

import (
	"fmt"

	"github.com/npillmayer/casematch/value"
)

// Type id and case names for matching results as variants.
const (
	TypeID  = "Result"
	OkCase  = "Ok"
	ErrCase = "Err"
)

type Result[T any] interface {
	value.Variant
	Match() Matcher[T]
	Get() (T, error)
}

type result[T any] struct {
	value T
	err   error
}

func Ok[T any](x T) Result[T] {
	return result[T]{value: x}
}

func Err[T any](err error) Result[T] {
	return result[T]{err: err}
}

// From creates a result from a Go-style return pair.
func From[T any](x T, err error) Result[T] {
	if err != nil {
		return Err[T](err)
	}
	return Ok(x)
}

func (r result[T]) Match() Matcher[T] {
	return matcher[T]{r: r}
}

func (r result[T]) Get() (T, error) {
	return r.value, r.err
}

func (r result[T]) TypeID() string {
	return TypeID
}

func (r result[T]) Case() string {
	if r.err != nil {
		return ErrCase
	}
	return OkCase
}

func (r result[T]) Payload() []value.Value {
	if r.err != nil {
		return []value.Value{r.err}
	}
	return []value.Value{r.value}
}

func (r result[T]) String() string {
	if r.err != nil {
		return fmt.Sprintf("Err(%v)", r.err)
	}
	return fmt.Sprintf("Ok(%v)", r.value)
}

// --- Matching --------------------------------------------------------------

type Matcher[T any] interface {
	Ok(*T) Matcher[T]
	Err(*error) Matcher[T]
}

type matcher[T any] struct {
	r result[T]
}

func (rm matcher[T]) Ok(v *T) Matcher[T] {
	if rm.r.err == nil {
		*v = rm.r.value
		return rm
	}
	return nil
}

func (rm matcher[T]) Err(err *error) Matcher[T] {
	if rm.r.err != nil {
		*err = rm.r.err
		return rm
	}
	return nil
}
