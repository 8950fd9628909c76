package value

import (
	"math"
	"reflect"
)

// ToInt converts any Go integer value to int. Floats and other types are not
// converted.
func ToInt(v Value) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

// ToFloat converts a Go float value to float64. Integers are not converted.
func ToFloat(v Value) (float64, bool) {
	switch f := v.(type) {
	case float64:
		return f, true
	case float32:
		return float64(f), true
	}
	return 0, false
}

// IsInt is true for all Go integer kinds.
func IsInt(v Value) bool {
	_, ok := ToInt(v)
	return ok
}

// IsFloat is true for float32 and float64.
func IsFloat(v Value) bool {
	_, ok := ToFloat(v)
	return ok
}

func numeric(v Value) (float64, bool) {
	if n, ok := ToInt(v); ok {
		return float64(n), true
	}
	return ToFloat(v)
}

// compareNumbers orders two numbers. Integers compare exactly, mixed integer
// and float operands compare as float64.
func compareNumbers(a, b Value) (cmp int, ok bool) {
	if i, ok := ToInt(a); ok {
		if j, ok := ToInt(b); ok {
			switch {
			case i < j:
				return -1, true
			case i > j:
				return 1, true
			}
			return 0, true
		}
	}
	x, ok := numeric(a)
	if !ok {
		return 0, false
	}
	y, ok := numeric(b)
	if !ok {
		return 0, false
	}
	switch {
	case x < y:
		return -1, true
	case x > y:
		return 1, true
	case x == y:
		return 0, true
	}
	return 0, false // NaN
}

// Equal compares two values. Numbers compare by numeric value, independent of
// their Go representation (int8(3) equals 3 and 3.0). Tuples and variants compare
// structurally, everything else with reflect.DeepEqual.
func Equal(a, b Value) bool {
	if _, ok := numeric(a); ok {
		cmp, ok := compareNumbers(a, b)
		return ok && cmp == 0
	}
	switch x := a.(type) {
	case Tuple:
		y, ok := b.(Tuple)
		if !ok || x.Arity() != y.Arity() {
			return false
		}
		for i := range x.Fields {
			if x.Fields[i].Label != y.Fields[i].Label || !Equal(x.At(i), y.At(i)) {
				return false
			}
		}
		return true
	case Variant:
		y, ok := b.(Variant)
		if !ok || x.TypeID() != y.TypeID() || x.Case() != y.Case() {
			return false
		}
		p, q := x.Payload(), y.Payload()
		if len(p) != len(q) {
			return false
		}
		for i := range p {
			if !Equal(p[i], q[i]) {
				return false
			}
		}
		return true
	}
	if av, present, isOpt := Unwrap(a); isOpt {
		bv, bpresent, bIsOpt := Unwrap(b)
		if !bIsOpt || present != bpresent {
			return false
		}
		return !present || Equal(av, bv)
	}
	return reflect.DeepEqual(a, b)
}

// Compare orders two numbers or two strings. ok is false if a and b are not
// comparable.
func Compare(a, b Value) (cmp int, ok bool) {
	if _, ok := numeric(a); ok {
		return compareNumbers(a, b)
	}
	if x, ok := a.(string); ok {
		if y, ok := b.(string); ok {
			switch {
			case x < y:
				return -1, true
			case x > y:
				return 1, true
			}
			return 0, true
		}
	}
	return 0, false
}
