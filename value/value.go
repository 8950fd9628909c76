package value

import (
	"fmt"
	"strings"

	"github.com/npillmayer/casematch/maybe"
)

// Value is any runtime value to be matched or used as an index.
type Value = any

// Typed is implemented by values which know their type id. The registry consults
// it before looking at the Go type of a value.
type Typed interface {
	TypeID() string
}

// --- Tuples ----------------------------------------------------------------

// Field is a single component of a tuple. Label may be empty.
type Field struct {
	Label string
	Value Value
}

// Tuple is an ordered sequence of fields.
type Tuple struct {
	Fields []Field
}

// Tup creates an unlabeled tuple.
func Tup(vs ...Value) Tuple {
	t := Tuple{Fields: make([]Field, len(vs))}
	for i, v := range vs {
		t.Fields[i].Value = v
	}
	return t
}

// Arity returns the number of fields of t.
func (t Tuple) Arity() int {
	return len(t.Fields)
}

// At returns the value of the i-th field.
func (t Tuple) At(i int) Value {
	return t.Fields[i].Value
}

// Lookup finds a field by label.
func (t Tuple) Lookup(label string) (Value, bool) {
	for _, f := range t.Fields {
		if f.Label == label {
			return f.Value, true
		}
	}
	return nil, false
}

func (t Tuple) TypeID() string {
	return TupleType
}

func (t Tuple) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, f := range t.Fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		if f.Label != "" {
			sb.WriteString(f.Label)
			sb.WriteString(": ")
		}
		sb.WriteString(Format(f.Value))
	}
	sb.WriteByte(')')
	return sb.String()
}

// --- Variants --------------------------------------------------------------

// Variant is a value tagged with one of a fixed set of case names, optionally
// carrying a positional payload.
type Variant interface {
	Typed
	Case() string
	Payload() []Value
}

// Tagged is a generic implementation of Variant.
type Tagged struct {
	Type   string
	Tag    string
	Values []Value
}

// Case creates a tagged variant value of type typeID with case tag.
func Case(typeID, tag string, payload ...Value) Tagged {
	return Tagged{Type: typeID, Tag: tag, Values: payload}
}

func (v Tagged) TypeID() string   { return v.Type }
func (v Tagged) Case() string     { return v.Tag }
func (v Tagged) Payload() []Value { return v.Values }

func (v Tagged) String() string {
	if len(v.Values) == 0 {
		return v.Type + "." + v.Tag
	}
	return v.Type + "." + v.Tag + Tup(v.Values...).String()
}

var _ Variant = Tagged{}

// --- Optionals -------------------------------------------------------------

// Unwrap inspects v for being an optional. It returns (inner, true, true) for a
// present optional and (nil, false, true) for an absent one, where nil counts as
// absent. For all other values isOpt is false.
func Unwrap(v Value) (inner Value, present bool, isOpt bool) {
	if v == nil {
		return nil, false, true
	}
	if o, ok := v.(maybe.Optional); ok {
		if !o.IsJust() {
			return nil, false, true
		}
		return o.Unwrap(), true, true
	}
	return v, true, false
}

// Some wraps v into a present optional.
func Some(v Value) maybe.Maybe[Value] {
	return maybe.Just(v)
}

// None returns an absent optional.
func None() maybe.Maybe[Value] {
	return maybe.Nothing[Value]()
}

// --- Formatting ------------------------------------------------------------

// Format returns a short textual representation of v.
func Format(v Value) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case string:
		return fmt.Sprintf("%q", x)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprintf("%v", v)
}

// Tupler is implemented by types which may be viewed as tuples.
type Tupler interface {
	Tuple() Tuple
}

// AsTuple views v as a tuple, if possible.
func AsTuple(v Value) (Tuple, bool) {
	switch t := v.(type) {
	case Tuple:
		return t, true
	case Tupler:
		return t.Tuple(), true
	}
	return Tuple{}, false
}
