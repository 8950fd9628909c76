package value

import (
	"fmt"
	"math"
	"reflect"
)

// Built-in type ids.
const (
	Any       = "Any"
	Int       = "Int"
	Float     = "Float"
	String    = "String"
	Bool      = "Bool"
	TupleType = "Tuple"
	Optional  = "Optional"
)

// Converter converts a value to a target type without loss of information.
// It returns false if that is not possible.
type Converter func(Value) (Value, bool)

type conversion struct {
	from, to string
}

// Registry is a type registry supporting “is-a” queries. A registry is set up
// once and must not be modified after it has been shared, i.e. it is safe for
// concurrent readers.
//
// An empty registry is not usable; create one with NewRegistry.
type Registry struct {
	supers     map[string][]string
	cases      map[string][]string
	goTypes    map[reflect.Type]string
	converters map[conversion]Converter
}

// NewRegistry creates a registry with the built-in types declared, together
// with lossless conversions between Int and Float.
func NewRegistry() *Registry {
	r := &Registry{
		supers:     make(map[string][]string),
		cases:      make(map[string][]string),
		goTypes:    make(map[reflect.Type]string),
		converters: make(map[conversion]Converter),
	}
	r.Declare(Any)
	for _, id := range []string{Int, Float, String, Bool, TupleType, Optional} {
		r.Declare(id)
	}
	r.Convert(Float, Int, floatToInt)
	r.Convert(Int, Float, intToFloat)
	return r
}

var defaultRegistry = NewRegistry()

// Default returns a registry holding the built-in types only. Clients should
// not declare types in it; create a new registry instead.
func Default() *Registry {
	return defaultRegistry
}

// Declare declares a type id with an optional list of super-types. Every type
// is implicitly a sub-type of Any. Super-types have to be declared before they are
// referenced, which rules out cycles.
func (r *Registry) Declare(id string, supers ...string) *Registry {
	assertThat(id != "", "cannot declare a type with an empty id")
	for _, s := range supers {
		_, ok := r.supers[s]
		assertThat(ok, "super-type %q of %q has not been declared", s, id)
	}
	tracer().Debugf("declare type %s ⊂ %v", id, supers)
	r.supers[id] = append([]string(nil), supers...)
	return r
}

// DeclareCases declares the complete set of case names for a variant type id.
// This information is used for checking clause sets for exhaustiveness.
func (r *Registry) DeclareCases(id string, cases ...string) *Registry {
	if !r.Declared(id) {
		r.Declare(id)
	}
	r.cases[id] = append([]string(nil), cases...)
	return r
}

// Cases returns the declared case names of a variant type, if any.
func (r *Registry) Cases(id string) ([]string, bool) {
	cs, ok := r.cases[id]
	return cs, ok
}

// Declared is a predicate: has type id been declared?
func (r *Registry) Declared(id string) bool {
	_, ok := r.supers[id]
	return ok
}

// Bind associates the Go type of sample with a declared type id. Values of this
// Go type will report id as their runtime type, unless they implement Typed.
func (r *Registry) Bind(sample Value, id string) *Registry {
	assertThat(sample != nil, "cannot bind type id %q to nil", id)
	assertThat(r.Declared(id), "type %q has not been declared", id)
	r.goTypes[reflect.TypeOf(sample)] = id
	return r
}

// Convert registers a lossless conversion from type `from` to type `to`.
func (r *Registry) Convert(from, to string, conv Converter) *Registry {
	r.converters[conversion{from, to}] = conv
	return r
}

// TypeOf returns the type id of a value.
func (r *Registry) TypeOf(v Value) (string, bool) {
	if v == nil {
		return "", false
	}
	if t, ok := v.(Typed); ok {
		return t.TypeID(), true
	}
	if id, ok := r.goTypes[reflect.TypeOf(v)]; ok {
		return id, true
	}
	if _, _, isOpt := Unwrap(v); isOpt {
		return Optional, true
	}
	switch {
	case IsInt(v):
		return Int, true
	case IsFloat(v):
		return Float, true
	}
	switch v.(type) {
	case string:
		return String, true
	case bool:
		return Bool, true
	}
	return "", false
}

// Subtype is a predicate: is sub equal to super or a (transitive) sub-type of it?
func (r *Registry) Subtype(sub, super string) bool {
	if sub == super || super == Any {
		return true
	}
	for _, s := range r.supers[sub] {
		if r.Subtype(s, super) {
			return true
		}
	}
	return false
}

// IsA is a predicate: is the runtime type of v id or a sub-type of id?
// Every non-nil value is-a Any.
func (r *Registry) IsA(v Value, id string) bool {
	if v == nil {
		return false
	}
	if id == Any {
		return true
	}
	t, ok := r.TypeOf(v)
	if !ok {
		return false
	}
	return r.Subtype(t, id)
}

// Narrow returns v viewed as a value of type id. If v is-a id, v is returned
// unchanged. Otherwise a registered conversion is tried, which has to succeed
// without loss of information. Narrow never panics; failure is reported by
// returning false.
func (r *Registry) Narrow(v Value, id string) (Value, bool) {
	if r.IsA(v, id) {
		return v, true
	}
	t, ok := r.TypeOf(v)
	if !ok {
		return nil, false
	}
	if conv, ok := r.converters[conversion{t, id}]; ok {
		if n, ok := conv(v); ok {
			tracer().Debugf("narrowed %v from %s to %s", v, t, id)
			return n, true
		}
	}
	return nil, false
}

func floatToInt(v Value) (Value, bool) {
	f, ok := ToFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return nil, false
	}
	return int(f), true
}

func intToFloat(v Value) (Value, bool) {
	n, ok := ToInt(v)
	if !ok {
		return nil, false
	}
	f := float64(n)
	if int(f) != n {
		return nil, false
	}
	return f, true
}

// --- Helpers ---------------------------------------------------------------

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("value: "+msg, msgargs...)
		panic(msg)
	}
}
