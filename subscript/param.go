package subscript

import (
	"github.com/npillmayer/casematch"
	"github.com/npillmayer/casematch/value"
)

// Arg is a labeled argument. Labeled arguments are accepted only by parameters
// with an equal label, and unlabeled arguments only by unlabeled parameters.
type Arg struct {
	Label string
	Value value.Value
}

// Label creates a labeled argument.
func Label(label string, v value.Value) Arg {
	return Arg{Label: label, Value: v}
}

func split(arg value.Value) (string, value.Value) {
	if a, ok := arg.(Arg); ok {
		return a.Label, a.Value
	}
	return "", arg
}

// Param is a parameter type descriptor.
type Param struct {
	Type    string // type id, for signatures and diagnostics
	Label   string
	accepts casematch.Predicate[value.Value]
}

// Predefined parameter descriptors.
var (
	IntParam    = Param{Type: value.Int, accepts: value.IsInt}
	FloatParam  = Param{Type: value.Float, accepts: value.IsFloat}
	StringParam = Param{Type: value.String, accepts: isString}
	BoolParam   = Param{Type: value.Bool, accepts: isBool}
	AnyParam    = Param{Type: value.Any, accepts: casematch.Always[value.Value]()}
)

func isString(v value.Value) bool {
	_, ok := v.(string)
	return ok
}

func isBool(v value.Value) bool {
	_, ok := v.(bool)
	return ok
}

// TypeParam returns a parameter accepting values which are-a id, according to reg.
func TypeParam(reg *value.Registry, id string) Param {
	assertThat(reg != nil, "type parameter needs a registry")
	return Param{Type: id, accepts: func(v value.Value) bool { return reg.IsA(v, id) }}
}

// Named returns a copy of p with a label.
func (p Param) Named(label string) Param {
	p.Label = label
	return p
}

// Accepts is a predicate: is arg assignment-compatible to p?
func (p Param) Accepts(arg value.Value) bool {
	label, v := split(arg)
	if label != p.Label {
		return false
	}
	return p.acceptsValue(v)
}

func (p Param) acceptsValue(v value.Value) bool {
	return p.accepts != nil && p.accepts(v)
}

func (p Param) String() string {
	if p.Label != "" {
		return p.Label + ": " + p.Type
	}
	return p.Type
}

func (a Arg) String() string {
	return a.Label + ": " + value.Format(a.Value)
}
