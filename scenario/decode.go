package scenario

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/npillmayer/casematch"
	"github.com/npillmayer/casematch/pattern"
	"github.com/npillmayer/casematch/subscript"
	"github.com/npillmayer/casematch/value"
)

// ValueSpec is a value decoded from YAML.
type ValueSpec struct {
	V value.Value
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (vs *ValueSpec) UnmarshalYAML(node *yaml.Node) error {
	v, err := decodeValue(node)
	if err != nil {
		return err
	}
	vs.V = v
	return nil
}

// ValueList is a list of values decoded from YAML. A null element is kept as
// an absent (nil) value.
type ValueList []value.Value

// UnmarshalYAML implements yaml.Unmarshaler.
func (vl *ValueList) UnmarshalYAML(node *yaml.Node) error {
	vs, err := decodeValues(node)
	if err != nil {
		return err
	}
	*vl = vs
	return nil
}

// PatternSpec is a pattern decoded from YAML.
type PatternSpec struct {
	P pattern.Pattern
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (ps *PatternSpec) UnmarshalYAML(node *yaml.Node) error {
	p, err := decodePattern(node)
	if err != nil {
		return err
	}
	ps.P = p
	return nil
}

// Object is a value with a declared type id, e.g. an instance of a class.
type Object struct {
	Type string `yaml:"type"`
	Name string `yaml:"name"`
}

// TypeID implements value.Typed.
func (o Object) TypeID() string {
	return o.Type
}

func (o Object) String() string {
	return o.Type + "(" + o.Name + ")"
}

func nodeError(node *yaml.Node, format string, args ...interface{}) error {
	return fmt.Errorf("line %d: %s", node.Line, fmt.Sprintf(format, args...))
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

// singleKey splits a single-key mapping into key and value node.
func singleKey(node *yaml.Node) (string, *yaml.Node, error) {
	if len(node.Content) != 2 {
		return "", nil, nodeError(node, "structured item needs exactly one key, has %d", len(node.Content)/2)
	}
	return node.Content[0].Value, resolveAlias(node.Content[1]), nil
}

// --- Values ----------------------------------------------------------------

func decodeValue(node *yaml.Node) (value.Value, error) {
	node = resolveAlias(node)
	switch node.Kind {
	case yaml.ScalarNode:
		var x interface{}
		if err := node.Decode(&x); err != nil {
			return nil, err
		}
		return x, nil
	case yaml.SequenceNode:
		vs, err := decodeValues(node)
		if err != nil {
			return nil, err
		}
		return value.Tup(vs...), nil
	case yaml.MappingNode:
		return decodeStructuredValue(node)
	}
	return nil, nodeError(node, "cannot decode value")
}

func decodeValues(node *yaml.Node) ([]value.Value, error) {
	node = resolveAlias(node)
	if node.Kind != yaml.SequenceNode {
		return nil, nodeError(node, "expected a list of values")
	}
	vs := make([]value.Value, len(node.Content))
	for i, n := range node.Content {
		v, err := decodeValue(n)
		if err != nil {
			return nil, err
		}
		vs[i] = v
	}
	return vs, nil
}

func decodeStructuredValue(node *yaml.Node) (value.Value, error) {
	key, arg, err := singleKey(node)
	if err != nil {
		return nil, err
	}
	switch key {
	case "tuple":
		vs, err := decodeValues(arg)
		if err != nil {
			return nil, err
		}
		return value.Tup(vs...), nil
	case "list":
		return decodeValues(arg)
	case "labeled":
		if arg.Kind != yaml.MappingNode {
			return nil, nodeError(arg, "labeled tuple needs a mapping")
		}
		t := value.Tuple{}
		for i := 0; i < len(arg.Content); i += 2 {
			v, err := decodeValue(arg.Content[i+1])
			if err != nil {
				return nil, err
			}
			t.Fields = append(t.Fields, value.Field{Label: arg.Content[i].Value, Value: v})
		}
		return t, nil
	case "case":
		var c struct {
			Type    string      `yaml:"type"`
			Tag     string      `yaml:"tag"`
			Payload ValueList `yaml:"payload"`
		}
		if err := arg.Decode(&c); err != nil {
			return nil, err
		}
		return value.Case(c.Type, c.Tag, c.Payload...), nil
	case "some":
		v, err := decodeValue(arg)
		if err != nil {
			return nil, err
		}
		return value.Some(v), nil
	case "none":
		return value.None(), nil
	case "object":
		var o Object
		if err := arg.Decode(&o); err != nil {
			return nil, err
		}
		return o, nil
	case "arg":
		label, v, err := singleKey(arg)
		if err != nil {
			return nil, err
		}
		x, err := decodeValue(v)
		if err != nil {
			return nil, err
		}
		return subscript.Label(label, x), nil
	}
	return nil, nodeError(node, "unknown value kind %q", key)
}

// --- Patterns --------------------------------------------------------------

func decodePattern(node *yaml.Node) (pattern.Pattern, error) {
	node = resolveAlias(node)
	switch node.Kind {
	case yaml.ScalarNode:
		if node.ShortTag() == "!!str" {
			s := node.Value
			switch {
			case s == "_":
				return pattern.Wild(), nil
			case s == "nil":
				return pattern.NoneOf(), nil
			case strings.HasPrefix(s, "let "):
				return pattern.Bind(strings.TrimSpace(s[4:])), nil
			case strings.HasPrefix(s, "var "):
				return pattern.BindVar(strings.TrimSpace(s[4:])), nil
			}
		}
		x, err := decodeValue(node)
		if err != nil {
			return nil, err
		}
		return pattern.Equal(x), nil
	case yaml.SequenceNode:
		ps, err := decodePatterns(node)
		if err != nil {
			return nil, err
		}
		return pattern.Tup(ps...), nil
	case yaml.MappingNode:
		return decodeStructuredPattern(node)
	}
	return nil, nodeError(node, "cannot decode pattern")
}

func decodePatterns(node *yaml.Node) ([]pattern.Pattern, error) {
	node = resolveAlias(node)
	if node.Kind != yaml.SequenceNode {
		return nil, nodeError(node, "expected a list of patterns")
	}
	ps := make([]pattern.Pattern, len(node.Content))
	for i, n := range node.Content {
		p, err := decodePattern(n)
		if err != nil {
			return nil, err
		}
		ps[i] = p
	}
	return ps, nil
}

func decodeStructuredPattern(node *yaml.Node) (pattern.Pattern, error) {
	key, arg, err := singleKey(node)
	if err != nil {
		return nil, err
	}
	switch key {
	case "tuple":
		ps, err := decodePatterns(arg)
		if err != nil {
			return nil, err
		}
		return pattern.Tup(ps...), nil
	case "labeled":
		if arg.Kind != yaml.MappingNode {
			return nil, nodeError(arg, "labeled tuple pattern needs a mapping")
		}
		var elems []pattern.Elem
		for i := 0; i < len(arg.Content); i += 2 {
			p, err := decodePattern(arg.Content[i+1])
			if err != nil {
				return nil, err
			}
			elems = append(elems, pattern.L(arg.Content[i].Value, p))
		}
		return pattern.Labeled(elems...), nil
	case "case":
		var c struct {
			Type    string        `yaml:"type"`
			Tag     string        `yaml:"tag"`
			Payload yaml.Node `yaml:"payload"`
		}
		if err := arg.Decode(&c); err != nil {
			return nil, err
		}
		if c.Payload.Kind == 0 || c.Payload.ShortTag() == "!!null" { // payload ignored
			return pattern.Case(c.Type, c.Tag), nil
		}
		payload, err := decodePatterns(&c.Payload)
		if err != nil {
			return nil, err
		}
		return pattern.Case(c.Type, c.Tag, payload...), nil
	case "some":
		p, err := decodePattern(arg)
		if err != nil {
			return nil, err
		}
		return pattern.SomeOf(p), nil
	case "none":
		return pattern.NoneOf(), nil
	case "is":
		return pattern.Is(arg.Value), nil
	case "as":
		var c struct {
			Type string `yaml:"type"`
			Name string `yaml:"name"`
		}
		if err := arg.Decode(&c); err != nil {
			return nil, err
		}
		return pattern.As(c.Type, c.Name), nil
	case "equal":
		x, err := decodeValue(arg)
		if err != nil {
			return nil, err
		}
		return pattern.Equal(x), nil
	case "range", "halfopen":
		bounds, err := decodeValues(arg)
		if err != nil {
			return nil, err
		}
		if len(bounds) != 2 {
			return nil, nodeError(arg, "range needs 2 bounds")
		}
		if key == "range" {
			return pattern.InRange(bounds[0], bounds[1]), nil
		}
		return pattern.InHalfOpen(bounds[0], bounds[1]), nil
	case "prefix":
		prefix := arg.Value
		return pattern.Expr("hasPrefix("+prefix+")", func(v value.Value) bool {
			s, ok := v.(string)
			return ok && strings.HasPrefix(s, prefix)
		}), nil
	case "guard":
		var g struct {
			Pattern PatternSpec `yaml:"pattern"`
			Where   string      `yaml:"where"`
		}
		if err := arg.Decode(&g); err != nil {
			return nil, err
		}
		cond, err := parseCondition(g.Where)
		if err != nil {
			return nil, nodeError(arg, "%v", err)
		}
		return pattern.When(g.Pattern.P, g.Where, cond), nil
	case "or":
		ps, err := decodePatterns(arg)
		if err != nil {
			return nil, err
		}
		return pattern.AnyOf(ps...), nil
	}
	return nil, nodeError(node, "unknown pattern kind %q", key)
}

// --- Guard conditions ------------------------------------------------------

type operand func(pattern.Bindings) (value.Value, bool)

// parseCondition parses conditions of the form "<operand> <op> <operand>",
// where operands are binding names or literals and op is one of
// ==, !=, <, <=, >, >=.
func parseCondition(s string) (casematch.Predicate[pattern.Bindings], error) {
	f := strings.Fields(s)
	if len(f) != 3 {
		return nil, fmt.Errorf("cannot parse condition %q", s)
	}
	lhs, rhs := parseOperand(f[0]), parseOperand(f[2])
	test, err := comparison(f[1])
	if err != nil {
		return nil, err
	}
	return func(b pattern.Bindings) bool {
		x, ok1 := lhs(b)
		y, ok2 := rhs(b)
		return ok1 && ok2 && test(x, y)
	}, nil
}

func parseOperand(tok string) operand {
	var lit interface{}
	if err := yaml.Unmarshal([]byte(tok), &lit); err != nil {
		lit = tok
	}
	return func(b pattern.Bindings) (value.Value, bool) {
		if v, ok := b.Get(tok); ok {
			return v, true
		}
		return lit, true
	}
}

func comparison(op string) (func(x, y value.Value) bool, error) {
	ordered := func(accept func(int) bool) func(x, y value.Value) bool {
		return func(x, y value.Value) bool {
			c, ok := value.Compare(x, y)
			return ok && accept(c)
		}
	}
	switch op {
	case "==":
		return value.Equal, nil
	case "!=":
		return func(x, y value.Value) bool { return !value.Equal(x, y) }, nil
	case "<":
		return ordered(func(c int) bool { return c < 0 }), nil
	case "<=":
		return ordered(func(c int) bool { return c <= 0 }), nil
	case ">":
		return ordered(func(c int) bool { return c > 0 }), nil
	case ">=":
		return ordered(func(c int) bool { return c >= 0 }), nil
	}
	return nil, fmt.Errorf("unknown comparison operator %q", op)
}
