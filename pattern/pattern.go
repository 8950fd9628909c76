package pattern

import (
	"fmt"
	"strings"

	"github.com/npillmayer/casematch"
	"github.com/npillmayer/casematch/value"
)

// Pattern is the sealed interface of all pattern variants.
type Pattern interface {
	fmt.Stringer
	isPattern()
}

// Wildcard matches anything and binds nothing.
type Wildcard struct{}

// Binding matches anything and binds the matched value to Name.
type Binding struct {
	Name    string
	Mutable bool // may the binding be re-assigned after capture?
}

// Elem is a positional element of a tuple pattern, with an optional label.
type Elem struct {
	Label   string
	Pattern Pattern
}

// Tuple matches tuple values of equal arity, element by element.
type Tuple struct {
	Elems []Elem
}

// Variant matches tagged variant values of a given case. An empty TypeID
// matches variants of any type. If Payload is nil, the variant's payload is
// not inspected; otherwise it is destructured positionally.
type Variant struct {
	TypeID  string
	Case    string
	Payload []Pattern
}

// Some matches present optionals and matches Inner against the unwrapped value.
type Some struct {
	Inner Pattern
}

// None matches absent optionals.
type None struct{}

// TypeTest matches values whose runtime type is-a TypeID.
type TypeTest struct {
	TypeID string
}

// TypeCast matches values which are narrowable to TypeID and binds the narrowed
// value to Name.
type TypeCast struct {
	TypeID string
	Name   string
}

// ValueExpr delegates matching to a predicate.
type ValueExpr struct {
	Pred casematch.Predicate[value.Value]
	Desc string
}

// Guard matches if Inner matches and Cond holds for the bindings produced.
type Guard struct {
	Inner Pattern
	Cond  casematch.Predicate[Bindings]
	Desc  string
}

// Or matches if any of its alternatives matches; the first one wins.
// All alternatives have to bind the same set of names, see Validate.
type Or struct {
	Alts []Pattern
}

func (Wildcard) isPattern()  {}
func (Binding) isPattern()   {}
func (Tuple) isPattern()     {}
func (Variant) isPattern()   {}
func (Some) isPattern()      {}
func (None) isPattern()      {}
func (TypeTest) isPattern()  {}
func (TypeCast) isPattern()  {}
func (ValueExpr) isPattern() {}
func (Guard) isPattern()     {}
func (Or) isPattern()        {}

// --- Constructors ----------------------------------------------------------

// Wild returns the wildcard pattern.
func Wild() Pattern {
	return Wildcard{}
}

// Bind returns an immutable binding pattern.
func Bind(name string) Pattern {
	assertThat(name != "", "binding name must not be empty")
	return Binding{Name: name}
}

// BindVar returns a mutable binding pattern.
func BindVar(name string) Pattern {
	assertThat(name != "", "binding name must not be empty")
	return Binding{Name: name, Mutable: true}
}

// Tup returns a tuple pattern with unlabeled elements.
func Tup(ps ...Pattern) Pattern {
	t := Tuple{Elems: make([]Elem, len(ps))}
	for i, p := range ps {
		t.Elems[i] = Elem{Pattern: p}
	}
	return t
}

// Labeled returns a tuple pattern from (possibly) labeled elements.
func Labeled(elems ...Elem) Pattern {
	return Tuple{Elems: append([]Elem(nil), elems...)}
}

// L creates a labeled tuple element.
func L(label string, p Pattern) Elem {
	return Elem{Label: label, Pattern: p}
}

// Case returns a variant pattern. Called without payload patterns, the
// payload of a matching variant is ignored.
func Case(typeID, tag string, payload ...Pattern) Pattern {
	v := Variant{TypeID: typeID, Case: tag}
	if len(payload) > 0 {
		v.Payload = append([]Pattern(nil), payload...)
	}
	return v
}

// SomeOf returns a pattern matching present optionals.
func SomeOf(inner Pattern) Pattern {
	return Some{Inner: inner}
}

// NoneOf returns a pattern matching absent optionals.
func NoneOf() Pattern {
	return None{}
}

// Is returns a type test pattern.
func Is(typeID string) Pattern {
	return TypeTest{TypeID: typeID}
}

// As returns a type cast pattern.
func As(typeID, name string) Pattern {
	return TypeCast{TypeID: typeID, Name: name}
}

// Expr returns a pattern delegating to pred.
func Expr(desc string, pred casematch.Predicate[value.Value]) Pattern {
	assertThat(pred != nil, "expression pattern needs a predicate")
	return ValueExpr{Pred: pred, Desc: desc}
}

// Equal returns a pattern matching values equal to x.
func Equal(x value.Value) Pattern {
	return ValueExpr{
		Pred: func(v value.Value) bool { return value.Equal(x, v) },
		Desc: value.Format(x),
	}
}

// InRange returns a pattern matching values within the closed range [lo…hi].
func InRange(lo, hi value.Value) Pattern {
	return ValueExpr{
		Pred: func(v value.Value) bool {
			c1, ok1 := value.Compare(lo, v)
			c2, ok2 := value.Compare(v, hi)
			return ok1 && ok2 && c1 <= 0 && c2 <= 0
		},
		Desc: fmt.Sprintf("%s...%s", value.Format(lo), value.Format(hi)),
	}
}

// InHalfOpen returns a pattern matching values within the half-open range [lo…hi).
func InHalfOpen(lo, hi value.Value) Pattern {
	return ValueExpr{
		Pred: func(v value.Value) bool {
			c1, ok1 := value.Compare(lo, v)
			c2, ok2 := value.Compare(v, hi)
			return ok1 && ok2 && c1 <= 0 && c2 < 0
		},
		Desc: fmt.Sprintf("%s..<%s", value.Format(lo), value.Format(hi)),
	}
}

// When guards p with a condition over the bindings p produces.
func When(p Pattern, desc string, cond casematch.Predicate[Bindings]) Pattern {
	assertThat(cond != nil, "guard needs a condition")
	return Guard{Inner: p, Cond: cond, Desc: desc}
}

// AnyOf returns an alternative of patterns. It does not check the
// alternatives for binding the same names; use Validate or MustAnyOf for that.
func AnyOf(alts ...Pattern) Pattern {
	return Or{Alts: append([]Pattern(nil), alts...)}
}

// MustAnyOf is like AnyOf, but panics if the alternatives bind different
// sets of names.
func MustAnyOf(alts ...Pattern) Pattern {
	p := AnyOf(alts...)
	if err := Validate(p); err != nil {
		panic(err)
	}
	return p
}

// --- Stringer ---------------------------------------------------------------

func (Wildcard) String() string { return "_" }

func (b Binding) String() string {
	if b.Mutable {
		return "var " + b.Name
	}
	return "let " + b.Name
}

func (t Tuple) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, e := range t.Elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		if e.Label != "" {
			sb.WriteString(e.Label)
			sb.WriteString(": ")
		}
		sb.WriteString(str(e.Pattern))
	}
	sb.WriteByte(')')
	return sb.String()
}

func (v Variant) String() string {
	s := v.TypeID + "." + v.Case
	if v.Payload == nil {
		return s
	}
	args := make([]string, len(v.Payload))
	for i, p := range v.Payload {
		args[i] = str(p)
	}
	return s + "(" + strings.Join(args, ", ") + ")"
}

func (s Some) String() string { return str(s.Inner) + "?" }
func (None) String() string   { return "nil" }

func (t TypeTest) String() string { return "is " + t.TypeID }
func (t TypeCast) String() string { return "let " + t.Name + " as " + t.TypeID }

func (e ValueExpr) String() string {
	if e.Desc == "" {
		return "~="
	}
	return e.Desc
}

func (g Guard) String() string {
	d := g.Desc
	if d == "" {
		d = "<cond>"
	}
	return str(g.Inner) + " where " + d
}

func (o Or) String() string {
	alts := make([]string, len(o.Alts))
	for i, p := range o.Alts {
		alts[i] = str(p)
	}
	return strings.Join(alts, " | ")
}

func str(p Pattern) string {
	if p == nil {
		return "<nil>"
	}
	return p.String()
}

// assertThat is a helper for asserting preconditions.
func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("pattern: "+msg, msgargs...)
		panic(msg)
	}
}
