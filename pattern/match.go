package pattern

import (
	"github.com/npillmayer/casematch/value"
)

// MatchResult is the outcome of matching a pattern against a value: either
// Matched with a set of bindings, or NotMatched.
type MatchResult struct {
	bindings Bindings
	ok       bool
}

var notMatched = MatchResult{}

// Ok returns the bindings and true, if the match succeeded.
func (r MatchResult) Ok() (Bindings, bool) {
	return r.bindings, r.ok
}

// Matched is a predicate: did the match succeed?
func (r MatchResult) Matched() bool {
	return r.ok
}

// Bindings returns the bindings of a successful match; empty otherwise.
func (r MatchResult) Bindings() Bindings {
	return r.bindings
}

func (r MatchResult) String() string {
	if !r.ok {
		return "NotMatched"
	}
	return "Matched" + r.bindings.String()
}

// Match returns a matcher for use in switch statements:
//
//	switch m := r.Match(); m {
//	case m.Matched(&b):
//	    ...
//	case m.NotMatched():
//	    ...
//	}
func (r MatchResult) Match() ResultMatcher {
	return &resultMatcher{r: r}
}

// ResultMatcher is a type for matching match results in switch statements.
type ResultMatcher interface {
	Matched(*Bindings) ResultMatcher
	NotMatched() ResultMatcher
}

// resultMatcher is handed out as a pointer, as Bindings are not comparable.
type resultMatcher struct {
	r MatchResult
}

func (rm *resultMatcher) Matched(b *Bindings) ResultMatcher {
	if !rm.r.ok {
		return nil
	}
	if b != nil {
		*b = rm.r.bindings
	}
	return rm
}

func (rm *resultMatcher) NotMatched() ResultMatcher {
	if rm.r.ok {
		return nil
	}
	return rm
}

// --- Matcher ---------------------------------------------------------------

// Matcher matches patterns against values. It consults a type registry for
// type tests and casts. A Matcher holds no mutable state and may be shared.
type Matcher struct {
	reg *value.Registry
}

// NewMatcher creates a matcher using registry reg. If reg is nil, the default
// registry is used.
func NewMatcher(reg *value.Registry) *Matcher {
	if reg == nil {
		reg = value.Default()
	}
	return &Matcher{reg: reg}
}

var defaultMatcher = NewMatcher(nil)

// Registry returns the type registry of m.
func (m *Matcher) Registry() *value.Registry {
	return m.reg
}

// Match matches p against v using the default registry.
func Match(p Pattern, v value.Value) MatchResult {
	return defaultMatcher.Match(p, v)
}

// Match matches p against v.
func (m *Matcher) Match(p Pattern, v value.Value) MatchResult {
	b := newBindings()
	if !m.match(p, v, b) {
		tracer().Debugf("%v does not match %s", value.Format(v), str(p))
		return notMatched
	}
	tracer().Debugf("%v matches %s with %s", value.Format(v), str(p), b)
	return MatchResult{bindings: b, ok: true}
}

// match recurses over the structure of p, collecting bindings into b. On
// failure, b may hold partial bindings and has to be discarded by the caller.
func (m *Matcher) match(p Pattern, v value.Value, b Bindings) bool {
	switch p := p.(type) {
	case Wildcard:
		return true
	case Binding:
		return b.bind(p.Name, v, p.Mutable)
	case Tuple:
		return m.matchTuple(p, v, b)
	case Variant:
		return m.matchVariant(p, v, b)
	case Some:
		inner, present, _ := value.Unwrap(v)
		if !present {
			return false
		}
		return m.match(p.Inner, inner, b)
	case None:
		_, present, _ := value.Unwrap(v)
		return !present
	case TypeTest:
		return m.reg.IsA(v, p.TypeID)
	case TypeCast:
		n, ok := m.reg.Narrow(v, p.TypeID)
		if !ok {
			return false
		}
		return b.bind(p.Name, n, false)
	case ValueExpr:
		return p.Pred(v)
	case Guard:
		if !m.match(p.Inner, v, b) {
			return false
		}
		return p.Cond(b)
	case Or:
		for _, alt := range p.Alts {
			trial := b.clone()
			if m.match(alt, v, trial) {
				for n, e := range trial.entries {
					b.entries[n] = e
				}
				return true
			}
		}
		return false
	}
	assertThat(p != nil, "cannot match nil pattern")
	panic("pattern: unknown pattern type " + p.String())
}

func (m *Matcher) matchTuple(p Tuple, v value.Value, b Bindings) bool {
	if len(p.Elems) == 1 { // parenthesization is transparent
		return m.match(p.Elems[0].Pattern, v, b)
	}
	t, ok := value.AsTuple(v)
	if !ok || t.Arity() != len(p.Elems) {
		return false
	}
	for i, e := range p.Elems {
		f := t.Fields[i]
		if e.Label != "" && f.Label != "" && e.Label != f.Label {
			return false
		}
		if !m.match(e.Pattern, f.Value, b) {
			return false
		}
	}
	return true
}

func (m *Matcher) matchVariant(p Variant, v value.Value, b Bindings) bool {
	vv, ok := v.(value.Variant)
	if !ok || vv.Case() != p.Case {
		return false
	}
	if p.TypeID != "" && !m.reg.Subtype(vv.TypeID(), p.TypeID) {
		return false
	}
	if p.Payload == nil {
		return true
	}
	payload := vv.Payload()
	if len(payload) == 1 && len(p.Payload) > 1 { // single tuple payload
		if t, ok := value.AsTuple(payload[0]); ok {
			payload = make([]value.Value, t.Arity())
			for i := range payload {
				payload[i] = t.At(i)
			}
		}
	}
	if len(payload) != len(p.Payload) {
		return false
	}
	for i, sub := range p.Payload {
		if !m.match(sub, payload[i], b) {
			return false
		}
	}
	return true
}
