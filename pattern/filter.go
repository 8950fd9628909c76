package pattern

import (
	"github.com/npillmayer/casematch/value"
)

// Filter matches p against every element of vs and returns the bindings of
// the elements which match. Elements not matching are skipped.
func Filter(p Pattern, vs []value.Value) []Bindings {
	return defaultMatcher.Filter(p, vs)
}

// Filter matches p against every element of vs and returns the bindings of
// the elements which match.
func (m *Matcher) Filter(p Pattern, vs []value.Value) []Bindings {
	var r []Bindings
	m.Each(p, vs, func(b Bindings) bool {
		r = append(r, b)
		return true
	})
	return r
}

// Each calls f with the bindings for every element of vs matching p, in order.
// Iteration stops if f returns false.
func Each(p Pattern, vs []value.Value, f func(Bindings) bool) {
	defaultMatcher.Each(p, vs, f)
}

// Each calls f with the bindings for every element of vs matching p, in order.
func (m *Matcher) Each(p Pattern, vs []value.Value, f func(Bindings) bool) {
	for i, v := range vs {
		b, ok := m.Match(p, v).Ok()
		if !ok {
			tracer().Debugf("filter: skipping element #%d", i)
			continue
		}
		if !f(b) {
			return
		}
	}
}

// Collect returns the values bound to name for every element of vs matching p.
func Collect(p Pattern, name string, vs []value.Value) []value.Value {
	var r []value.Value
	Each(p, vs, func(b Bindings) bool {
		if x, ok := b.Get(name); ok {
			r = append(r, x)
		}
		return true
	})
	return r
}
