package scenario

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/npillmayer/casematch/pattern"
	"github.com/npillmayer/casematch/persistent/btree"
	"github.com/npillmayer/casematch/subscript"
	"github.com/npillmayer/casematch/value"
)

// Outcome is the result of running a single case.
type Outcome struct {
	Kind   string `json:"kind"`
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// Report collects the outcomes of running a scenario.
type Report struct {
	Scenario string    `json:"scenario"`
	Outcomes []Outcome `json:"outcomes"`
}

// Failed returns the number of failed cases.
func (r *Report) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if !o.Passed {
			n++
		}
	}
	return n
}

// WriteText writes a report as text, one line per case.
func (r *Report) WriteText(w io.Writer) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "scenario %s\n", r.Scenario)
	for _, o := range r.Outcomes {
		status := "ok"
		if !o.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(&sb, "%-4s %s %s: %s\n", status, o.Kind, o.Name, o.Detail)
	}
	fmt.Fprintf(&sb, "%d cases, %d failed\n", len(r.Outcomes), r.Failed())
	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteJSON writes a report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func (r *Report) add(kind, name string, passed bool, format string, args ...interface{}) {
	detail := fmt.Sprintf(format, args...)
	if !passed {
		tracer().Errorf("%s %s failed: %s", kind, name, detail)
	}
	r.Outcomes = append(r.Outcomes, Outcome{Kind: kind, Name: name, Passed: passed, Detail: detail})
}

// Registry creates a type registry holding the types declared by s.
func (s *Scenario) Registry() (*value.Registry, error) {
	reg := value.NewRegistry()
	for _, t := range s.Types {
		if t.ID == "" {
			return nil, fmt.Errorf("%w: type declaration without id", ErrInvalidScenario)
		}
		for _, super := range t.Supers {
			if !reg.Declared(super) {
				return nil, fmt.Errorf("%w: super-type %q of %q not declared", ErrInvalidScenario, super, t.ID)
			}
		}
		reg.Declare(t.ID, t.Supers...)
		if len(t.Cases) > 0 {
			reg.DeclareCases(t.ID, t.Cases...)
		}
	}
	return reg, nil
}

// Run runs every case of s. Failing expectations are reported in the Report;
// an error is returned only for scenarios which cannot be run.
func Run(s *Scenario) (*Report, error) {
	reg, err := s.Registry()
	if err != nil {
		return nil, err
	}
	m := pattern.NewMatcher(reg)
	r := &Report{Scenario: s.Name}
	for _, c := range s.Matches {
		runMatch(m, c, r)
	}
	for _, c := range s.Filters {
		runFilter(m, c, r)
	}
	for _, c := range s.Switches {
		if err := runSwitch(m, c, r); err != nil {
			return nil, fmt.Errorf("switch %q: %w", c.Name, err)
		}
	}
	for _, c := range s.Subscripts {
		runSubscript(c, r)
	}
	tracer().Infof("scenario %s: %d cases, %d failed", s.Name, len(r.Outcomes), r.Failed())
	return r, nil
}

// --- Matches and filters ---------------------------------------------------

func runMatch(m *pattern.Matcher, c MatchCase, r *Report) {
	res := m.Match(c.Pattern.P, c.Value.V)
	passed := res.Matched() == c.Expect.Matched
	if passed && res.Matched() {
		b := res.Bindings()
		for name, exp := range c.Expect.Bindings {
			if x, ok := b.Get(name); !ok || !value.Equal(exp.V, x) {
				passed = false
			}
		}
	}
	detail := fmt.Sprintf("%s ~ %s: %s", c.Pattern.P, value.Format(c.Value.V), res)
	if !passed {
		detail += fmt.Sprintf(" (expected matched=%v%s)", c.Expect.Matched, formatBindings(c.Expect.Bindings))
	}
	r.add("match", c.Name, passed, "%s", detail)
}

func runFilter(m *pattern.Matcher, c FilterCase, r *Report) {
	vs := c.Values
	var got []value.Value
	m.Each(c.Pattern.P, vs, func(b pattern.Bindings) bool {
		if x, ok := b.Get(c.Bind); ok {
			got = append(got, x)
		}
		return true
	})
	exp := c.Expect
	passed := len(got) == len(exp)
	for i := 0; passed && i < len(got); i++ {
		passed = value.Equal(exp[i], got[i])
	}
	detail := fmt.Sprintf("for %s in %s: %s", c.Pattern.P, formatList(vs), formatList(got))
	if !passed {
		detail += " (expected " + formatList(exp) + ")"
	}
	r.add("filter", c.Name, passed, "%s", detail)
}

// --- Switches --------------------------------------------------------------

func runSwitch(m *pattern.Matcher, c SwitchCase, r *Report) error {
	clauses := make([]pattern.Clause, len(c.Clauses))
	for i, cl := range c.Clauses {
		clauses[i] = pattern.On(cl.Pattern.P, resultBody(cl.Result.V))
	}
	sw, err := pattern.NewSwitch(clauses, pattern.WithMatcher(m))
	if err != nil {
		return err
	}
	if c.Default != nil {
		sw = sw.WithDefault(resultBody(c.Default.V))
	}
	if c.Exhaustive != nil {
		ex := sw.Exhaustive()
		r.add("switch", c.Name, ex == *c.Exhaustive, "exhaustive=%v", ex)
	}
	for i, run := range c.Runs {
		name := fmt.Sprintf("%s#%d", c.Name, i)
		subject := value.Format(run.Value.V)
		res, err := sw.Eval(run.Value.V)
		if err != nil {
			passed := run.Error == ErrorNonExhaustive && errors.Is(err, pattern.ErrNonExhaustive)
			r.add("switch", name, passed, "%s -> error: %v", subject, err)
			continue
		}
		passed := run.Error == "" && (run.Expect == nil || value.Equal(run.Expect.V, res))
		detail := fmt.Sprintf("%s -> %s", subject, value.Format(res))
		if !passed {
			if run.Error != "" {
				detail += " (expected error " + run.Error + ")"
			} else {
				detail += " (expected " + value.Format(run.Expect.V) + ")"
			}
		}
		r.add("switch", name, passed, "%s", detail)
	}
	return nil
}

// resultBody creates a clause body returning x. Strings starting with '$'
// refer to bindings.
func resultBody(x value.Value) pattern.Body {
	if s, ok := x.(string); ok && strings.HasPrefix(s, "$") {
		name := s[1:]
		return func(b pattern.Bindings) (value.Value, error) {
			v, ok := b.Get(name)
			if !ok {
				return nil, fmt.Errorf("result refers to unbound name %q", name)
			}
			return v, nil
		}
	}
	return func(pattern.Bindings) (value.Value, error) {
		return x, nil
	}
}

// --- Subscripts ------------------------------------------------------------

func container(spec ContainerSpec) *subscript.Table {
	switch {
	case spec.Array != nil:
		return subscript.NewArray(spec.Array.Fill.V, spec.Array.Values...).Table()
	case spec.Matrix != nil:
		return subscript.NewMatrix(spec.Matrix.Rows, spec.Matrix.Columns, spec.Matrix.Fill.V).Table()
	}
	var opts []btree.Option
	if spec.Dict.Degree > 0 {
		opts = append(opts, btree.Degree(spec.Dict.Degree))
	}
	return subscript.NewDict(opts...).Table()
}

func runSubscript(c SubscriptCase, r *Report) {
	tab := container(c.Container)
	for i, st := range c.Steps {
		name := fmt.Sprintf("%s#%d", c.Name, i)
		args := st.Args
		call := st.Op + formatList(args)
		var res value.Value
		fault := guarded(func() error {
			if st.Op == "set" {
				call += " = " + value.Format(st.Value.V)
				return tab.Set(st.Value.V, args...)
			}
			var err error
			res, err = tab.Get(args...)
			return err
		})
		if fault != "" {
			passed := st.Fault == fault
			detail := call + " faults: " + fault
			if !passed && st.Fault == "" {
				detail += " (expected no fault)"
			} else if !passed {
				detail += " (expected " + st.Fault + ")"
			}
			r.add("subscript", name, passed, "%s", detail)
			continue
		}
		passed := st.Fault == "" && (st.Expect == nil || value.Equal(st.Expect.V, res))
		detail := call
		if st.Op == "get" {
			detail += " = " + value.Format(res)
		}
		if !passed {
			if st.Fault != "" {
				detail += " (expected " + st.Fault + ")"
			} else {
				detail += " (expected " + value.Format(st.Expect.V) + ")"
			}
		}
		r.add("subscript", name, passed, "%s", detail)
	}
}

// guarded runs f and classifies returned errors and panics as faults.
func guarded(f func() error) (fault string) {
	defer func() {
		if x := recover(); x != nil {
			if err, ok := x.(error); ok && errors.Is(err, subscript.ErrIndexOutOfRange) {
				fault = FaultOutOfRange
				return
			}
			tracer().Debugf("recovered from %v", x)
			fault = FaultBounds
		}
	}()
	err := f()
	switch {
	case err == nil:
		return ""
	case errors.Is(err, subscript.ErrNoApplicableOverload):
		return FaultNoOverload
	case errors.Is(err, subscript.ErrReadOnly):
		return FaultReadOnly
	}
	return "error: " + err.Error()
}

// --- Formatting ------------------------------------------------------------

func formatList(vs []value.Value) string {
	s := make([]string, len(vs))
	for i, v := range vs {
		s[i] = value.Format(v)
	}
	return "[" + strings.Join(s, ", ") + "]"
}

func formatBindings(bs map[string]ValueSpec) string {
	if len(bs) == 0 {
		return ""
	}
	names := make([]string, 0, len(bs))
	for n := range bs {
		names = append(names, n)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = n + ": " + value.Format(bs[n].V)
	}
	return ", {" + strings.Join(parts, ", ") + "}"
}
