package pattern

import (
	"errors"
	"fmt"

	"github.com/npillmayer/casematch/value"
)

// ErrNonExhaustive is the sentinel error for subjects no clause matches.
var ErrNonExhaustive = errors.New("non-exhaustive match")

// NonExhaustiveError is returned by Switch.Eval if no clause matches a subject
// and the switch has no default body.
type NonExhaustiveError struct {
	Subject value.Value
}

func (e *NonExhaustiveError) Error() string {
	return fmt.Sprintf("no clause matches %s: %s", value.Format(e.Subject), ErrNonExhaustive)
}

func (e *NonExhaustiveError) Unwrap() error {
	return ErrNonExhaustive
}

// Body is the code of a clause, executed with the bindings of the clause's pattern.
type Body func(Bindings) (value.Value, error)

// Clause is a pattern together with a body.
type Clause struct {
	Pattern Pattern
	Body    Body
}

// On creates a clause.
func On(p Pattern, body Body) Clause {
	return Clause{Pattern: p, Body: body}
}

// Switch is an ordered list of clauses. Evaluating a switch executes the body
// of the first clause matching the subject. Switches are immutable.
type Switch struct {
	clauses  []Clause
	fallback Body
	matcher  *Matcher
}

// SwitchOption configures a switch.
type SwitchOption func(*Switch)

// WithMatcher sets the matcher (and therefore the type registry) of a switch.
func WithMatcher(m *Matcher) SwitchOption {
	return func(s *Switch) {
		if m != nil {
			s.matcher = m
		}
	}
}

// NewSwitch creates a switch from a list of clauses. Every clause pattern is
// validated, see Validate.
func NewSwitch(clauses []Clause, opts ...SwitchOption) (*Switch, error) {
	s := &Switch{
		clauses: append([]Clause(nil), clauses...),
		matcher: defaultMatcher,
	}
	for _, opt := range opts {
		opt(s)
	}
	for i, c := range s.clauses {
		if c.Body == nil {
			return nil, fmt.Errorf("clause #%d has no body", i)
		}
		if err := Validate(c.Pattern); err != nil {
			return nil, fmt.Errorf("clause #%d: %w", i, err)
		}
	}
	return s, nil
}

// NewExhaustiveSwitch is like NewSwitch, but additionally requires the clause
// patterns to be exhaustive (see Exhaustive).
func NewExhaustiveSwitch(clauses []Clause, opts ...SwitchOption) (*Switch, error) {
	s, err := NewSwitch(clauses, opts...)
	if err != nil {
		return nil, err
	}
	if !s.Exhaustive() {
		return nil, fmt.Errorf("clauses do not cover every value: %w", ErrNonExhaustive)
	}
	return s, nil
}

// WithDefault returns a copy of s with a default body, executed for subjects
// no clause matches.
func (s *Switch) WithDefault(body Body) *Switch {
	c := *s
	c.fallback = body
	return &c
}

// Len returns the number of clauses.
func (s *Switch) Len() int {
	return len(s.clauses)
}

// Exhaustive is a predicate: is s guaranteed to execute a body for every subject?
func (s *Switch) Exhaustive() bool {
	if s.fallback != nil {
		return true
	}
	ps := make([]Pattern, len(s.clauses))
	for i, c := range s.clauses {
		ps[i] = c.Pattern
	}
	return Exhaustive(s.matcher.reg, ps...)
}

// Select returns the index of the first clause matching v, together with
// its bindings. If no clause matches, Select returns -1.
func (s *Switch) Select(v value.Value) (int, Bindings) {
	for i, c := range s.clauses {
		if b, ok := s.matcher.Match(c.Pattern, v).Ok(); ok {
			tracer().Debugf("switch: clause #%d selected for %v", i, value.Format(v))
			return i, b
		}
	}
	return -1, Bindings{}
}

// Eval executes the body of the first clause matching v. If no clause
// matches, the default body is executed. Without a default body, Eval
// returns a *NonExhaustiveError.
func (s *Switch) Eval(v value.Value) (value.Value, error) {
	i, b := s.Select(v)
	if i >= 0 {
		return s.clauses[i].Body(b)
	}
	if s.fallback != nil {
		return s.fallback(Bindings{})
	}
	tracer().Errorf("switch: no clause matches %v", value.Format(v))
	return nil, &NonExhaustiveError{Subject: v}
}

// MustEval is like Eval, but panics with a *NonExhaustiveError if no clause
// matches.
func (s *Switch) MustEval(v value.Value) value.Value {
	r, err := s.Eval(v)
	var nx *NonExhaustiveError
	if errors.As(err, &nx) {
		panic(nx)
	}
	if err != nil {
		panic(err)
	}
	return r
}
