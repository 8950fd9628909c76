package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is a named collection of cases, decoded from YAML.
type Scenario struct {
	// Name identifies the scenario in reports.
	Name string `yaml:"name"`

	// Description explains what this scenario demonstrates.
	Description string `yaml:"description,omitempty"`

	// Types are declared to the type registry, in order.
	Types []TypeDecl `yaml:"types,omitempty"`

	Matches    []MatchCase     `yaml:"matches,omitempty"`
	Filters    []FilterCase    `yaml:"filters,omitempty"`
	Switches   []SwitchCase    `yaml:"switches,omitempty"`
	Subscripts []SubscriptCase `yaml:"subscripts,omitempty"`
}

// TypeDecl declares a type id, its super-types and, for variant types, its cases.
type TypeDecl struct {
	ID     string   `yaml:"id"`
	Supers []string `yaml:"supers,omitempty"`
	Cases  []string `yaml:"cases,omitempty"`
}

// MatchCase matches a single pattern against a single value.
type MatchCase struct {
	Name    string      `yaml:"name"`
	Pattern PatternSpec `yaml:"pattern"`
	Value   ValueSpec   `yaml:"value"`
	Expect  MatchExpect `yaml:"expect"`
}

// MatchExpect is the expected outcome of a match case. Bindings is a subset
// match: only the names listed are checked.
type MatchExpect struct {
	Matched  bool                 `yaml:"matched"`
	Bindings map[string]ValueSpec `yaml:"bindings,omitempty"`
}

// FilterCase matches a pattern against a list of values in filtering mode and
// collects the values bound to Bind.
type FilterCase struct {
	Name    string      `yaml:"name"`
	Pattern PatternSpec `yaml:"pattern"`
	Bind    string      `yaml:"bind"`
	Values  ValueList   `yaml:"values"`
	Expect  ValueList   `yaml:"expect"`
}

// SwitchCase is a list of clauses, evaluated for a number of subjects.
type SwitchCase struct {
	Name    string       `yaml:"name"`
	Clauses []ClauseSpec `yaml:"clauses"`
	// Default is the result for subjects no clause matches.
	Default *ValueSpec `yaml:"default,omitempty"`
	// Exhaustive, if present, is checked against the switch's exhaustiveness.
	Exhaustive *bool       `yaml:"exhaustive,omitempty"`
	Runs       []SwitchRun `yaml:"runs"`
}

// ClauseSpec is a clause of a switch. A Result which is a string starting with
// '$' refers to a binding of the clause's pattern.
type ClauseSpec struct {
	Pattern PatternSpec `yaml:"pattern"`
	Result  ValueSpec   `yaml:"result"`
}

// SwitchRun evaluates a switch for a subject. Error is either empty or
// "non-exhaustive".
type SwitchRun struct {
	Value  ValueSpec  `yaml:"value"`
	Expect *ValueSpec `yaml:"expect,omitempty"`
	Error  string     `yaml:"error,omitempty"`
}

// SubscriptCase runs a list of subscript steps against a container.
type SubscriptCase struct {
	Name      string        `yaml:"name"`
	Container ContainerSpec `yaml:"container"`
	Steps     []Step        `yaml:"steps"`
}

// ContainerSpec selects and configures a container. Exactly one of the fields
// has to be set.
type ContainerSpec struct {
	Array  *ArraySpec  `yaml:"array,omitempty"`
	Matrix *MatrixSpec `yaml:"matrix,omitempty"`
	Dict   *DictSpec   `yaml:"dict,omitempty"`
}

// ArraySpec configures an array container.
type ArraySpec struct {
	Fill   ValueSpec `yaml:"fill"`
	Values ValueList `yaml:"values,omitempty"`
}

// MatrixSpec configures a matrix container.
type MatrixSpec struct {
	Rows    int       `yaml:"rows"`
	Columns int       `yaml:"columns"`
	Fill    ValueSpec `yaml:"fill"`
}

// DictSpec configures a dictionary container.
type DictSpec struct {
	Degree int `yaml:"degree,omitempty"`
}

// Step is a single subscript access. Op is "get" or "set". Fault is one of
// "out-of-range", "bounds", "no-overload" or "read-only".
type Step struct {
	Op     string      `yaml:"op"`
	Args   ValueList   `yaml:"args"`
	Value  *ValueSpec  `yaml:"value,omitempty"`
	Expect *ValueSpec  `yaml:"expect,omitempty"`
	Fault  string      `yaml:"fault,omitempty"`
}

// Fault names.
const (
	FaultOutOfRange    = "out-of-range"
	FaultBounds        = "bounds"
	FaultNoOverload    = "no-overload"
	FaultReadOnly      = "read-only"
	ErrorNonExhaustive = "non-exhaustive"
)

// ErrInvalidScenario is wrapped by errors for malformed scenarios.
var ErrInvalidScenario = errors.New("invalid scenario")

// Load reads a scenario from a YAML file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	tracer().Infof("loaded scenario %q from %s", s.Name, path)
	return s, nil
}

// Parse decodes a scenario from YAML. Unknown fields are rejected.
func Parse(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	s := &Scenario{}
	if err := dec.Decode(s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: scenario has no name", ErrInvalidScenario)
	}
	for _, sc := range s.Subscripts {
		n := 0
		if sc.Container.Array != nil {
			n++
		}
		if sc.Container.Matrix != nil {
			n++
		}
		if sc.Container.Dict != nil {
			n++
		}
		if n != 1 {
			return fmt.Errorf("%w: subscript case %q needs exactly one container", ErrInvalidScenario, sc.Name)
		}
		for i, st := range sc.Steps {
			switch {
			case st.Op == "get":
			case st.Op == "set" && st.Value != nil:
			default:
				return fmt.Errorf("%w: subscript case %q, step %d: need op get, or op set with a value",
					ErrInvalidScenario, sc.Name, i)
			}
		}
	}
	for _, sw := range s.Switches {
		for _, r := range sw.Runs {
			if r.Error != "" && r.Error != ErrorNonExhaustive {
				return fmt.Errorf("%w: switch %q: unknown error %q", ErrInvalidScenario, sw.Name, r.Error)
			}
		}
	}
	return nil
}
