package scenario

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/npillmayer/casematch/pattern"
	"github.com/npillmayer/casematch/subscript"
	"github.com/npillmayer/casematch/value"
)

func TestTourGolden(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "casematch.scenario")
	defer teardown()
	//
	s, err := Load(filepath.Join("testdata", "scenarios", "tour.yaml"))
	require.NoError(t, err)
	report, err := Run(s)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Failed())
	var out bytes.Buffer
	require.NoError(t, report.WriteText(&out))
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, s.Name, out.Bytes())
}

func TestDecodeValues(t *testing.T) {
	s, err := Parse([]byte(`
name: values
matches:
  - name: labeled
    pattern: { labeled: { x: "let a", y: _ } }
    value: { labeled: { x: 1, y: 2 } }
    expect: { matched: true, bindings: { a: 1 } }
  - name: nested optional
    pattern: { some: { some: "let v" } }
    value: { some: { some: hello } }
    expect: { matched: true, bindings: { v: hello } }
  - name: list
    pattern: "let l"
    value: { list: [1, 2] }
    expect: { matched: true }
`))
	require.NoError(t, err)
	require.Len(t, s.Matches, 3)
	point, ok := s.Matches[0].Value.V.(value.Tuple)
	require.True(t, ok)
	assert.Equal(t, "(x: 1, y: 2)", point.String())
	assert.Equal(t, "(x: let a, y: _)", s.Matches[0].Pattern.P.String())
	assert.Equal(t, []value.Value{1, 2}, s.Matches[2].Value.V)
	report, err := Run(s)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Failed(), "%v", report.Outcomes)
}

func TestDecodePatterns(t *testing.T) {
	s, err := Parse([]byte(`
name: patterns
matches:
  - name: prefix
    pattern: { prefix: he }
    value: hello
    expect: { matched: true }
  - name: literal string
    pattern: hello
    value: hello
    expect: { matched: true }
  - name: nil
    pattern: nil
    value: null
    expect: { matched: true }
  - name: var
    pattern: "var counter"
    value: 1
    expect: { matched: true, bindings: { counter: 1 } }
  - name: guard with literal
    pattern: { guard: { pattern: "let x", where: "x >= 10" } }
    value: 12
    expect: { matched: true }
`))
	require.NoError(t, err)
	_, isExpr := s.Matches[0].Pattern.P.(pattern.ValueExpr)
	assert.True(t, isExpr)
	_, isNone := s.Matches[2].Pattern.P.(pattern.None)
	assert.True(t, isNone)
	b, ok := s.Matches[3].Pattern.P.(pattern.Binding)
	require.True(t, ok)
	assert.True(t, b.Mutable)
	report, err := Run(s)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Failed(), "%v", report.Outcomes)
}

func TestParseErrors(t *testing.T) {
	for name, src := range map[string]string{
		"no name":         `matches: []`,
		"unknown field":   "name: x\nmatchez: []",
		"unknown pattern": "name: x\nmatches: [{ name: m, pattern: { regex: a }, value: 1, expect: { matched: true } }]",
		"unknown value":   "name: x\nmatches: [{ name: m, pattern: _, value: { blob: 1 }, expect: { matched: true } }]",
		"bad condition":   "name: x\nmatches: [{ name: m, pattern: { guard: { pattern: _, where: x } }, value: 1, expect: { matched: true } }]",
		"two containers":  "name: x\nsubscripts: [{ name: s, container: { dict: {}, array: { fill: 0 } }, steps: [] }]",
		"set w/o value":   "name: x\nsubscripts: [{ name: s, container: { dict: {} }, steps: [{ op: set, args: [a] }] }]",
		"unknown error":   "name: x\nswitches: [{ name: s, clauses: [], runs: [{ value: 1, error: boom }] }]",
	} {
		_, err := Parse([]byte(src))
		assert.Error(t, err, name)
	}
	_, err := Load(filepath.Join("testdata", "scenarios", "missing.yaml"))
	assert.Error(t, err)
}

func TestUndeclaredSuperType(t *testing.T) {
	s, err := Parse([]byte("name: x\ntypes: [{ id: Dog, supers: [Animal] }]"))
	require.NoError(t, err)
	_, err = Run(s)
	assert.ErrorIs(t, err, ErrInvalidScenario)
}

func TestInvalidOrSwitch(t *testing.T) {
	s, err := Parse([]byte(`
name: or
switches:
  - name: mixed
    clauses:
      - pattern: { or: ["let x", ["let y", _]] }
        result: $x
    runs: []
`))
	require.NoError(t, err)
	_, err = Run(s)
	assert.ErrorIs(t, err, pattern.ErrOrBindings)
}

func TestFailuresAreReported(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "casematch.scenario")
	defer teardown()
	//
	s, err := Parse([]byte(`
name: failing
matches:
  - name: wrong binding
    pattern: "let x"
    value: 1
    expect: { matched: true, bindings: { x: 2 } }
switches:
  - name: binding result
    clauses:
      - pattern: ["let x", _]
        result: $x
    runs:
      - value: [4, 5]
        expect: 4
      - value: 4
        expect: 4
subscripts:
  - name: dict
    container: { dict: { degree: 2 } }
    steps:
      - { op: set, args: [k], value: 1 }
      - { op: get, args: [k], expect: { some: 1 } }
      - { op: get, args: [z], expect: { none: true } }
      - { op: get, args: [z, { arg: { default: 0 } }], expect: 0 }
      - { op: get, args: [k], fault: out-of-range }
  - name: read-only
    container: { array: { fill: 0, values: [1, 2, 3] } }
    steps:
      - { op: set, args: [0, 2], value: [9] }
      - { op: set, args: [0, 2], value: [9], fault: read-only }
      - { op: get, args: [7], fault: out-of-range }
      - { op: get, args: [{ arg: { safe: 7 } }], expect: { none: true } }
`))
	require.NoError(t, err)
	report, err := Run(s)
	require.NoError(t, err)
	var failed []string
	for _, o := range report.Outcomes {
		if !o.Passed {
			failed = append(failed, o.Kind+" "+o.Name)
		}
	}
	assert.Equal(t, []string{
		"match wrong binding",
		"switch binding result#1",
		"subscript dict#4",
		"subscript read-only#0",
	}, failed)
	var out bytes.Buffer
	require.NoError(t, report.WriteText(&out))
	t.Log("\n" + out.String())
	assert.Contains(t, out.String(), "12 cases, 4 failed")
}

func TestReportJSON(t *testing.T) {
	report := &Report{Scenario: "json"}
	report.add("match", "m", true, "detail %d", 1)
	var out bytes.Buffer
	require.NoError(t, report.WriteJSON(&out))
	var decoded Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, *report, decoded)
}

func TestExplain(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "scenarios", "tour.yaml"))
	require.NoError(t, err)
	var out bytes.Buffer
	require.NoError(t, Explain(s, &out))
	t.Log("\n" + out.String())
	assert.Contains(t, out.String(), "match upc\nbinds a, d\n")
	assert.Contains(t, out.String(), "switch compass, clause 1\n")
}

func TestArgLabels(t *testing.T) {
	s, err := Parse([]byte(`
name: args
subscripts:
  - name: arr
    container: { array: { fill: x, values: [a, b] } }
    steps:
      - { op: get, args: [0, { arg: { default: z } }], expect: a }
`))
	require.NoError(t, err)
	arg := s.Subscripts[0].Steps[0].Args[1]
	assert.Equal(t, subscript.Label("default", "z"), arg)
}

func TestNullListElements(t *testing.T) {
	s, err := Parse([]byte(`
name: nulls
types:
  - { id: Pair, cases: [pair] }
matches:
  - name: payload arity
    pattern: { case: { type: Pair, tag: pair, payload: [nil, "let b"] } }
    value: { case: { type: Pair, tag: pair, payload: [null, 2] } }
    expect: { matched: true, bindings: { b: 2 } }
  - name: payload pattern arity
    pattern: { case: { type: Pair, tag: pair, payload: [null, "let b"] } }
    value: { case: { type: Pair, tag: pair, payload: [null, 2] } }
    expect: { matched: true, bindings: { b: 2 } }
filters:
  - name: optionals
    pattern: { some: "let x" }
    bind: x
    values: [{ none: true }, { some: 2 }, null, { some: 5 }]
    expect: [2, 5]
subscripts:
  - name: holes
    container: { array: { fill: 0, values: [1, null, 3] } }
    steps:
      - { op: get, args: [2], expect: 3 }
`))
	require.NoError(t, err)
	values := s.Filters[0].Values
	require.Len(t, values, 4)
	assert.Nil(t, values[2])
	assert.Equal(t, "Pair.pair(nil, let b)", s.Matches[0].Pattern.P.String())
	assert.Equal(t, "Pair.pair(nil, let b)", s.Matches[1].Pattern.P.String())
	c, ok := s.Matches[0].Value.V.(value.Tagged)
	require.True(t, ok)
	assert.Equal(t, []value.Value{nil, 2}, c.Payload())
	assert.Equal(t, ValueList{1, nil, 3}, s.Subscripts[0].Container.Array.Values)
	report, err := Run(s)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Failed(), "%v", report.Outcomes)
}
