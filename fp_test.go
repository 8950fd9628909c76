package casematch_test

import (
	"fmt"
	"testing"

	"github.com/npillmayer/casematch"
)

func TestComposition(t *testing.T) {
	g := func(n int) float32 {
		return float32(n) + 0.5
	}
	f := func(x float32) string {
		return fmt.Sprintf("%.3f", x)
	}
	h := casematch.Compose(g, f)
	h7 := h(7)
	if h7 != "7.500" {
		t.Logf("composition h(7) = %q", h(7))
		t.Error("expected h(7) to return string 7.500")
	}
}

func TestConst(t *testing.T) {
	seven := casematch.Const(7)
	if seven() != 7 {
		t.Logf("const = %v", seven())
		t.Error("expected const to be integer 7")
	}
}

func TestUnit(t *testing.T) {
	nothing := casematch.Unit(7)
	if nothing != 0 {
		t.Logf("Unit(7) = %v", nothing)
		t.Error("expected Unit(7) to be nothing = 0")
	}
}

func TestPredicates(t *testing.T) {
	positive := casematch.Predicate[int](func(n int) bool { return n > 0 })
	even := casematch.Predicate[int](func(n int) bool { return n%2 == 0 })
	if !casematch.And(positive, even)(4) {
		t.Error("expected 4 to be positive and even")
	}
	if casematch.And(positive, even)(3) {
		t.Error("expected 3 not to be positive and even")
	}
	if !casematch.Or(positive, even)(-2) {
		t.Error("expected -2 to be positive or even")
	}
	if casematch.Not(positive)(1) {
		t.Error("expected Not(positive)(1) to be false")
	}
	if casematch.Or[int]()(1) || !casematch.And[int]()(1) {
		t.Error("expected empty Or to be false and empty And to be true")
	}
	long := casematch.Lift(func(s string) int { return len(s) }, casematch.Predicate[int](func(n int) bool {
		return n > 3
	}))
	if !long("tuple") || long("abc") {
		t.Error("expected lifted predicate to test string length > 3")
	}
}

func TestPairTuple(t *testing.T) {
	p := casematch.P(1, "one")
	tup := p.Tuple()
	if tup.Arity() != 2 || tup.Fields[1].Value != "one" {
		t.Errorf("expected pair to convert to (1, one), is %v", tup)
	}
	lab := p.Labeled("n", "name")
	if lab.Fields[0].Label != "n" || lab.Fields[1].Label != "name" {
		t.Errorf("expected labeled tuple (n: 1, name: one), is %v", lab)
	}
	if !p.Matches(casematch.P(1, "one")) {
		t.Error("expected pair to match an equal pair")
	}
}
