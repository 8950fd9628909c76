package subscript

import (
	"errors"
	"fmt"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/npillmayer/casematch/maybe"
	"github.com/npillmayer/casematch/value"
)

// kvTable creates a table with entries (Int) and (String), both readable and
// writable.
func kvTable() (*Table, map[string]value.Value) {
	store := make(map[string]value.Value)
	get := func(args []value.Value) (value.Value, error) {
		return store[fmt.Sprint(args[0])], nil
	}
	set := func(args []value.Value, v value.Value) error {
		store[fmt.Sprint(args[0])] = v
		return nil
	}
	return MustTable("kv",
		Entry{Name: "int", Params: []Param{IntParam}, Get: get, Set: set},
		Entry{Name: "string", Params: []Param{StringParam}, Get: get, Set: set},
	), store
}

func TestResolveDeterminism(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "casematch.subscript")
	defer teardown()
	//
	tab, _ := kvTable()
	call, err := Resolve(tab, 42)
	require.NoError(t, err)
	assert.Equal(t, 0, call.Index())
	call, err = Resolve(tab, "k")
	require.NoError(t, err)
	assert.Equal(t, 1, call.Index())
	_, err = Resolve(tab, 3.14)
	assert.ErrorIs(t, err, ErrNoApplicableOverload)
	var oerr *OverloadError
	require.True(t, errors.As(err, &oerr))
	assert.Equal(t, NoApplicableOverload, oerr.Kind)
	t.Logf("error message: %v", err)
	_, err = Resolve(tab)
	assert.ErrorIs(t, err, ErrNoApplicableOverload)
	_, err = Resolve(tab, 1, 2)
	assert.ErrorIs(t, err, ErrNoApplicableOverload)
}

func TestFirstApplicableWins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "casematch.subscript")
	defer teardown()
	//
	constant := func(x value.Value) GetFunc {
		return func([]value.Value) (value.Value, error) { return x, nil }
	}
	tab := MustTable("order",
		Entry{Params: []Param{AnyParam}, Get: constant("any")},
		Entry{Params: []Param{IntParam}, Get: constant("int")},
	)
	x, err := tab.Get(7)
	assert.NoError(t, err)
	assert.Equal(t, "any", x)
}

func TestDefaultsPadding(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "casematch.subscript")
	defer teardown()
	//
	var seen []value.Value
	tab := MustTable("padded", Entry{
		Params:   []Param{IntParam, IntParam, StringParam.Named("sep")},
		Defaults: []value.Value{1, "-"},
		Get: func(args []value.Value) (value.Value, error) {
			seen = args
			return len(args), nil
		},
	})
	e := tab.Entry(0)
	min, max := e.Arity()
	assert.Equal(t, 1, min)
	assert.Equal(t, 3, max)
	_, err := tab.Get(5)
	require.NoError(t, err)
	assert.Equal(t, []value.Value{5, 1, "-"}, seen)
	_, err = tab.Get(5, 6, Label("sep", "+"))
	require.NoError(t, err)
	assert.Equal(t, []value.Value{5, 6, "+"}, seen)
	_, err = tab.Get(5, 6, "+") // label missing
	assert.ErrorIs(t, err, ErrNoApplicableOverload)
	assert.Equal(t, "(Int, Int, sep: String)", e.Signature())
}

func TestInvalidEntries(t *testing.T) {
	get := func([]value.Value) (value.Value, error) { return nil, nil }
	_, err := NewTable("t", Entry{Params: []Param{IntParam}})
	assert.Error(t, err, "entry without get function")
	_, err = NewTable("t", Entry{Params: []Param{IntParam}, Defaults: []value.Value{1, 2}, Get: get})
	assert.Error(t, err, "more defaults than parameters")
	_, err = NewTable("t", Entry{Params: []Param{IntParam}, Defaults: []value.Value{"x"}, Get: get})
	assert.Error(t, err, "default of wrong type")
	_, err = NewTable("t", Entry{Params: []Param{IntParam}, Mode: Growable, Get: get})
	assert.Error(t, err, "growable without set/grow")
	assert.Panics(t, func() { MustTable("t", Entry{}) })
}

func TestReadOnly(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "casematch.subscript")
	defer teardown()
	//
	arr := NewArray(0, 1, 2, 3, 4)
	err := arr.Table().Set("x", 1, 3) // (Int, Int) range has no setter
	assert.ErrorIs(t, err, ErrReadOnly)
	var oerr *OverloadError
	require.True(t, errors.As(err, &oerr))
	assert.Equal(t, ReadOnly, oerr.Kind)
}

func TestDefaultedGrowth(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "casematch.subscript")
	defer teardown()
	//
	arr := NewArray(0)
	tab := MustTable("growing", Entry{
		Params:   []Param{IntParam},
		Mode:     Growable,
		Fallback: 0,
		Get:      arr.Load,
		Set:      arr.Store,
		Grow:     arr.Extend,
	})
	require.NoError(t, tab.Set(99, 10))
	assert.Equal(t, 11, arr.Len())
	x, err := tab.Get(1)
	assert.NoError(t, err)
	assert.Equal(t, 0, x)
	x, err = tab.Get(10)
	assert.NoError(t, err)
	assert.Equal(t, 99, x)
	x, err = tab.Get(20) // beyond extent
	assert.NoError(t, err)
	assert.Equal(t, 0, x)
	assert.Equal(t, 11, arr.Len(), "reading must not grow the array")
}

func TestMatrixBoundsFault(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "casematch.subscript")
	defer teardown()
	//
	m := NewMatrix(3, 3, 0.0)
	tab := m.Table()
	assert.Panics(t, func() {
		x, err := tab.Get(5, 5)
		t.Errorf("expected bounds fault, got %v, %v", x, err)
	})
	assert.Panics(t, func() { _ = tab.Set(1.0, -1, 0) })
	assert.True(t, m.ValidIndex(2, 2))
	assert.False(t, m.ValidIndex(3, 0))
}

func TestMatrixLinearization(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "casematch.subscript")
	defer teardown()
	//
	m := NewMatrix(3, 3, 0.0)
	tab := m.Table()
	require.NoError(t, tab.Set(1.5, 1, 1))
	x, err := tab.Get(4)
	assert.NoError(t, err)
	assert.Equal(t, 1.5, x)
	require.NoError(t, tab.Set(2.5, 8))
	x, err = tab.Get(2, 2)
	assert.NoError(t, err)
	assert.Equal(t, 2.5, x)
	assert.Equal(t, []value.Value{0.0, 1.5, 0.0}, m.Row(1))
	// flat access is strict
	assert.PanicsWithError(t, "Matrix.flat(Int)[9]: offset 9 in 3x3 matrix: index out of range",
		func() { _, _ = tab.Get(9) })
}

func TestArrayEntries(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "casematch.subscript")
	defer teardown()
	//
	arr := NewArray(-1, "a", "b", "c")
	tab := arr.Table()
	x, err := tab.Get(1)
	assert.NoError(t, err)
	assert.Equal(t, "b", x)
	require.NoError(t, tab.Set("B", 1))
	assert.Equal(t, []value.Value{"a", "B", "c"}, arr.Values())
	// range
	x, err = tab.Get(1, 3)
	assert.NoError(t, err)
	assert.Equal(t, []value.Value{"B", "c"}, x)
	// safe
	x, err = tab.Get(Label("safe", 7))
	assert.NoError(t, err)
	assert.False(t, x.(maybe.Maybe[value.Value]).IsJust())
	x, err = tab.Get(Label("safe", 0))
	assert.NoError(t, err)
	s, ok := x.(maybe.Maybe[value.Value]).Get()
	assert.True(t, ok)
	assert.Equal(t, "a", s)
	// defaulted
	x, err = tab.Get(7, Label("default", "z"))
	assert.NoError(t, err)
	assert.Equal(t, "z", x)
	// growing
	require.NoError(t, tab.Set("e", Label("growing", 4)))
	assert.Equal(t, []value.Value{"a", "B", "c", -1, "e"}, arr.Values())
	// strict
	assert.Panics(t, func() { _, _ = tab.Get(5) })
	assert.Panics(t, func() { _ = tab.Set("x", 5) })
	assert.Panics(t, func() { _, _ = tab.Get(3, 9) })
}

func TestArraySnapshots(t *testing.T) {
	arr := NewArray(0, 1, 2, 3)
	snap := arr.Snapshot()
	require.NoError(t, arr.Table().Set(10, 0))
	assert.Equal(t, 1, snap.Get(0))
	assert.Equal(t, 10, arr.Snapshot().Get(0))
}

func TestStrictFaultIsOverloadError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "casematch.subscript")
	defer teardown()
	//
	arr := NewArray(0, 1, 2, 3)
	defer func() {
		r := recover()
		err, ok := r.(error)
		require.True(t, ok, "expected panic with an error, have %v", r)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
		var oerr *OverloadError
		require.True(t, errors.As(err, &oerr))
		assert.Equal(t, IndexOutOfRange, oerr.Kind)
		assert.Equal(t, "at(Int)", oerr.Entry)
	}()
	_, _ = arr.Table().Get(3)
	t.Error("expected Get to panic")
}

func TestDict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "casematch.subscript")
	defer teardown()
	//
	d := NewDict()
	tab := d.Table()
	require.NoError(t, tab.Set(1, "apples"))
	require.NoError(t, tab.Set(value.Some(2), "pears"))
	x, err := tab.Get("apples")
	assert.NoError(t, err)
	n, ok := x.(maybe.Maybe[value.Value]).Get()
	assert.True(t, ok)
	assert.Equal(t, 1, n)
	x, err = tab.Get("plums")
	assert.NoError(t, err)
	assert.False(t, x.(maybe.Maybe[value.Value]).IsJust())
	x, err = tab.Get("plums", Label("default", 0))
	assert.NoError(t, err)
	assert.Equal(t, 0, x)
	x, err = tab.Get("pears", Label("default", 0))
	assert.NoError(t, err)
	assert.Equal(t, 2, x)
	assert.Equal(t, []string{"apples", "pears"}, d.Keys())
	// removal
	require.NoError(t, tab.Set(value.None(), "apples"))
	require.NoError(t, tab.Set(nil, "plums"))
	assert.Equal(t, 1, d.Len())
	_, err = tab.Get(3)
	assert.ErrorIs(t, err, ErrNoApplicableOverload)
}

func TestTypeTableOverride(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "casematch.subscript")
	defer teardown()
	//
	planets := []value.Value{"Mercury", "Venus", "Earth", "Mars"}
	byIndex := func(prefix string) GetFunc {
		return func(args []value.Value) (value.Value, error) {
			i, _ := value.ToInt(args[0])
			if i < 0 || i >= len(planets) {
				return nil, OutOfRange("planet %d", i)
			}
			return prefix + planets[i].(string), nil
		}
	}
	byName := func(args []value.Value) (value.Value, error) {
		for i, p := range planets {
			if p == args[0] {
				return i, nil
			}
		}
		return -1, nil
	}
	base, err := NewTypeTable("Planet", nil,
		Entry{Name: "index", Params: []Param{IntParam}, Get: byIndex("")},
		Entry{Name: "name", Params: []Param{StringParam}, Get: byName},
	)
	require.NoError(t, err)
	derived, err := NewTypeTable("InnerPlanet", base,
		Entry{Name: "index", Params: []Param{IntParam}, Get: byIndex("inner ")},
		Entry{Name: "hot", Params: []Param{BoolParam}, Get: func([]value.Value) (value.Value, error) {
			return planets[0], nil
		}},
	)
	require.NoError(t, err)
	assert.Equal(t, 3, derived.Table().Len(), "override must replace, not add")
	x, err := derived.Get(2)
	assert.NoError(t, err)
	assert.Equal(t, "inner Earth", x)
	x, err = base.Get(2)
	assert.NoError(t, err)
	assert.Equal(t, "Earth", x)
	call, err := derived.Resolve("Mars")
	require.NoError(t, err)
	assert.Equal(t, base, derived.Origin(call))
	x, err = call.Get()
	assert.NoError(t, err)
	assert.Equal(t, 3, x)
	call, err = derived.Resolve(2)
	require.NoError(t, err)
	assert.Equal(t, 0, call.Index(), "override keeps the position of the overridden entry")
	assert.Equal(t, derived, derived.Origin(call))
	_, err = base.Resolve(true)
	assert.ErrorIs(t, err, ErrNoApplicableOverload)
	//
	_, err = NewTypeTable("Broken", nil,
		Entry{Params: []Param{IntParam}, Get: byName},
		Entry{Params: []Param{IntParam}, Get: byName},
	)
	assert.Error(t, err)
}

func TestTypeParam(t *testing.T) {
	reg := value.NewRegistry()
	reg.Declare("Shape")
	reg.Declare("Circle", "Shape")
	reg.Bind(circle{}, "Circle")
	p := TypeParam(reg, "Shape")
	assert.True(t, p.Accepts(circle{r: 1}))
	assert.False(t, p.Accepts(1))
	assert.Equal(t, "Shape", p.String())
	assert.Equal(t, "at: Shape", p.Named("at").String())
}

type circle struct {
	r float64
}

func TestNumericParams(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "casematch.subscript")
	defer teardown()
	//
	assert.True(t, IntParam.Accepts(int8(3)))
	assert.True(t, IntParam.Accepts(uint64(3)))
	assert.False(t, IntParam.Accepts(3.0))
	assert.True(t, FloatParam.Accepts(float32(2.5)))
	assert.False(t, FloatParam.Accepts(3))
	kind := func(x value.Value) GetFunc {
		return func([]value.Value) (value.Value, error) { return x, nil }
	}
	tab := MustTable("numbers",
		Entry{Name: "float", Params: []Param{FloatParam}, Get: kind("float")},
		Entry{Name: "int", Params: []Param{IntParam}, Get: kind("int")},
	)
	x, err := tab.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "int", x)
	x, err = tab.Get(2.0)
	require.NoError(t, err)
	assert.Equal(t, "float", x)
}
