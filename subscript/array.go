package subscript

import (
	"github.com/npillmayer/casematch/persistent/vector"
	"github.com/npillmayer/casematch/value"
)

// Array is a mutable handle over a persistent vector of values. Its subscript
// table holds the following entries, in this order:
//
//	(Int)                   strict get and set
//	(Int, Int)              strict get of the half-open range [from…to)
//	(safe: Int)             safe get
//	(Int, default: Any)     get, returning the default argument if out of range
//	(growing: Int)          growable get and set, filled with the array's fill value
//
// Arrays are not safe for concurrent use.
type Array struct {
	elems vector.Vector[value.Value]
	fill  value.Value
	table *Table
}

// NewArray creates an array holding xs. fill is used for slots created by
// growing the array.
func NewArray(fill value.Value, xs ...value.Value) *Array {
	a := &Array{elems: vector.From(xs), fill: fill}
	a.table = MustTable("Array",
		Entry{Name: "at", Params: []Param{IntParam}, Get: a.Load, Set: a.Store},
		Entry{Name: "range", Params: []Param{IntParam, IntParam}, Get: a.loadRange},
		Entry{Name: "safe", Params: []Param{IntParam.Named("safe")}, Mode: Safe, Get: a.Load},
		Entry{Name: "default", Params: []Param{IntParam, AnyParam.Named("default")},
			Mode: Defaulted, Get: a.loadOrDefault},
		Entry{Name: "growing", Params: []Param{IntParam.Named("growing")},
			Mode: Growable, Fallback: fill, Get: a.Load, Set: a.Store, Grow: a.Extend},
	)
	return a
}

// Table returns the subscript table of a.
func (a *Array) Table() *Table {
	return a.table
}

// Len returns the number of elements of a.
func (a *Array) Len() int {
	return a.elems.Len()
}

// Snapshot returns the current contents of a. Later modifications of a do not
// affect the snapshot.
func (a *Array) Snapshot() vector.Vector[value.Value] {
	return a.elems
}

// Values returns the elements of a as a slice.
func (a *Array) Values() []value.Value {
	return a.elems.Slice()
}

func (a *Array) String() string {
	return a.elems.String()
}

func (a *Array) inRange(i int) bool {
	return i >= 0 && i < a.elems.Len()
}

// Load is a GetFunc reading the element at index args[0].
func (a *Array) Load(args []value.Value) (value.Value, error) {
	i, _ := value.ToInt(args[0])
	if !a.inRange(i) {
		return nil, OutOfRange("index %d with length %d", i, a.Len())
	}
	return a.elems.Get(i), nil
}

// Store is a SetFunc writing the element at index args[0].
func (a *Array) Store(args []value.Value, v value.Value) error {
	i, _ := value.ToInt(args[0])
	if !a.inRange(i) {
		return OutOfRange("index %d with length %d", i, a.Len())
	}
	a.elems = a.elems.Set(i, v)
	return nil
}

// Extend is a GrowFunc extending a to include index args[0].
func (a *Array) Extend(args []value.Value, fill value.Value) error {
	i, _ := value.ToInt(args[0])
	if i < 0 {
		return OutOfRange("cannot grow to negative index %d", i)
	}
	a.elems = a.elems.Grow(i+1, fill)
	return nil
}

func (a *Array) loadRange(args []value.Value) (value.Value, error) {
	from, _ := value.ToInt(args[0])
	to, _ := value.ToInt(args[1])
	if from < 0 || from > to || to > a.Len() {
		return nil, OutOfRange("range %d..<%d with length %d", from, to, a.Len())
	}
	r := make([]value.Value, 0, to-from)
	for i := from; i < to; i++ {
		r = append(r, a.elems.Get(i))
	}
	return r, nil
}

func (a *Array) loadOrDefault(args []value.Value) (value.Value, error) {
	i, _ := value.ToInt(args[0])
	if !a.inRange(i) {
		return args[1], nil
	}
	return a.elems.Get(i), nil
}
