package subscript

import (
	"github.com/npillmayer/casematch/persistent/btree"
	"github.com/npillmayer/casematch/value"
)

// Dict is a mutable handle over a persistent B-tree, mapping strings to values.
// Its subscript table has entries
//
//	(String)                 safe get, returning an optional; set
//	(String, default: Any)   get, returning the default argument for missing keys; set
//
// Setting a key to an absent optional (or nil) removes the key.
type Dict struct {
	entries btree.Tree[value.Value]
	table   *Table
}

// NewDict creates an empty dictionary.
func NewDict(opts ...btree.Option) *Dict {
	d := &Dict{entries: btree.Immutable[value.Value](opts...)}
	d.table = MustTable("Dict",
		Entry{Name: "key", Params: []Param{StringParam}, Mode: Safe, Get: d.lookup, Set: d.store},
		Entry{Name: "default", Params: []Param{StringParam, AnyParam.Named("default")},
			Mode: Defaulted, Get: d.lookupOrDefault, Set: d.store},
	)
	return d
}

// Table returns the subscript table of d.
func (d *Dict) Table() *Table {
	return d.table
}

// Len returns the number of keys in d.
func (d *Dict) Len() int {
	return d.entries.Len()
}

// Keys returns the keys of d in ascending order.
func (d *Dict) Keys() []string {
	return d.entries.Keys()
}

// Snapshot returns the current contents of d.
func (d *Dict) Snapshot() btree.Tree[value.Value] {
	return d.entries
}

func (d *Dict) lookup(args []value.Value) (value.Value, error) {
	key := args[0].(string)
	v, ok := d.entries.Find(key)
	if !ok {
		return nil, OutOfRange("key %q", key)
	}
	return v, nil
}

func (d *Dict) lookupOrDefault(args []value.Value) (value.Value, error) {
	if v, ok := d.entries.Find(args[0].(string)); ok {
		return v, nil
	}
	return args[1], nil
}

func (d *Dict) store(args []value.Value, v value.Value) error {
	key := args[0].(string)
	inner, present, _ := value.Unwrap(v)
	if !present {
		d.entries = d.entries.WithDeleted(key)
		return nil
	}
	d.entries = d.entries.With(key, inner)
	return nil
}
