package subscript

import (
	"fmt"

	"github.com/npillmayer/casematch/value"
)

// TypeTable holds the type-level subscripts of a type. A type table inherits
// the entries of its parent. An entry with the signature of an inherited
// entry overrides it in place; other entries are appended.
type TypeTable struct {
	typeID string
	parent *TypeTable
	own    []Entry
	table  *Table // effective entries, including inherited ones
}

// NewTypeTable creates a type table for typeID. parent may be nil.
func NewTypeTable(typeID string, parent *TypeTable, entries ...Entry) (*TypeTable, error) {
	tt := &TypeTable{
		typeID: typeID,
		parent: parent,
		own:    append([]Entry(nil), entries...),
	}
	seen := make(map[string]bool, len(entries))
	for i := range tt.own {
		sig := tt.own[i].Signature()
		if seen[sig] {
			return nil, fmt.Errorf("type %s: duplicate subscript signature %s", typeID, sig)
		}
		seen[sig] = true
	}
	var effective []Entry
	if parent != nil {
		effective = append(effective, parent.table.entries...)
	}
	for _, e := range tt.own {
		if i := indexOfSignature(effective, e.Signature()); i >= 0 {
			tracer().Debugf("type %s overrides subscript %s", typeID, effective[i].Signature())
			effective[i] = e
			continue
		}
		effective = append(effective, e)
	}
	t, err := NewTable(typeID, effective...)
	if err != nil {
		return nil, err
	}
	tt.table = t
	return tt, nil
}

func indexOfSignature(entries []Entry, sig string) int {
	for i := range entries {
		if entries[i].Signature() == sig {
			return i
		}
	}
	return -1
}

// TypeID returns the type id of tt.
func (tt *TypeTable) TypeID() string {
	return tt.typeID
}

// Parent returns the parent table, if any.
func (tt *TypeTable) Parent() *TypeTable {
	return tt.parent
}

// Table returns the effective table of tt, with inherited entries.
func (tt *TypeTable) Table() *Table {
	return tt.table
}

// Defines is a predicate: does tt itself (not a parent) define an entry with
// signature sig?
func (tt *TypeTable) Defines(sig string) bool {
	return indexOfSignature(tt.own, sig) >= 0
}

// Origin returns the type table which defines the entry a call resolves to.
func (tt *TypeTable) Origin(call ResolvedCall) *TypeTable {
	sig := call.entry().Signature()
	for t := tt; t != nil; t = t.parent {
		if t.Defines(sig) {
			return t
		}
	}
	return nil
}

// Resolve resolves a type-level subscript call.
func (tt *TypeTable) Resolve(args ...value.Value) (ResolvedCall, error) {
	return Resolve(tt.table, args...)
}

// Get resolves a type-level subscript call and reads.
func (tt *TypeTable) Get(args ...value.Value) (value.Value, error) {
	return tt.table.Get(args...)
}
