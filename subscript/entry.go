package subscript

import (
	"fmt"
	"strings"

	"github.com/npillmayer/casematch/value"
)

// Mode governs how an entry treats indices outside of a container's extent.
type Mode int

// Entry modes.
const (
	Strict    Mode = iota // out of range is a fatal fault
	Safe                  // out of range reads return an absent optional
	Defaulted             // out of range reads return the entry's fallback
	Growable              // like Defaulted, writes extend the storage
)

func (m Mode) String() string {
	switch m {
	case Strict:
		return "strict"
	case Safe:
		return "safe"
	case Defaulted:
		return "defaulted"
	case Growable:
		return "growable"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// GetFunc reads from a container. args are unlabeled and padded with defaults.
// Indices outside of the container's extent are reported by returning an error
// wrapping ErrIndexOutOfRange.
type GetFunc func(args []value.Value) (value.Value, error)

// SetFunc writes to a container. Indices outside of the container's extent
// are reported by returning an error wrapping ErrIndexOutOfRange.
type SetFunc func(args []value.Value, v value.Value) error

// GrowFunc extends the storage of a container to include the position args
// point to, filling new slots with fill.
type GrowFunc func(args []value.Value, fill value.Value) error

// Entry is an overload of a subscript.
type Entry struct {
	Name     string
	Params   []Param
	Defaults []value.Value // defaults for the trailing parameters
	Mode     Mode
	Fallback value.Value // result for out of range reads of defaulted entries
	Get      GetFunc
	Set      SetFunc  // optional
	Grow     GrowFunc // required for growable entries
}

// Arity returns the minimum and maximum number of arguments e accepts.
func (e *Entry) Arity() (min, max int) {
	return len(e.Params) - len(e.Defaults), len(e.Params)
}

// Applicable is a predicate: does e accept args?
func (e *Entry) Applicable(args []value.Value) bool {
	min, max := e.Arity()
	if len(args) < min || len(args) > max {
		return false
	}
	for i, a := range args {
		if !e.Params[i].Accepts(a) {
			return false
		}
	}
	return true
}

// Signature returns the parameter list of e, e.g. "(Int, default: Any)".
func (e *Entry) Signature() string {
	ps := make([]string, len(e.Params))
	for i, p := range e.Params {
		ps[i] = p.String()
	}
	return "(" + strings.Join(ps, ", ") + ")"
}

func (e *Entry) String() string {
	if e.Name == "" {
		return e.Signature()
	}
	return e.Name + e.Signature()
}

// validate checks an entry for consistency.
func (e *Entry) validate() error {
	if e.Get == nil {
		return fmt.Errorf("entry %s has no get function", e)
	}
	if len(e.Defaults) > len(e.Params) {
		return fmt.Errorf("entry %s has more defaults than parameters", e)
	}
	min, _ := e.Arity()
	for i, d := range e.Defaults {
		if p := e.Params[min+i]; !p.acceptsValue(d) {
			return fmt.Errorf("entry %s: default %v does not fit parameter %s", e, value.Format(d), p)
		}
	}
	if e.Mode == Growable && (e.Set == nil || e.Grow == nil) {
		return fmt.Errorf("growable entry %s needs set and grow functions", e)
	}
	return nil
}

// pad strips labels from args and appends defaults for omitted parameters.
func (e *Entry) pad(args []value.Value) []value.Value {
	padded := make([]value.Value, len(e.Params))
	for i, a := range args {
		_, padded[i] = split(a)
	}
	min, _ := e.Arity()
	for i := len(args); i < len(e.Params); i++ {
		padded[i] = e.Defaults[i-min]
	}
	return padded
}

// --- Tables -----------------------------------------------------------------

// Table is an ordered list of subscript entries. Tables are read-only after
// construction and may be shared.
type Table struct {
	name    string
	entries []Entry
}

// NewTable creates a table from a list of entries. Order matters: resolving a
// call selects the first applicable entry.
func NewTable(name string, entries ...Entry) (*Table, error) {
	t := &Table{name: name, entries: append([]Entry(nil), entries...)}
	for i := range t.entries {
		if p := t.entries[i].Params; p == nil {
			t.entries[i].Params = []Param{}
		}
		if err := t.entries[i].validate(); err != nil {
			return nil, fmt.Errorf("table %s: %w", name, err)
		}
	}
	return t, nil
}

// MustTable is like NewTable, but panics on invalid entries.
func MustTable(name string, entries ...Entry) *Table {
	t, err := NewTable(name, entries...)
	assertThat(err == nil, "%v", err)
	return t
}

// Name returns the name of t.
func (t *Table) Name() string {
	return t.name
}

// Len returns the number of entries of t.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entry returns the i-th entry of t.
func (t *Table) Entry(i int) Entry {
	return t.entries[i]
}

// Resolve resolves a call against t. See package function Resolve.
func (t *Table) Resolve(args ...value.Value) (ResolvedCall, error) {
	return Resolve(t, args...)
}

// Get resolves a call and reads.
func (t *Table) Get(args ...value.Value) (value.Value, error) {
	call, err := Resolve(t, args...)
	if err != nil {
		return nil, err
	}
	return call.Get()
}

// Set resolves a call and writes v.
func (t *Table) Set(v value.Value, args ...value.Value) error {
	call, err := Resolve(t, args...)
	if err != nil {
		return err
	}
	return call.Set(v)
}

func (t *Table) String() string {
	var sb strings.Builder
	sb.WriteString(t.name)
	sb.WriteString(" [")
	for i := range t.entries {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(t.entries[i].String())
	}
	sb.WriteByte(']')
	return sb.String()
}
