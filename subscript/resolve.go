package subscript

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/casematch/maybe"
	"github.com/npillmayer/casematch/value"
)

// Sentinel errors, wrapped by *OverloadError.
var (
	ErrNoApplicableOverload = errors.New("no applicable overload")
	ErrReadOnly             = errors.New("subscript is read-only")
	ErrIndexOutOfRange      = errors.New("index out of range")
)

// Kind classifies overload errors.
type Kind int

// Kinds of overload errors.
const (
	NoApplicableOverload Kind = iota
	ReadOnly
	IndexOutOfRange
)

func (k Kind) sentinel() error {
	switch k {
	case NoApplicableOverload:
		return ErrNoApplicableOverload
	case ReadOnly:
		return ErrReadOnly
	}
	return ErrIndexOutOfRange
}

// OverloadError is the error type of subscript resolution and invocation.
// Errors of kind IndexOutOfRange are never returned, but raised as panics.
type OverloadError struct {
	Kind  Kind
	Table string
	Entry string // empty for NoApplicableOverload
	Args  []value.Value
	Err   error // underlying error, if any
}

func (e *OverloadError) Error() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		if l, v := split(a); l != "" {
			args[i] = l + ": " + value.Format(v)
		} else {
			args[i] = value.Format(v)
		}
	}
	where := e.Table
	if e.Entry != "" {
		where += "." + e.Entry
	}
	prefix := fmt.Sprintf("%s[%s]", where, strings.Join(args, ", "))
	switch {
	case e.Err == nil:
		return prefix + ": " + e.Kind.sentinel().Error()
	case errors.Is(e.Err, e.Kind.sentinel()):
		return prefix + ": " + e.Err.Error()
	}
	return prefix + ": " + e.Kind.sentinel().Error() + ": " + e.Err.Error()
}

func (e *OverloadError) Unwrap() error {
	return e.Kind.sentinel()
}

// --- Resolution -------------------------------------------------------------

// ResolvedCall is a subscript call bound to an entry of a table.
type ResolvedCall struct {
	table *Table
	index int
	args  []value.Value // as supplied
	pargs []value.Value // unlabeled and padded
}

// Resolve selects the first entry of t applicable to args. If no entry
// applies, Resolve returns an *OverloadError of kind NoApplicableOverload.
func Resolve(t *Table, args ...value.Value) (ResolvedCall, error) {
	assertThat(t != nil, "cannot resolve against nil table")
	for i := range t.entries {
		e := &t.entries[i]
		if e.Applicable(args) {
			tracer().Debugf("%s: entry #%d %s selected", t.name, i, e)
			return ResolvedCall{
				table: t,
				index: i,
				args:  args,
				pargs: e.pad(args),
			}, nil
		}
	}
	tracer().Infof("%s: no applicable overload for %d argument(s)", t.name, len(args))
	return ResolvedCall{index: -1}, &OverloadError{
		Kind:  NoApplicableOverload,
		Table: t.name,
		Args:  args,
	}
}

// Index returns the position of the selected entry within its table.
func (c ResolvedCall) Index() int {
	return c.index
}

// Entry returns the selected entry.
func (c ResolvedCall) Entry() Entry {
	return *c.entry()
}

// Args returns the arguments, stripped of labels and padded with defaults.
func (c ResolvedCall) Args() []value.Value {
	return append([]value.Value(nil), c.pargs...)
}

func (c ResolvedCall) entry() *Entry {
	assertThat(c.table != nil && c.index >= 0, "call has not been resolved")
	return &c.table.entries[c.index]
}

func (c ResolvedCall) fault(kind Kind, err error) *OverloadError {
	return &OverloadError{
		Kind:  kind,
		Table: c.table.name,
		Entry: c.entry().String(),
		Args:  c.args,
		Err:   err,
	}
}

// Get invokes the get function of the selected entry.
//
// For safe entries the result is a maybe.Maybe[value.Value], which is absent
// for indices out of range. Defaulted and growable entries return their
// fallback value for indices out of range. Strict entries panic with an
// *OverloadError of kind IndexOutOfRange.
func (c ResolvedCall) Get() (value.Value, error) {
	e := c.entry()
	v, err := e.Get(c.pargs)
	if err != nil && !errors.Is(err, ErrIndexOutOfRange) {
		return nil, err
	}
	outOfRange := err != nil
	switch e.Mode {
	case Safe:
		if outOfRange {
			return maybe.Nothing[value.Value](), nil
		}
		return maybe.Just(v), nil
	case Defaulted, Growable:
		if outOfRange {
			tracer().Debugf("%s: out of range, using fallback", e)
			return e.Fallback, nil
		}
		return v, nil
	}
	if outOfRange {
		panic(c.fault(IndexOutOfRange, err))
	}
	return v, nil
}

// Set invokes the set function of the selected entry. If the entry has no set
// function, Set returns an *OverloadError of kind ReadOnly. Growable entries
// extend their storage for indices beyond the current extent; for all other
// entries Set panics with an *OverloadError of kind IndexOutOfRange.
func (c ResolvedCall) Set(v value.Value) error {
	e := c.entry()
	if e.Set == nil {
		return c.fault(ReadOnly, nil)
	}
	err := e.Set(c.pargs, v)
	if err == nil || !errors.Is(err, ErrIndexOutOfRange) {
		return err
	}
	if e.Mode != Growable {
		panic(c.fault(IndexOutOfRange, err))
	}
	tracer().Debugf("%s: growing storage", e)
	if err = e.Grow(c.pargs, e.Fallback); err != nil {
		return err
	}
	if err = e.Set(c.pargs, v); errors.Is(err, ErrIndexOutOfRange) {
		panic(c.fault(IndexOutOfRange, err))
	}
	return err
}

// OutOfRange creates an error wrapping ErrIndexOutOfRange, to be returned by
// get and set functions.
func OutOfRange(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrIndexOutOfRange)
}
