package pattern

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/casematch/value"
)

// ErrImmutable is returned when re-assigning an immutable binding.
var ErrImmutable = errors.New("binding is immutable")

// ErrUnbound is returned when re-assigning a name which has not been bound.
var ErrUnbound = errors.New("name is not bound")

type binding struct {
	value   value.Value
	mutable bool
}

// Bindings is a mapping from names to values, produced by a successful match.
// The zero value is an empty set of bindings.
type Bindings struct {
	entries map[string]*binding
}

func newBindings() Bindings {
	return Bindings{entries: make(map[string]*binding)}
}

// Len returns the number of names bound.
func (b Bindings) Len() int {
	return len(b.entries)
}

// Get returns the value bound to name.
func (b Bindings) Get(name string) (value.Value, bool) {
	if e, ok := b.entries[name]; ok {
		return e.value, true
	}
	return nil, false
}

// MustGet returns the value bound to name and panics if name is unbound.
func (b Bindings) MustGet(name string) value.Value {
	e, ok := b.entries[name]
	assertThat(ok, "name %q is not bound", name)
	return e.value
}

// Mutable is a predicate: has name been bound as a mutable binding?
func (b Bindings) Mutable(name string) bool {
	e, ok := b.entries[name]
	return ok && e.mutable
}

// Set re-assigns a mutable binding.
func (b Bindings) Set(name string, v value.Value) error {
	e, ok := b.entries[name]
	if !ok {
		return fmt.Errorf("cannot assign to %q: %w", name, ErrUnbound)
	}
	if !e.mutable {
		return fmt.Errorf("cannot assign to %q: %w", name, ErrImmutable)
	}
	e.value = v
	return nil
}

// Names returns the bound names in sorted order.
func (b Bindings) Names() []string {
	names := make([]string, 0, len(b.entries))
	for n := range b.entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Map returns a copy of the bindings as a plain map.
func (b Bindings) Map() map[string]value.Value {
	m := make(map[string]value.Value, len(b.entries))
	for n, e := range b.entries {
		m[n] = e.value
	}
	return m
}

func (b Bindings) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, n := range b.Names() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(n)
		sb.WriteString(": ")
		sb.WriteString(value.Format(b.entries[n].value))
	}
	sb.WriteByte('}')
	return sb.String()
}

// bind adds name to the bindings. Binding a name a second time succeeds only
// if the values are equal.
func (b Bindings) bind(name string, v value.Value, mutable bool) bool {
	if e, ok := b.entries[name]; ok {
		return value.Equal(e.value, v)
	}
	b.entries[name] = &binding{value: v, mutable: mutable}
	return true
}

// clone returns a shallow copy, used to roll back bindings of failed alternatives.
func (b Bindings) clone() Bindings {
	c := Bindings{entries: make(map[string]*binding, len(b.entries))}
	for n, e := range b.entries {
		c.entries[n] = &binding{value: e.value, mutable: e.mutable}
	}
	return c
}
