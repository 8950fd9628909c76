package pattern

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/casematch/value"
)

// ErrOrBindings is reported for alternatives binding different sets of names.
var ErrOrBindings = errors.New("alternatives bind different names")

// ErrNilPattern is reported for patterns containing nil sub-patterns.
var ErrNilPattern = errors.New("nil pattern")

// Validate checks a pattern for well-formedness. Every alternative of an Or
// pattern has to bind the same set of names.
func Validate(p Pattern) error {
	_, err := boundNames(p)
	return err
}

// Names returns the names a pattern binds on success, in sorted order.
func Names(p Pattern) ([]string, error) {
	set, err := boundNames(p)
	if err != nil {
		return nil, err
	}
	return set.sorted(), nil
}

type nameSet map[string]struct{}

func (s nameSet) add(other nameSet) {
	for n := range other {
		s[n] = struct{}{}
	}
}

func (s nameSet) equals(other nameSet) bool {
	if len(s) != len(other) {
		return false
	}
	for n := range s {
		if _, ok := other[n]; !ok {
			return false
		}
	}
	return true
}

func (s nameSet) sorted() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func boundNames(p Pattern) (nameSet, error) {
	set := make(nameSet)
	switch p := p.(type) {
	case nil:
		return nil, ErrNilPattern
	case Binding:
		set[p.Name] = struct{}{}
	case TypeCast:
		set[p.Name] = struct{}{}
	case Tuple:
		for _, e := range p.Elems {
			sub, err := boundNames(e.Pattern)
			if err != nil {
				return nil, err
			}
			set.add(sub)
		}
	case Variant:
		for _, sp := range p.Payload {
			sub, err := boundNames(sp)
			if err != nil {
				return nil, err
			}
			set.add(sub)
		}
	case Some:
		return boundNames(p.Inner)
	case Guard:
		return boundNames(p.Inner)
	case Or:
		for i, alt := range p.Alts {
			sub, err := boundNames(alt)
			if err != nil {
				return nil, err
			}
			if i == 0 {
				set = sub
			} else if !set.equals(sub) {
				return nil, fmt.Errorf("%s: [%s] vs. [%s]: %w", p,
					strings.Join(set.sorted(), ","), strings.Join(sub.sorted(), ","),
					ErrOrBindings)
			}
		}
	}
	return set, nil
}

// Irrefutable is a predicate: does p match every value?
func Irrefutable(p Pattern) bool {
	switch p := p.(type) {
	case Wildcard, Binding:
		return true
	case Tuple:
		return len(p.Elems) == 1 && Irrefutable(p.Elems[0].Pattern)
	case TypeTest:
		return p.TypeID == value.Any
	case TypeCast:
		return p.TypeID == value.Any
	case Or:
		for _, alt := range p.Alts {
			if Irrefutable(alt) {
				return true
			}
		}
	}
	return false
}

// Exhaustive checks a list of patterns for covering every possible value.
// This is the case if one of the patterns is irrefutable, if the patterns
// cover both present and absent optionals, or if they cover every declared
// case of a variant type (see value.Registry.DeclareCases).
// Exhaustive is conservative: it may report false for lists which do in fact
// cover every value the caller will ever present.
func Exhaustive(reg *value.Registry, ps ...Pattern) bool {
	if reg == nil {
		reg = value.Default()
	}
	var some, none bool
	covered := make(map[string]nameSet) // type id -> cases
	var visit func(Pattern) bool
	visit = func(p Pattern) bool {
		if Irrefutable(p) {
			return true
		}
		switch p := p.(type) {
		case Some:
			some = some || Irrefutable(p.Inner)
		case None:
			none = true
		case Variant:
			if p.TypeID != "" && payloadIrrefutable(p.Payload) {
				if covered[p.TypeID] == nil {
					covered[p.TypeID] = make(nameSet)
				}
				covered[p.TypeID][p.Case] = struct{}{}
			}
		case Or:
			for _, alt := range p.Alts {
				if visit(alt) {
					return true
				}
			}
		}
		return false
	}
	for _, p := range ps {
		if visit(p) {
			return true
		}
	}
	if some && none {
		return true
	}
	for typeID, cs := range covered {
		all, ok := reg.Cases(typeID)
		if !ok {
			continue
		}
		complete := true
		for _, c := range all {
			if _, ok := cs[c]; !ok {
				complete = false
				break
			}
		}
		if complete {
			return true
		}
	}
	return false
}

func payloadIrrefutable(ps []Pattern) bool {
	for _, p := range ps {
		if !Irrefutable(p) {
			return false
		}
	}
	return true
}
