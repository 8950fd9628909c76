/*
Package pattern implements structural pattern matching over runtime values.

Patterns are immutable trees built from a small set of variants: wildcards,
name bindings, tuples, tagged variants, optionals, type tests and casts,
value expressions, guards and alternatives. Matching a pattern against a
value never mutates the value; on success it produces a fresh set of
bindings.

	p := pattern.Tup(pattern.Bind("x"), pattern.Equal(0))
	r := pattern.Match(p, value.Tup(3, 0))
	switch m := r.Match(); m {
	case m.Matched(&b):
	    x, _ := b.Get("x")     // 3
	case m.NotMatched():
	    ...
	}

Ordered clause sets, as used for switch-like constructs, are modelled by
type Switch. Switches lacking a catch-all clause report a NonExhaustiveError
for subjects no clause matches, unless a default body has been supplied.

Sequences may be matched in filtering mode (see Filter and Each), where
elements not matching a pattern are skipped instead of reported.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package pattern

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'casematch.pattern'.
func tracer() tracing.Trace {
	return tracing.Select("casematch.pattern")
}
