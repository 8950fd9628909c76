/*
Package scenario reads match and subscript scenarios from YAML files and runs
them against package pattern and package subscript.

A scenario declares types, match cases, filter cases, switches and subscript
step lists, each together with the expected outcome:

	name: points
	types:
	  - id: Compass
	    cases: [north, south, east, west]
	matches:
	  - name: on x-axis
	    pattern: ["let x", 0]
	    value: [3, 0]
	    expect: { matched: true, bindings: { x: 3 } }

Values are written as YAML scalars, sequences (tuples) or single-key mappings
for structured values (tuple, labeled, case, some, none, object, arg, list).
Patterns are written as "_", "let x", "var x", "nil", literals (matched for
equality), sequences (tuples) or single-key mappings (tuple, labeled, case,
some, none, is, as, equal, range, halfopen, prefix, guard, or).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scenario

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'casematch.scenario'.
func tracer() tracing.Trace {
	return tracing.Select("casematch.scenario")
}
