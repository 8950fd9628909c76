/*
Package casematch is a small toolkit for destructuring values with patterns and for
dispatching index operations (subscripts) to one of several registered overloads.

The heavy lifting happens in the sub-packages:

	value       runtime values: tuples, tagged variants, type registry
	pattern     patterns, matching, clause selection
	subscript   overload tables for index get/set, containers
	maybe       optional values
	result      Ok/Err values
	either      Left/Right values

This package holds a handful of function combinators which come in handy when
building predicates for value-expression patterns and guards:

	small := casematch.And(isInt, casematch.Not(isNegative))
	p := pattern.When(pattern.Bind("n"), ...)

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package casematch
