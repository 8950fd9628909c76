/*
Package subscript implements overloaded indexing (subscripts) for containers.

A container publishes a Table of overload entries. Each Entry declares a list
of parameter descriptors, defaults for a trailing subset of its parameters, a
get function and an optional set function. Resolving a call scans the table in
registration order and selects the first entry whose arity and parameter types
fit the arguments:

	tab := arr.Table()
	x, err := tab.Get(3)                       // (Int)
	y, err := tab.Get(subscript.Label("safe", 9)) // (safe: Int) -> maybe

Entries come in four modes, which govern the behaviour for indices outside of
the current extent of the container: Strict entries panic with an
*OverloadError of kind IndexOutOfRange, Safe entries return an absent optional,
Defaulted entries return a default value, and Growable entries extend the
container's storage on write.

Type-level subscripts are resolved against a TypeTable, which inherits the
entries of a parent table and replaces entries with equal signatures.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package subscript

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'casematch.subscript'.
func tracer() tracing.Trace {
	return tracing.Select("casematch.subscript")
}

// assertThat is a helper for asserting preconditions.
func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("subscript: "+msg, msgargs...)
		panic(msg)
	}
}
