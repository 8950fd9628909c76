/*
Package value holds the runtime value model shared by package pattern and package
subscript.

Values are plain Go values (type Value is an alias for any). A few shapes get
special treatment:

	Tuple      ordered, optionally labeled fields
	Variant    a value tagged with a case name, carrying a positional payload
	maybe.*    optionals (see package maybe); a nil Value counts as absent

The Registry answers “is-a” questions for values, based on type ids. Types are
declared once, together with their super-types, and the registry is read-only
afterwards:

	reg := value.NewRegistry()
	reg.Declare("Animal")
	reg.Declare("Dog", "Animal")
	reg.IsA(myDog, "Animal")    // true, if myDog reports type id "Dog"

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package value

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'casematch.value'.
func tracer() tracing.Trace {
	return tracing.Select("casematch.value")
}
