/*
Package btree implements a persistent (immutable) in-memory version of B-trees,
keyed by strings.

A good introduction to B-trees and their algorithms may be found at
https://algorithmtutor.com/Data-Structures/Tree/B-Trees/.

Every “modification” of a tree returns a new incarnation, sharing all untouched
nodes with the original:

	tree := btree.Immutable[int](btree.Degree(4))
	tree = tree.With("answer", 42)
	v, found := tree.Find("answer")   // returns 42, true
*/
package btree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'casematch.btree'.
func tracer() tracing.Trace {
	return tracing.Select("casematch.btree")
}
