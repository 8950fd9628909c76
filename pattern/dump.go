package pattern

import (
	"github.com/xlab/treeprint"
)

// Dump renders the structure of a pattern as a tree.
func Dump(p Pattern) string {
	tree := treeprint.New()
	dump(node(tree, p), p)
	return tree.String()
}

func dump(tree treeprint.Tree, p Pattern) {
	switch p := p.(type) {
	case Tuple:
		for _, e := range p.Elems {
			sub := e.Pattern
			if e.Label != "" {
				dump(tree.AddBranch(e.Label+": "+str(sub)), sub)
				continue
			}
			dump(node(tree, sub), sub)
		}
	case Variant:
		for _, sub := range p.Payload {
			dump(node(tree, sub), sub)
		}
	case Some:
		dump(node(tree, p.Inner), p.Inner)
	case Guard:
		dump(node(tree, p.Inner), p.Inner)
	case Or:
		for _, sub := range p.Alts {
			dump(node(tree, sub), sub)
		}
	}
}

func node(tree treeprint.Tree, p Pattern) treeprint.Tree {
	switch p.(type) {
	case Tuple, Variant, Some, Guard, Or:
		return tree.AddBranch(str(p))
	}
	tree.AddNode(str(p))
	return nil
}
