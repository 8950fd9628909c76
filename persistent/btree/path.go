package btree

import (
	"fmt"
	"strconv"
	"strings"
)

// --- Slot ------------------------------------------------------------------

// slot holds a step of a path.
type slot[T any] struct {
	node  *xnode[T]
	index int
}

func (s slot[T]) String() string {
	return strconv.Itoa(s.index) + "@" + s.node.String()
}

func (s slot[T]) item() xitem[T] {
	return s.node.items[s.index]
}

// --- Path ------------------------------------------------------------------

type slotPath[T any] []slot[T]

func (path slotPath[T]) String() string {
	var sb = strings.Builder{}
	sb.WriteRune('[')
	for _, s := range path {
		sb.WriteString(fmt.Sprintf("⟨%s⟩", s))
	}
	sb.WriteRune(']')
	return sb.String()
}

func (path slotPath[T]) last() slot[T] {
	if len(path) == 0 {
		return slot[T]{}
	}
	return path[len(path)-1]
}

// findKeyAndPath walks down from the root to the slot holding key, or – if key is
// not present – to the leaf slot where key would have to be inserted.
func (tree Tree[T]) findKeyAndPath(key string, pathBuf slotPath[T]) (found bool, path slotPath[T]) {
	path = pathBuf[:0] // we track the path to the key's slot
	if tree.root == nil {
		return
	}
	var index int
	var node *xnode[T] = tree.root // walking nodes, start search at the top
	for !node.isLeaf() {
		found, index = node.findSlot(key)
		path = append(path, slot[T]{node: node, index: index})
		if found {
			return // we have an exact match
		}
		node = node.children[index]
	}
	found, index = node.findSlot(key)
	path = append(path, slot[T]{node: node, index: index})
	tracer().Debugf("slot path for key=%v -> %s", key, path)
	return
}
