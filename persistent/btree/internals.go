package btree

import (
	"fmt"
	"sort"
	"strings"
)

type xitem[T any] struct {
	key   string
	value T
}

// xnode is a node of a B-tree. Leaf nodes have no children, inner nodes have
// len(items)+1 children.
type xnode[T any] struct {
	items    []xitem[T]
	children []*xnode[T]
}

func (node *xnode[T]) isLeaf() bool {
	return len(node.children) == 0
}

func (node *xnode[T]) overfull(highWaterMark uint) bool {
	return uint(len(node.items)) > highWaterMark
}

func (node *xnode[T]) underfull(lowWaterMark uint) bool {
	return uint(len(node.items)) < lowWaterMark
}

func (node *xnode[T]) clone() *xnode[T] {
	cow := &xnode[T]{}
	cow.items = make([]xitem[T], len(node.items))
	copy(cow.items, node.items)
	if node.children != nil {
		cow.children = make([]*xnode[T], len(node.children))
		copy(cow.children, node.children)
	}
	return cow
}

func (node *xnode[T]) findSlot(key string) (bool, int) {
	items, itemcnt := node.items, len(node.items)
	slotinx := sort.Search(itemcnt, func(i int) bool {
		return items[i].key >= key // sort.Search will find the smallest i for which this is true
	})
	return slotinx < itemcnt && key == items[slotinx].key, slotinx
}

func (node *xnode[T]) withReplacedValue(item xitem[T], at int) *xnode[T] {
	assertThat(at < len(node.items), "given item index out of range: %d ≤ %d", len(node.items), at)
	cow := node.clone()
	cow.items[at].value = item.value
	return cow
}

func (node *xnode[T]) withInsertedItem(item xitem[T], at int) xnode[T] {
	assertThat(at <= len(node.items), "given item index out of range: %d < %d", len(node.items), at)
	assertThat(node.isLeaf(), "attempt to insert item at non-leaf")
	items := make([]xitem[T], 0, len(node.items)+1)
	items = append(items, node.items[:at]...)
	items = append(items, item)
	items = append(items, node.items[at:]...)
	return xnode[T]{items: items}
}

func (node *xnode[T]) withDeletedItem(at int) xnode[T] {
	assertThat(at < len(node.items), "given item index out of range: %d ≤ %d", len(node.items), at)
	assertThat(node.isLeaf(), "attempt to delete item from non-leaf")
	items := make([]xitem[T], 0, len(node.items)-1)
	items = append(items, node.items[:at]...)
	items = append(items, node.items[at+1:]...)
	return xnode[T]{items: items}
}

func (node *xnode[T]) rightmost() xitem[T] {
	for !node.isLeaf() {
		node = node.children[len(node.children)-1]
	}
	assertThat(len(node.items) > 0, "internal inconsistency: empty leaf")
	return node.items[len(node.items)-1]
}

// splitChild splits the overfull child at position i of node, which has to be
// a clone owned by the caller. The median item of the child moves up into node.
func (node *xnode[T]) splitChild(i int) *xnode[T] {
	child := node.children[i]
	half := len(child.items) / 2
	median := child.items[half]
	left := &xnode[T]{items: append([]xitem[T](nil), child.items[:half]...)}
	right := &xnode[T]{items: append([]xitem[T](nil), child.items[half+1:]...)}
	if !child.isLeaf() {
		left.children = append([]*xnode[T](nil), child.children[:half+1]...)
		right.children = append([]*xnode[T](nil), child.children[half+1:]...)
	}
	items := make([]xitem[T], 0, len(node.items)+1)
	items = append(items, node.items[:i]...)
	items = append(items, median)
	items = append(items, node.items[i:]...)
	children := make([]*xnode[T], 0, len(node.children)+1)
	children = append(children, node.children[:i]...)
	children = append(children, left, right)
	children = append(children, node.children[i+1:]...)
	node.items, node.children = items, children
	tracer().Debugf("split: median %q, left = %s, right = %s", median.key, left, right)
	return node
}

// balance re-establishes the low-water-mark for child i of node, which has to be
// a clone owned by the caller. It steals from a sibling, if possible, otherwise
// merges the child with a sibling.
func (node *xnode[T]) balance(i int, lowWaterMark uint) *xnode[T] {
	if !node.children[i].underfull(lowWaterMark) {
		return node
	}
	tracer().Debugf("balance: child %d is underfull: %s", i, node.children[i])
	if i > 0 && !node.children[i-1].underfull(lowWaterMark+1) {
		return node.rotateRight(i) // steal item from left sibling
	}
	if i < len(node.children)-1 && !node.children[i+1].underfull(lowWaterMark+1) {
		return node.rotateLeft(i) // steal item from right sibling
	}
	if i > 0 {
		return node.merge(i - 1)
	}
	return node.merge(i)
}

func (node *xnode[T]) rotateRight(i int) *xnode[T] {
	lsbl, child := node.children[i-1].clone(), node.children[i].clone()
	last := len(lsbl.items) - 1
	child.items = append([]xitem[T]{node.items[i-1]}, child.items...)
	node.items[i-1] = lsbl.items[last]
	lsbl.items = lsbl.items[:last]
	if !lsbl.isLeaf() {
		child.children = append([]*xnode[T]{lsbl.children[last+1]}, child.children...)
		lsbl.children = lsbl.children[:last+1]
	}
	node.children[i-1], node.children[i] = lsbl, child
	return node
}

func (node *xnode[T]) rotateLeft(i int) *xnode[T] {
	child, rsbl := node.children[i].clone(), node.children[i+1].clone()
	child.items = append(child.items, node.items[i])
	node.items[i] = rsbl.items[0]
	rsbl.items = rsbl.items[1:]
	if !rsbl.isLeaf() {
		child.children = append(child.children, rsbl.children[0])
		rsbl.children = rsbl.children[1:]
	}
	node.children[i], node.children[i+1] = child, rsbl
	return node
}

// merge merges children i and i+1, pulling down item i of node.
func (node *xnode[T]) merge(i int) *xnode[T] {
	left, right := node.children[i], node.children[i+1]
	merged := &xnode[T]{}
	merged.items = make([]xitem[T], 0, len(left.items)+len(right.items)+1)
	merged.items = append(merged.items, left.items...)
	merged.items = append(merged.items, node.items[i])
	merged.items = append(merged.items, right.items...)
	if !left.isLeaf() {
		merged.children = append(merged.children, left.children...)
		merged.children = append(merged.children, right.children...)
	}
	node.items = append(node.items[:i], node.items[i+1:]...)
	node.children = append(node.children[:i+1], node.children[i+2:]...)
	node.children[i] = merged
	return node
}

func (node *xnode[T]) each(f func(string, T) bool) bool {
	for i, item := range node.items {
		if !node.isLeaf() && !node.children[i].each(f) {
			return false
		}
		if !f(item.key, item.value) {
			return false
		}
	}
	if !node.isLeaf() {
		return node.children[len(node.children)-1].each(f)
	}
	return true
}

func (node *xnode[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, item := range node.items {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(item.key)
	}
	sb.WriteByte(']')
	return sb.String()
}

// --- Helpers ---------------------------------------------------------------

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("btree: "+msg, msgargs...)
		panic(msg)
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
