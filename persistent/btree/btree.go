package btree

/*
Remarks:
--------

- 'cow' stands for copy-on-write and is used throughout the code for variables holding clones of nodes.

- A new modified incarnation of a tree always is reflected by a new tree.root.

- Nodes (except the root) hold between lowWaterMark and highWaterMark items.

*/

const defaultMinDegree = 3

// Tree is an in-memory B-tree. An empty instance is usable as an empty tree, i.e.
// this is legal:
//
//     tree := btree.Tree[int]{}.With("1", 42)
//
// returning a tree containing a single node ⟨"1"⟩ associated with value 42.
//
type Tree[T any] struct {
	root          *xnode[T]
	depth         uint
	count         int
	lowWaterMark  uint
	highWaterMark uint
}

// Immutable constructs a B-tree with options, if you need any.
// Use it like this:
//
//     tree := btree.Immutable[string](Degree(16))
//     tree = tree.With("42", "Galaxy")
//     value, found := tree.Find("42")   // returns "Galaxy"
//
func Immutable[T any](opts ...Option) Tree[T] {
	tree := Tree[T]{}.withDegree(defaultMinDegree)
	for _, option := range opts {
		tree = tree.withDegree(option.degree)
	}
	return tree
}

// Option is a type to help initializing B-trees at creation time.
type Option struct {
	degree int
}

// Degree is an option to set the minimum number of children an inner node in the
// tree owns. The lower bound for the degree is 2.
func Degree(n int) Option {
	return Option{degree: n}
}

func (tree Tree[T]) withDegree(n int) Tree[T] {
	t := max(2, n)
	tree.lowWaterMark = uint(t - 1)
	tree.highWaterMark = uint(2*t - 1)
	return tree
}

func (tree Tree[T]) init() Tree[T] {
	if tree.highWaterMark == 0 {
		return tree.withDegree(defaultMinDegree)
	}
	return tree
}

// --- API -------------------------------------------------------------------

// Len returns the number of keys in the tree.
func (tree Tree[T]) Len() int {
	return tree.count
}

// Find locates a key in a tree, if present, and returns the value associated with the key.
// If `key` is not found, the zero value for type T will be returned, together with found=false.
func (tree Tree[T]) Find(key string) (T, bool) {
	var path slotPath[T] = make([]slot[T], 0, tree.depth)
	var found bool
	if found, path = tree.findKeyAndPath(key, path); found {
		return path.last().item().value, true
	}
	var none T
	return none, false
}

// With returns a copy of a tree with a new key inserted, which is associated with `value`.
// If an entry for key is already present in tree, the associated value will be replaced
// (in a new incarnation of the tree, nevertheless).
func (tree Tree[T]) With(key string, value T) Tree[T] {
	tree = tree.init()
	item := xitem[T]{key, value}
	if tree.root == nil { // virgin tree => insert first node and return
		tree.root = &xnode[T]{items: []xitem[T]{item}}
		tree.depth, tree.count = 1, 1
		return tree
	}
	newRoot, added := tree.insert(tree.root, item)
	if added {
		tree.count++
	}
	if newRoot.overfull(tree.highWaterMark) {
		tracer().Debugf("insert: splitting root %s", newRoot)
		top := &xnode[T]{children: []*xnode[T]{newRoot}}
		newRoot = top.splitChild(0)
		tree.depth++
	}
	tree.root = newRoot
	return tree
}

// WithDeleted returns a copy of a tree with key deleted, if present, together with its
// associated value. If key is not found, tree is returned unchanged.
func (tree Tree[T]) WithDeleted(key string) Tree[T] {
	if tree.root == nil {
		return tree
	}
	tree = tree.init()
	newRoot, deleted := tree.delete(tree.root, key)
	if !deleted {
		return tree // no need for modification
	}
	tree.count--
	switch { // catch border cases where root is empty after deletion
	case len(newRoot.items) == 0 && newRoot.isLeaf():
		newRoot = nil
		tree.depth = 0
	case len(newRoot.items) == 0:
		newRoot = newRoot.children[0]
		tree.depth--
	}
	tree.root = newRoot
	return tree
}

// Each calls f for every key/value pair in key order, until f returns false.
func (tree Tree[T]) Each(f func(string, T) bool) {
	if tree.root != nil {
		tree.root.each(f)
	}
}

// Keys returns all keys in order.
func (tree Tree[T]) Keys() []string {
	keys := make([]string, 0, tree.count)
	tree.Each(func(k string, _ T) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

// --- Internals -------------------------------------------------------------

func (tree Tree[T]) insert(node *xnode[T], item xitem[T]) (*xnode[T], bool) {
	found, index := node.findSlot(item.key)
	if found {
		return node.withReplacedValue(item, index), false
	}
	if node.isLeaf() {
		cow := node.withInsertedItem(item, index)
		return &cow, true
	}
	child, added := tree.insert(node.children[index], item)
	cow := node.clone()
	cow.children[index] = child
	if child.overfull(tree.highWaterMark) {
		tracer().Debugf("insert: child is overfull: %s", child)
		return cow.splitChild(index), added
	}
	return cow, added
}

func (tree Tree[T]) delete(node *xnode[T], key string) (*xnode[T], bool) {
	found, index := node.findSlot(key)
	if node.isLeaf() {
		if !found {
			return node, false
		}
		cow := node.withDeletedItem(index)
		return &cow, true
	}
	cow := node.clone()
	if found { // swap item with rightmost item of left subtree
		pred := node.children[index].rightmost()
		child, _ := tree.delete(node.children[index], pred.key)
		cow.items[index] = pred
		cow.children[index] = child
	} else {
		child, deleted := tree.delete(node.children[index], key)
		if !deleted {
			return node, false
		}
		cow.children[index] = child
	}
	return cow.balance(index, tree.lowWaterMark), true
}
