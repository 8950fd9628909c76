package vector

import (
	"fmt"

	"github.com/npillmayer/casematch/maybe"
)

// Vector is an immutable persistent vector. An empty instance is usable as an
// empty vector, i.e. this is legal:
//
//     v := vector.Vector[int]{}.Push(42)
//
type Vector[T any] struct {
	props
	length uint32
	tail   []T
	root   *vnode[T]
}

// Immutable constructs a vector with options, if you need any.
func Immutable[T any](opts ...Option) Vector[T] {
	v := Vector[T]{props: makeProps(defaultBits)}
	for _, option := range opts {
		v.props = option.config(v.props)
	}
	return v
}

// From creates a vector holding the elements of xs.
func From[T any](xs []T, opts ...Option) Vector[T] {
	v := Immutable[T](opts...)
	for _, x := range xs {
		v = v.Push(x)
	}
	return v
}

// Option is a type to help initializing vectors at creation time.
type Option struct {
	config func(props) props
}

// BitsPerLevel is an option to indirectly set the degree of the underlying tree
// for a vector. The degree of the tree will be 2^n. Accepted values are [1…5];
// default is 5, i.e. a degree of 32.
//
// Use it like this:
//
//     vec := vector.Immutable[int](BitsPerLevel(2))
//
func BitsPerLevel(n int) Option {
	conf := func(p props) props {
		if n <= 0 {
			n = 1
		} else if n > 5 {
			n = 5
		}
		return makeProps(uint32(n))
	}
	return Option{config: conf}
}

// --- API -------------------------------------------------------------------

func (v Vector[T]) Len() int {
	return int(v.length)
}

func (v Vector[T]) Last() maybe.Maybe[T] {
	if v.length == 0 {
		return maybe.Nothing[T]()
	}
	return maybe.Just(v.tail[len(v.tail)-1])
}

// Get returns the element at index i. i has to be in range, otherwise Get panics.
func (v Vector[T]) Get(i int) T {
	assertThat(i >= 0 && uint32(i) < v.length, "vector index out of bounds: %d with length %d", i, v.length)
	v.props = v.props.init()
	return v.bucketFor(uint32(i))[uint32(i)&v.mask]
}

// Lookup returns the element at index i, if i is in range.
func (v Vector[T]) Lookup(i int) maybe.Maybe[T] {
	if i < 0 || uint32(i) >= v.length {
		return maybe.Nothing[T]()
	}
	return maybe.Just(v.Get(i))
}

// Set returns a copy of v with the element at index i replaced by value.
// i has to be in range, otherwise Set panics.
func (v Vector[T]) Set(i int, value T) Vector[T] {
	assertThat(i >= 0 && uint32(i) < v.length, "vector index out of bounds: %d with length %d", i, v.length)
	v.props = v.props.init()
	if uint32(i) >= v.tailOffset() {
		newTail := cloneTail(v.tail, len(v.tail))
		newTail[uint32(i)&v.mask] = value
		return Vector[T]{length: v.length, props: v.props, root: v.root, tail: newTail}
	}
	newRoot := v.assoc(v.shift, v.root, uint32(i), value)
	return Vector[T]{length: v.length, props: v.props, root: newRoot, tail: v.tail}
}

func (v Vector[T]) assoc(level uint32, node *vnode[T], i uint32, value T) *vnode[T] {
	cow := node.clone() // copy-on-write
	if level == 0 {
		cow.leafs[i&v.mask] = value
		return cow
	}
	subidx := (i >> level) & v.mask
	cow.children[subidx] = v.assoc(level-v.bits, node.children[subidx], i, value)
	return cow
}

// Push returns a copy of v with value appended.
func (v Vector[T]) Push(value T) Vector[T] {
	v.props = v.props.init()
	if v.length-v.tailOffset() < v.degree { // just append value to tail
		newTail := cloneTail(v.tail, len(v.tail)+1)
		newTail[len(newTail)-1] = value
		return Vector[T]{length: v.length + 1, props: v.props, root: v.root, tail: newTail}
	}
	// tail is full ⇒ have to move tail into tree
	tracer().Debugf("tail is full, moving %v into tree", v.tail)
	tailNode := newLeaf(v.tail)
	newTail := []T{value}
	root := v.root
	if root == nil {
		root = emptyNode[T](v.degree)
	}
	if (v.length >> v.bits) > (1 << v.shift) { // root is full ⇒ increment shift
		newRoot := emptyNode[T](v.degree)
		newRoot.children[0] = root
		newRoot.children[1] = newPath(v.shift, v.bits, v.degree, tailNode)
		return Vector[T]{length: v.length + 1, props: v.props.withShift(v.shift + v.bits),
			root: newRoot, tail: newTail}
	}
	newRoot := v.pushTail(v.shift, root, tailNode)
	return Vector[T]{length: v.length + 1, props: v.props, root: newRoot, tail: newTail}
}

func (v Vector[T]) pushTail(level uint32, parent *vnode[T], tailNode *vnode[T]) *vnode[T] {
	subidx := ((v.length - 1) >> level) & v.mask
	cow := parent.clone()
	if level == v.bits {
		cow.children[subidx] = tailNode
		return cow
	}
	if child := parent.children[subidx]; child != nil {
		cow.children[subidx] = v.pushTail(level-v.bits, child, tailNode)
	} else {
		cow.children[subidx] = newPath(level-v.bits, v.bits, v.degree, tailNode)
	}
	return cow
}

// Pop returns a copy of v with the last element removed. Popping from an empty
// vector panics.
func (v Vector[T]) Pop() Vector[T] {
	assertThat(v.length > 0, "attempt to remove item from empty vector")
	v.props = v.props.init()
	if v.length == 1 {
		return Vector[T]{props: v.props.withShift(v.bits)}
	}
	if v.length-v.tailOffset() > 1 {
		newTail := cloneTail(v.tail, len(v.tail)-1)
		return Vector[T]{length: v.length - 1, props: v.props, root: v.root, tail: newTail}
	}
	newTail := v.bucketFor(v.length - 2)
	newRoot := v.popTail(v.shift, v.root)
	shift := v.shift
	if newRoot == nil {
		newRoot = emptyNode[T](v.degree)
	}
	if shift > v.bits && newRoot.children[1] == nil { // can lower the height
		newRoot = newRoot.children[0]
		shift -= v.bits
	}
	return Vector[T]{length: v.length - 1, props: v.props.withShift(shift), root: newRoot, tail: newTail}
}

func (v Vector[T]) popTail(level uint32, node *vnode[T]) *vnode[T] {
	subidx := ((v.length - 2) >> level) & v.mask
	if level > v.bits {
		newChild := v.popTail(level-v.bits, node.children[subidx])
		if newChild == nil && subidx == 0 {
			return nil
		}
		cow := node.clone()
		cow.children[subidx] = newChild
		return cow
	}
	if subidx == 0 {
		return nil
	}
	cow := node.clone()
	cow.children[subidx] = nil
	return cow
}

// Grow returns a copy of v extended to length n, with new slots set to fill.
// If v already has a length ≥ n, v is returned unchanged.
func (v Vector[T]) Grow(n int, fill T) Vector[T] {
	for v.Len() < n {
		v = v.Push(fill)
	}
	return v
}

// Each calls f for every element in order, until f returns false.
func (v Vector[T]) Each(f func(int, T) bool) {
	v.props = v.props.init()
	for i := uint32(0); i < v.length; i += v.degree {
		bucket := v.bucketFor(i)
		for j, x := range bucket {
			if !f(int(i)+j, x) {
				return
			}
		}
	}
}

// Slice returns the elements of v as a (newly allocated) Go slice.
func (v Vector[T]) Slice() []T {
	s := make([]T, 0, v.length)
	v.Each(func(_ int, x T) bool {
		s = append(s, x)
		return true
	})
	return s
}

func (v Vector[T]) String() string {
	return fmt.Sprintf("%v", v.Slice())
}

// --- Internals -------------------------------------------------------------

// bucketFor returns the leaf bucket (or the tail) holding index i.
func (v Vector[T]) bucketFor(i uint32) []T {
	if i >= v.tailOffset() {
		return v.tail
	}
	node := v.root
	for level := v.shift; level > 0; level -= v.bits {
		node = node.children[(i>>level)&v.mask]
	}
	return node.leafs
}

func (v Vector[T]) tailOffset() uint32 {
	if v.length < v.degree {
		return 0
	}
	return ((v.length - 1) >> v.bits) << v.bits
}
