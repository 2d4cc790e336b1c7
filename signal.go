package pavl

import "cmp"

type (
	// inorder walks a subtree in ascending key order with an explicit stack,
	// yielding only the nodes accepted by the filter.
	inorder[K cmp.Ordered, V any] struct {
		stack    []*node[K, V]
		accept   func(*node[K, V]) bool
		nextNode *node[K, V]
	}

	iterator[K cmp.Ordered, V any, T any] struct {
		walk    *inorder[K, V]
		project func(*node[K, V]) T
	}
)

func newInorder[K cmp.Ordered, V any](root *node[K, V], accept func(*node[K, V]) bool) *inorder[K, V] {
	w := &inorder[K, V]{accept: accept}
	w.pushLeft(root)
	w.advance()
	return w
}

func (w *inorder[K, V]) pushLeft(n *node[K, V]) {
	for ; n != nil; n = n.left {
		w.stack = append(w.stack, n)
	}
}

func (w *inorder[K, V]) advance() {
	w.nextNode = nil
	for len(w.stack) > 0 {
		n := w.stack[len(w.stack)-1]
		w.stack = w.stack[:len(w.stack)-1]
		w.pushLeft(n.right)
		if w.accept == nil || w.accept(n) {
			w.nextNode = n
			return
		}
	}
}

func (it *iterator[K, V, T]) HasNext() bool {
	return it != nil && it.walk.nextNode != nil
}

func (it *iterator[K, V, T]) Next() (T, error) {
	if !it.HasNext() {
		var zero T
		return zero, ErrNoMoreNodes
	}
	cur := it.walk.nextNode
	it.walk.advance()
	return it.project(cur), nil
}

// Iterator walks every entry in ascending key order. Mutating the tree while
// an iterator is live leaves the rest of the walk unspecified.
func (t *tree[K, V]) Iterator() Iterator[Entry[K, V]] {
	return &iterator[K, V, Entry[K, V]]{
		walk:    newInorder(t.root, nil),
		project: (*node[K, V]).entry,
	}
}

func (t *tree[K, V]) Signal(minQuality float64) Iterator[V] {
	return &iterator[K, V, V]{
		walk: newInorder(t.root, func(n *node[K, V]) bool {
			return n.isSignal(minQuality)
		}),
		project: func(n *node[K, V]) V {
			return n.value
		},
	}
}

func (t *tree[K, V]) ExtractSignal(minQuality float64) []V {
	values := make([]V, 0)
	t.forEach(t.root, func(n *node[K, V]) bool {
		if n.isSignal(minQuality) {
			values = append(values, n.value)
		}
		return true
	})
	return values
}
