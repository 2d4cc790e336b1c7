package pavl

import (
	"cmp"
	"fmt"
)

func (t *tree[K, V]) Len() int {
	if t == nil || t.root == nil {
		return 0
	}
	return t.size
}

func (t *tree[K, V]) Height() int {
	return t.root.subtreeHeight()
}

func (t *tree[K, V]) Stats() Stats {
	s := t.stats
	s.Len = t.Len()
	return s
}

func (t *tree[K, V]) Insert(key K, value V, opts ...EntryOption) bool {
	o := entryOptions{quality: defaultQuality, polarity: Positive}
	for _, opt := range opts {
		opt(&o)
	}
	o.quality = clampQuality(o.quality)

	if t.root == nil {
		t.root = newNode(key, value, o)
		t.root.tag = Stable
		t.size++
		t.notify(EventInsert, t.root)
		return false
	}

	var (
		parent *node[K, V]
		c      int
	)
	for cur := t.root; cur != nil; {
		parent = cur
		c = cmp.Compare(key, cur.key)
		switch {
		case c < 0:
			cur = cur.left
		case c > 0:
			cur = cur.right
		default:
			t.update(cur, value, o)
			return true
		}
	}

	n := newNode(key, value, o)
	n.parent = parent
	if c < 0 {
		parent.left = n
	} else {
		parent.right = n
	}
	t.size++
	t.rebalance(parent)
	t.notify(EventInsert, n)
	return false
}

func (t *tree[K, V]) update(n *node[K, V], value V, o entryOptions) {
	n.apply(value, o)
	t.stats.Updates++
	t.notify(EventUpdate, n)
	if t.cfg.ToggleOnUpdate {
		t.toggle(n)
	}
}

func (t *tree[K, V]) Find(key K) (V, error) {
	n := t.find(key)
	if n == nil {
		var zero V
		return zero, fmt.Errorf("find %v: %w", key, ErrKeyNotFound)
	}
	return n.value, nil
}

func (t *tree[K, V]) Lookup(key K) (Entry[K, V], bool) {
	n := t.find(key)
	if n == nil {
		return Entry[K, V]{}, false
	}
	return n.entry(), true
}

func (t *tree[K, V]) Delete(key K) bool {
	z := t.find(key)
	if z == nil {
		return false
	}
	t.notify(EventDelete, z)
	t.remove(z)
	return true
}

// remove splices z out of the tree. A node with two children is replaced by
// its in-order successor; rebalancing starts where the shape physically changed.
func (t *tree[K, V]) remove(z *node[K, V]) {
	var start *node[K, V]
	switch {
	case z.left == nil:
		start = z.parent
		t.replaceChild(z.parent, z, z.right)
	case z.right == nil:
		start = z.parent
		t.replaceChild(z.parent, z, z.left)
	default:
		y := z.right.minimum()
		if y.parent != z {
			start = y.parent
			t.replaceChild(y.parent, y, y.right)
			y.right = z.right
			y.right.parent = y
		} else {
			start = y
		}
		t.replaceChild(z.parent, z, y)
		y.left = z.left
		y.left.parent = y
	}
	z.left, z.right, z.parent = nil, nil, nil
	t.size--

	if start == nil {
		start = t.root
	}
	t.rebalance(start)
}

// rebalance walks from n to the root fixing heights and rotating wherever
// the balance factor leaves [-1, 1].
func (t *tree[K, V]) rebalance(n *node[K, V]) {
	for cur := n; cur != nil; cur = cur.parent {
		cur.updateHeight()
		switch bf := cur.balance(); {
		case bf > 1:
			if cur.left.balance() < 0 {
				t.rotateLeft(cur.left)
			}
			cur = t.rotateRight(cur)
		case bf < -1:
			if cur.right.balance() > 0 {
				t.rotateRight(cur.right)
			}
			cur = t.rotateLeft(cur)
		}
		cur.stabilizeChildren()
	}
	if t.root != nil {
		t.root.tag = Stable
	}
}

// rotateLeft promotes x.right and returns it.
func (t *tree[K, V]) rotateLeft(x *node[K, V]) *node[K, V] {
	y := x.right
	if y == nil {
		return x
	}
	x.right = y.left
	if y.left != nil {
		y.left.parent = x
	}
	t.replaceChild(x.parent, x, y)
	y.left = x
	x.parent = y

	x.updateHeight()
	y.updateHeight()
	t.retag(x, y)
	t.notify(EventRotateLeft, x)
	return y
}

// rotateRight promotes x.left and returns it.
func (t *tree[K, V]) rotateRight(x *node[K, V]) *node[K, V] {
	y := x.left
	if y == nil {
		return x
	}
	x.left = y.right
	if y.right != nil {
		y.right.parent = x
	}
	t.replaceChild(x.parent, x, y)
	y.right = x
	x.parent = y

	x.updateHeight()
	y.updateHeight()
	t.retag(x, y)
	t.notify(EventRotateRight, x)
	return y
}

// retag applies the rotation rule: the demoted node turns active, the
// promoted node stable, and the active node's children stable.
func (t *tree[K, V]) retag(child, parent *node[K, V]) {
	child.tag = Active
	parent.tag = Stable
	child.stabilizeChildren()
	t.stats.Rotations++
}

// toggle flips n's tag and restores the tag invariant around it: the root
// and any child of an active node stay stable.
func (t *tree[K, V]) toggle(n *node[K, V]) {
	n.tag = n.tag.flip()
	if n == t.root || (n.parent != nil && n.parent.tag == Active) {
		n.tag = Stable
	}
	n.stabilizeChildren()
	t.stats.Toggles++
	t.notify(EventToggle, n)
}

func (t *tree[K, V]) forEach(n *node[K, V], callback func(*node[K, V]) bool) traverseAction {
	if n == nil {
		return traverseContinue
	}
	if t.forEach(n.left, callback) == traverseStop {
		return traverseStop
	}
	if !callback(n) {
		return traverseStop
	}
	return t.forEach(n.right, callback)
}
