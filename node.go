package pavl

import "cmp"

func (n *node[K, V]) subtreeHeight() int {
	if n == nil {
		return 0
	}
	return n.height
}

func (n *node[K, V]) updateHeight() int {
	n.height = 1 + max(n.left.subtreeHeight(), n.right.subtreeHeight())
	return n.height
}

// balance is height(left) - height(right); 0 for an absent node.
func (n *node[K, V]) balance() int {
	if n == nil {
		return 0
	}
	return n.left.subtreeHeight() - n.right.subtreeHeight()
}

// stabilizeChildren forces the children of an active node to stable.
func (n *node[K, V]) stabilizeChildren() {
	if n == nil || n.tag != Active {
		return
	}
	if n.left != nil {
		n.left.tag = Stable
	}
	if n.right != nil {
		n.right.tag = Stable
	}
}

// find the minimum node under n
func (n *node[K, V]) minimum() *node[K, V] {
	for n.left != nil {
		n = n.left
	}
	return n
}

func (n *node[K, V]) isSignal(minQuality float64) bool {
	return n.polarity == Positive && n.quality >= minQuality
}

func (n *node[K, V]) entry() Entry[K, V] {
	return Entry[K, V]{
		Key:        n.key,
		Value:      n.value,
		Tag:        n.tag,
		Quality:    n.quality,
		Polarity:   n.polarity,
		FailStreak: n.failStreak,
		Height:     n.height,
	}
}

func (n *node[K, V]) apply(value V, o entryOptions) {
	n.value = value
	n.quality = o.quality
	if o.polarity != Unchanged {
		n.polarity = o.polarity
	}
}

func (t *tree[K, V]) find(key K) *node[K, V] {
	cur := t.root
	for cur != nil {
		switch c := cmp.Compare(key, cur.key); {
		case c < 0:
			cur = cur.left
		case c > 0:
			cur = cur.right
		default:
			return cur
		}
	}
	return nil
}

// replaceChild puts n where old hangs under parent, fixing the root pointer
// when parent is nil.
func (t *tree[K, V]) replaceChild(parent, old, n *node[K, V]) {
	switch {
	case parent == nil:
		t.root = n
	case parent.left == old:
		parent.left = n
	default:
		parent.right = n
	}
	if n != nil {
		n.parent = parent
	}
}
