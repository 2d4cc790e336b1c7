package pavl

import (
	"cmp"
	"fmt"
)

// Verify checks BST order, cached heights, the AVL balance bound, parent
// links, the entry count and the tag invariant (stable root, no active node
// with an active child).
func (t *tree[K, V]) Verify() error {
	if t.root == nil {
		if t.size != 0 {
			return fmt.Errorf("%w: empty tree reports %d entries", ErrInvariant, t.size)
		}
		return nil
	}
	if t.root.parent != nil {
		return fmt.Errorf("%w: root %v has a parent", ErrInvariant, t.root.key)
	}
	if t.root.tag != Stable {
		return fmt.Errorf("%w: root %v is %s", ErrInvariant, t.root.key, t.root.tag)
	}

	count := 0
	if _, err := verifyNode(t.root, nil, nil, &count); err != nil {
		return err
	}
	if count != t.size {
		return fmt.Errorf("%w: counted %d entries, size is %d", ErrInvariant, count, t.size)
	}
	return nil
}

func verifyNode[K cmp.Ordered, V any](n *node[K, V], lo, hi *K, count *int) (int, error) {
	if n == nil {
		return 0, nil
	}
	*count++

	if lo != nil && !cmp.Less(*lo, n.key) {
		return 0, fmt.Errorf("%w: key %v not greater than %v", ErrInvariant, n.key, *lo)
	}
	if hi != nil && !cmp.Less(n.key, *hi) {
		return 0, fmt.Errorf("%w: key %v not less than %v", ErrInvariant, n.key, *hi)
	}
	for _, c := range [...]*node[K, V]{n.left, n.right} {
		if c == nil {
			continue
		}
		if c.parent != n {
			return 0, fmt.Errorf("%w: key %v has a stale parent link", ErrInvariant, c.key)
		}
		if n.tag == Active && c.tag == Active {
			return 0, fmt.Errorf("%w: active key %v has active child %v", ErrInvariant, n.key, c.key)
		}
	}

	lh, err := verifyNode(n.left, lo, &n.key, count)
	if err != nil {
		return 0, err
	}
	rh, err := verifyNode(n.right, &n.key, hi, count)
	if err != nil {
		return 0, err
	}
	if lh-rh > 1 || rh-lh > 1 {
		return 0, fmt.Errorf("%w: key %v unbalanced (%d vs %d)", ErrInvariant, n.key, lh, rh)
	}
	if h := 1 + max(lh, rh); h != n.height {
		return 0, fmt.Errorf("%w: key %v caches height %d, actual %d", ErrInvariant, n.key, n.height, h)
	}
	return 1 + max(lh, rh), nil
}
