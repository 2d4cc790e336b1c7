package pavl

import (
	"cmp"
	"fmt"

	"github.com/xlab/treeprint"
)

var sides = [...]string{"L", "R"}

// Label is the default Render label: key, tag, polarity, value and quality.
func Label[K cmp.Ordered, V any](e Entry[K, V]) string {
	return fmt.Sprintf("[%v] %s %s %v q=%.2f", e.Key, e.Tag, e.Polarity.Symbol(), e.Value, e.Quality)
}

// Render draws the tree shape. Children are marked L or R.
func (t *tree[K, V]) Render(label func(Entry[K, V]) string) string {
	if label == nil {
		label = Label[K, V]
	}
	if t.root == nil {
		return treeprint.NewWithRoot("(empty)").String()
	}
	out := treeprint.NewWithRoot(label(t.root.entry()))
	renderChildren(out, t.root, label)
	return out.String()
}

func renderChildren[K cmp.Ordered, V any](branch treeprint.Tree, n *node[K, V], label func(Entry[K, V]) string) {
	for i, c := range [...]*node[K, V]{n.left, n.right} {
		if c == nil {
			continue
		}
		side := sides[i]
		if c.left == nil && c.right == nil {
			branch.AddMetaNode(side, label(c.entry()))
			continue
		}
		renderChildren(branch.AddMetaBranch(side, label(c.entry())), c, label)
	}
}
