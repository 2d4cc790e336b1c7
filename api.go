package pavl

import "cmp"

// Tree is an ordered key/value container balanced by AVL rotations. Every
// node carries a structural tag, a quality score and a polarity; entries that
// fail the quality test for PruneStreakLimit consecutive measurements are
// deleted. A Tree is not safe for concurrent use.
type Tree[K cmp.Ordered, V any] interface {
	// Insert adds key or, when it already exists, overwrites its value,
	// quality and polarity in place. It reports whether an existing entry
	// was updated.
	Insert(key K, value V, opts ...EntryOption) bool
	Find(key K) (V, error)
	Lookup(key K) (Entry[K, V], bool)
	// Delete removes key and reports whether it was present.
	Delete(key K) bool
	// Measure records an observation for key. Passing Unchanged keeps the
	// node's polarity. The entry may be deleted as a result.
	Measure(key K, quality float64, polarity Polarity) (Outcome, error)
	// Signal lazily yields, in ascending key order, the values of positive
	// entries whose quality is at least minQuality.
	Signal(minQuality float64) Iterator[V]
	ExtractSignal(minQuality float64) []V
	Iterator() Iterator[Entry[K, V]]
	Len() int
	Height() int
	Stats() Stats
	Verify() error
	Render(label func(Entry[K, V]) string) string
}

type Iterator[T any] interface {
	HasNext() bool
	Next() (T, error)
}

func New[K cmp.Ordered, V any](cfg Config) (Tree[K, V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Hooks = append([]Hook(nil), cfg.Hooks...)
	return &tree[K, V]{cfg: cfg}, nil
}

// MustNew is like New but panics on an invalid Config.
func MustNew[K cmp.Ordered, V any](cfg Config) Tree[K, V] {
	t, err := New[K, V](cfg)
	if err != nil {
		panic(err)
	}
	return t
}
