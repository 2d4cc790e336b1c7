package pavl

import (
	"cmp"
	"errors"
	"fmt"
	"math"
)

const (
	Stable Tag = iota
	Active
)

const (
	// Unchanged keeps the polarity a node already carries.
	Unchanged Polarity = iota
	Positive
	Negative
)

const (
	DefaultPruneThreshold   = 0.3
	DefaultPruneStreakLimit = 2

	defaultQuality = 1.0
)

var (
	ErrKeyNotFound   = errors.New("key not found")
	ErrNoMoreNodes   = errors.New("there are no more nodes in the tree")
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrInvariant     = errors.New("tree invariant violated")
)

type (
	// Tag is the two-valued structural state carried by every node.
	Tag int

	// Polarity classifies a payload as signal or noise.
	Polarity int

	// Config is fixed at construction time.
	Config struct {
		// PruneThreshold is the quality below which a measurement fails. Must be in [0,1].
		PruneThreshold float64
		// PruneStreakLimit is the number of consecutive failed measurements
		// after which the entry is deleted. Must be at least 1.
		PruneStreakLimit int

		ToggleOnMeasure bool
		ToggleOnUpdate  bool

		Hooks []Hook
	}

	// Entry is a read-only snapshot of a node.
	Entry[K cmp.Ordered, V any] struct {
		Key        K
		Value      V
		Tag        Tag
		Quality    float64
		Polarity   Polarity
		FailStreak int
		Height     int
	}

	// Outcome describes what a single measurement did.
	Outcome struct {
		Passed     bool
		FailStreak int
		Pruned     bool
		Tag        Tag
	}

	Stats struct {
		Len          int
		Rotations    uint64
		Toggles      uint64
		Updates      uint64
		Measurements uint64
		Pruned       uint64
	}

	EntryOption func(*entryOptions)

	entryOptions struct {
		quality  float64
		polarity Polarity
	}

	node[K cmp.Ordered, V any] struct {
		key   K
		value V

		tag        Tag
		quality    float64
		polarity   Polarity
		failStreak int
		height     int

		left, right *node[K, V]
		// back-reference for upward walks, never owning
		parent *node[K, V]
	}

	tree[K cmp.Ordered, V any] struct {
		root  *node[K, V]
		size  int
		cfg   Config
		stats Stats
	}

	traverseAction int
)

const (
	traverseStop traverseAction = iota
	traverseContinue
)

// DefaultConfig returns threshold 0.3, a streak limit of two and tag
// toggling on both measurement and duplicate insert.
func DefaultConfig() Config {
	return Config{
		PruneThreshold:   DefaultPruneThreshold,
		PruneStreakLimit: DefaultPruneStreakLimit,
		ToggleOnMeasure:  true,
		ToggleOnUpdate:   true,
	}
}

func (c Config) Validate() error {
	if math.IsNaN(c.PruneThreshold) || c.PruneThreshold < 0 || c.PruneThreshold > 1 {
		return fmt.Errorf("%w: prune threshold %v outside [0,1]", ErrInvalidConfig, c.PruneThreshold)
	}
	if c.PruneStreakLimit < 1 {
		return fmt.Errorf("%w: prune streak limit %d must be at least 1", ErrInvalidConfig, c.PruneStreakLimit)
	}
	for i, h := range c.Hooks {
		if h == nil {
			return fmt.Errorf("%w: hook %d is nil", ErrInvalidConfig, i)
		}
	}
	return nil
}

// WithQuality sets the quality of an inserted or updated entry. Values are clamped to [0,1].
func WithQuality(q float64) EntryOption {
	return func(o *entryOptions) {
		o.quality = q
	}
}

// WithPolarity sets the polarity of an inserted or updated entry. Unchanged
// keeps the current polarity on update and means Positive for a new entry.
func WithPolarity(p Polarity) EntryOption {
	return func(o *entryOptions) {
		o.polarity = p
	}
}

func newNode[K cmp.Ordered, V any](key K, value V, o entryOptions) *node[K, V] {
	p := o.polarity
	if p == Unchanged {
		p = Positive
	}
	return &node[K, V]{
		key:      key,
		value:    value,
		tag:      Active,
		quality:  o.quality,
		polarity: p,
		height:   1,
	}
}

func clampQuality(q float64) float64 {
	switch {
	case math.IsNaN(q), q < 0:
		return 0
	case q > 1:
		return 1
	}
	return q
}

func (t Tag) String() string {
	switch t {
	case Stable:
		return "stable"
	case Active:
		return "active"
	}
	return fmt.Sprintf("Tag(%d)", int(t))
}

func (t Tag) flip() Tag {
	if t == Active {
		return Stable
	}
	return Active
}

func (p Polarity) String() string {
	switch p {
	case Unchanged:
		return "unchanged"
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	}
	return fmt.Sprintf("Polarity(%d)", int(p))
}

// Symbol returns "+" or "-", the notation the message encoders use.
func (p Polarity) Symbol() string {
	switch p {
	case Positive:
		return "+"
	case Negative:
		return "-"
	}
	return "?"
}

// ParsePolarity accepts "+", "-", "positive", "negative" and the empty string (Unchanged).
func ParsePolarity(s string) (Polarity, error) {
	switch s {
	case "":
		return Unchanged, nil
	case "+", "positive", "POSITIVE":
		return Positive, nil
	case "-", "negative", "NEGATIVE":
		return Negative, nil
	}
	return Unchanged, fmt.Errorf("unknown polarity %q", s)
}
