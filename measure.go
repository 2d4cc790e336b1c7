package pavl

import "fmt"

// Measure overwrites the quality (and, unless polarity is Unchanged, the
// polarity) of key, then applies the pruning rule. A measurement fails when
// quality is below the prune threshold or the node is negative; the entry is
// deleted once PruneStreakLimit failures happen in a row. A passing
// measurement resets the streak.
func (t *tree[K, V]) Measure(key K, quality float64, polarity Polarity) (Outcome, error) {
	n := t.find(key)
	if n == nil {
		return Outcome{}, fmt.Errorf("measure %v: %w", key, ErrKeyNotFound)
	}
	t.stats.Measurements++

	n.quality = clampQuality(quality)
	if polarity != Unchanged {
		n.polarity = polarity
	}
	if t.cfg.ToggleOnMeasure {
		t.toggle(n)
	}

	out := Outcome{Tag: n.tag}
	// NaN never passes
	if !(quality >= t.cfg.PruneThreshold) || n.polarity == Negative {
		n.failStreak++
	} else {
		n.failStreak = 0
		out.Passed = true
	}
	out.FailStreak = n.failStreak
	t.notify(EventMeasure, n)

	if !out.Passed && n.failStreak >= t.cfg.PruneStreakLimit {
		t.notify(EventPrune, n)
		t.remove(n)
		t.stats.Pruned++
		out.Pruned = true
	}
	return out, nil
}
