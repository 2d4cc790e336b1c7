package pavl

import (
	"fmt"
	"log/slog"
)

const (
	EventInsert EventKind = iota
	EventUpdate
	EventRotateLeft
	EventRotateRight
	EventToggle
	EventMeasure
	EventPrune
	EventDelete
)

type (
	EventKind int

	// Event is passed to every registered Hook. Key holds the key of the node
	// concerned; for rotations it is the node that moved down.
	Event struct {
		Kind       EventKind
		Key        any
		Tag        Tag
		Quality    float64
		Polarity   Polarity
		FailStreak int
	}

	// Hook observes tree events. Hooks run synchronously inside the operation
	// that fired them and must not call back into the tree.
	Hook func(Event)
)

func (k EventKind) String() string {
	switch k {
	case EventInsert:
		return "insert"
	case EventUpdate:
		return "update"
	case EventRotateLeft:
		return "rotate_left"
	case EventRotateRight:
		return "rotate_right"
	case EventToggle:
		return "toggle"
	case EventMeasure:
		return "measure"
	case EventPrune:
		return "prune"
	case EventDelete:
		return "delete"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

func (t *tree[K, V]) notify(kind EventKind, n *node[K, V]) {
	if len(t.cfg.Hooks) == 0 {
		return
	}
	e := Event{
		Kind:       kind,
		Key:        n.key,
		Tag:        n.tag,
		Quality:    n.quality,
		Polarity:   n.polarity,
		FailStreak: n.failStreak,
	}
	for _, h := range t.cfg.Hooks {
		h(e)
	}
}

// LogHook reports prunes at info level and every other event at debug level.
func LogHook(logger *slog.Logger) Hook {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("system", "pavl")
	return func(e Event) {
		switch e.Kind {
		case EventPrune:
			log.Info("pruned entry", "key", e.Key, "quality", e.Quality, "polarity", e.Polarity.String(), "fail_streak", e.FailStreak)
		case EventMeasure:
			log.Debug("measured entry", "key", e.Key, "quality", e.Quality, "polarity", e.Polarity.String(), "tag", e.Tag.String(), "fail_streak", e.FailStreak)
		default:
			log.Debug(e.Kind.String(), "key", e.Key, "tag", e.Tag.String())
		}
	}
}
