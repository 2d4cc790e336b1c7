package pavl

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHooks(t *testing.T) {
	var kinds []EventKind
	var keys []any
	cfg := DefaultConfig()
	cfg.PruneThreshold = 0.5
	cfg.PruneStreakLimit = 1
	cfg.Hooks = []Hook{func(e Event) {
		kinds = append(kinds, e.Kind)
		keys = append(keys, e.Key)
	}}
	tree := newTestTree(t, cfg)

	tree.Insert(1, "A")
	tree.Insert(2, "B")
	tree.Insert(3, "C")
	assert.Equal(t, []EventKind{EventInsert, EventInsert, EventRotateLeft, EventInsert}, kinds)
	assert.Equal(t, []any{1, 2, 1, 3}, keys)

	kinds, keys = nil, nil
	_, err := tree.Measure(2, 0.3, Negative)
	require.NoError(t, err)
	assert.Equal(t, []EventKind{EventToggle, EventMeasure, EventPrune}, kinds)

	kinds, keys = nil, nil
	tree.Insert(3, "C2")
	tree.Delete(1)
	tree.Delete(1)
	assert.Equal(t, []EventKind{EventUpdate, EventToggle, EventDelete}, kinds)
	assert.Equal(t, []any{3, 3, 1}, keys)
}

func TestLogHook(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg := DefaultConfig()
	cfg.PruneStreakLimit = 1
	cfg.Hooks = []Hook{LogHook(logger)}
	tree := newTestTree(t, cfg)
	tree.Insert(7, "x")
	_, err := tree.Measure(7, 0.1, Negative)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "system=pavl")
	assert.Contains(t, out, "msg=insert")
	assert.Contains(t, out, `msg="measured entry"`)
	assert.Contains(t, out, `msg="pruned entry"`)
	assert.Contains(t, out, "key=7")
	assert.Contains(t, out, "polarity=negative")
}

func TestEventKindString(t *testing.T) {
	assert.Equal(t, "rotate_right", EventRotateRight.String())
	assert.Equal(t, "EventKind(42)", EventKind(42).String())
}
