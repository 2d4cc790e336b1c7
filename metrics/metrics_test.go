package metrics

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/e11jah/pavl"
)

func newTree(t *testing.T) (pavl.Tree[int, string], *Metrics, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m := New(reg)
	cfg := pavl.DefaultConfig()
	cfg.PruneThreshold = 0.5
	cfg.PruneStreakLimit = 1
	cfg.Hooks = []pavl.Hook{m.Hook()}
	tree, err := pavl.New[int, string](cfg)
	require.NoError(t, err)
	return tree, m, reg
}

func TestHookCounts(t *testing.T) {
	tree, m, _ := newTree(t)
	for k := 1; k <= 7; k++ {
		tree.Insert(k, "")
	}
	tree.Insert(4, "again")

	_, err := tree.Measure(1, 0.9, pavl.Positive)
	require.NoError(t, err)
	_, err = tree.Measure(2, 0.1, pavl.Positive)
	require.NoError(t, err)
	tree.Delete(7)

	assert.Equal(t, 7.0, testutil.ToFloat64(m.inserts.WithLabelValues("new")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.inserts.WithLabelValues("update")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.rotations.WithLabelValues("left")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.measurements.WithLabelValues("pass")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.measurements.WithLabelValues("fail")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.pruned))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.deleted))
	assert.Equal(t, float64(tree.Len()), testutil.ToFloat64(m.entries))
	assert.Equal(t, float64(tree.Stats().Toggles), testutil.ToFloat64(m.toggles))
}

func TestWriteTextAndSnapshot(t *testing.T) {
	tree, _, reg := newTree(t)
	tree.Insert(1, "a")
	tree.Insert(2, "b")

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, reg))
	assert.Contains(t, buf.String(), "# TYPE pavl_entries gauge")
	assert.Contains(t, buf.String(), "pavl_entries 2")

	snap, err := Snapshot(reg)
	require.NoError(t, err)
	assert.Equal(t, 2.0, snap["pavl_entries"])
	assert.Equal(t, 2.0, snap["pavl_inserts_total"])
}

func TestNilRegisterer(t *testing.T) {
	m := New(nil)
	m.Hook()(pavl.Event{Kind: pavl.EventPrune})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.pruned))
}
