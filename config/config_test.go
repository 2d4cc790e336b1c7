package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/e11jah/pavl"
)

const scenario = `
tree:
  prune_threshold: 0.5
  prune_streak: 1
signal:
  min_quality: 0.5
script:
  - {op: insert, key: 1, value: "A", quality: 0.9, polarity: "+"}
  - {op: insert, key: 2, value: "B", quality: 0.3, polarity: "-"}
  - {op: insert, key: 3, value: "C", quality: 0.8, polarity: "+"}
  - {op: measure, key: 2, quality: 0.3, polarity: "-"}
  - {op: measure, key: 2, quality: 0.3}
  - {op: delete, key: 9}
`

func loadFromString(t *testing.T, content string) *Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pavl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	cfg, err := Load(path)
	require.NoError(t, err)
	return cfg
}

func TestLoad_Valid(t *testing.T) {
	cfg := loadFromString(t, scenario)

	assert.Equal(t, 0.5, cfg.Tree.PruneThreshold)
	assert.Equal(t, 1, cfg.Tree.PruneStreak)
	assert.True(t, cfg.Tree.ToggleOnMeasure)
	require.Len(t, cfg.Script, 6)
	assert.Equal(t, OpMeasure, cfg.Script[3].Op)
	require.NotNil(t, cfg.Script[3].Quality)
	assert.Equal(t, 0.3, *cfg.Script[3].Quality)
}

func TestLoad_Defaults(t *testing.T) {
	cfg := loadFromString(t, "script: []\n")

	assert.Equal(t, pavl.DefaultPruneThreshold, cfg.Tree.PruneThreshold)
	assert.Equal(t, pavl.DefaultPruneStreakLimit, cfg.Tree.PruneStreak)
	assert.True(t, cfg.Tree.ToggleOnUpdate)
	assert.Equal(t, DefaultMinQuality, cfg.Signal.MinQuality)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestParse_Invalid(t *testing.T) {
	dataSet := []struct {
		name    string
		content string
	}{
		{"bad yaml", "tree: ["},
		{"threshold", "tree: {prune_threshold: 1.5}"},
		{"streak", "tree: {prune_streak: 0}"},
		{"min quality", "signal: {min_quality: -1}"},
		{"unknown op", "script: [{op: rotate, key: 1}]"},
		{"measure without quality", "script: [{op: measure, key: 1}]"},
		{"quality range", "script: [{op: insert, key: 1, quality: 2}]"},
		{"polarity", "script: [{op: insert, key: 1, polarity: sideways}]"},
	}

	for _, d := range dataSet {
		_, err := Parse([]byte(d.content))
		assert.Error(t, err, d.name)
	}
}

func TestApply(t *testing.T) {
	cfg := loadFromString(t, scenario)
	tree, err := pavl.New[int, string](cfg.Tree.Pavl())
	require.NoError(t, err)

	report, err := cfg.Apply(tree, nil)
	require.NoError(t, err)
	assert.Equal(t, Report{Applied: 4, Missing: 2, Pruned: 1}, report)

	_, err = tree.Find(2)
	assert.ErrorIs(t, err, pavl.ErrKeyNotFound)
	assert.Equal(t, []string{"A", "C"}, tree.ExtractSignal(cfg.Signal.MinQuality))
	require.NoError(t, tree.Verify())
}
