package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newApp(&out, io.Discard).Run(append([]string{"pavl"}, args...))
	return out.String(), err
}

func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const script = `
tree: {prune_threshold: 0.5, prune_streak: 1}
script:
  - {op: insert, key: 1, value: "A", quality: 0.9, polarity: "+"}
  - {op: insert, key: 2, value: "B", quality: 0.3, polarity: "-"}
  - {op: insert, key: 3, value: "C", quality: 0.8, polarity: "+"}
  - {op: measure, key: 2, quality: 0.3, polarity: "-"}
`

func TestDemo(t *testing.T) {
	out, err := runApp(t, "demo")
	require.NoError(t, err)
	assert.Contains(t, out, `encoded 6 letters of "NNAMDI" in morse`)
	assert.Contains(t, out, "key 1: quality=0.31 polarity=- tag=")
	assert.Contains(t, out, "pruned=2")
	assert.Contains(t, out, `signal(0.50): "LFEAO"`)
}

func TestDemoMetrics(t *testing.T) {
	out, err := runApp(t, "--metrics", "demo")
	require.NoError(t, err)
	assert.Contains(t, out, "pavl_pruned_total 2")
	assert.Contains(t, out, "pavl_entries 13")
}

func TestEncode(t *testing.T) {
	out, err := runApp(t, "encode", "hello", "world")
	require.NoError(t, err)
	assert.Contains(t, out, "encoded 10 characters")
	assert.Contains(t, out, `"eoo"`)

	out, err = runApp(t, "encode", "--scheme", "morse", "hi")
	require.NoError(t, err)
	assert.Contains(t, out, `"HI"`)

	_, err = runApp(t, "encode")
	assert.Error(t, err)

	_, err = runApp(t, "encode", "--scheme", "braille", "x")
	assert.Error(t, err)
}

func TestRunAndVerify(t *testing.T) {
	path := writeScript(t, script)

	out, err := runApp(t, "run", path)
	require.NoError(t, err)
	assert.Contains(t, out, "applied=4 missing=0 pruned=1")
	assert.Contains(t, out, `signal(0.50): "AC"`)

	out, err = runApp(t, "verify", path)
	require.NoError(t, err)
	assert.Contains(t, out, "ok: 2 entries, height 2")

	_, err = runApp(t, "run")
	assert.Error(t, err)

	_, err = runApp(t, "run", writeScript(t, "tree: {prune_streak: 0}"))
	assert.Error(t, err)
}

func TestBadLogLevel(t *testing.T) {
	_, err := runApp(t, "--log-level", "loud", "demo")
	assert.Error(t, err)
}
