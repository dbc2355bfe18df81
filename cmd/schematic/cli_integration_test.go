package main_test

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildBinary compiles the schematic binary into t.TempDir().
func buildBinary(t *testing.T) string {
	t.Helper()
	binName := "schematic"
	if runtime.GOOS == "windows" {
		binName += ".exe"
	}
	bin := filepath.Join(t.TempDir(), binName)
	cmd := exec.Command("go", "build", "-o", bin, ".")
	cmd.Dir = filepath.Join(projectRoot(t), "cmd", "schematic")
	cmd.Env = append(os.Environ(), "CGO_ENABLED=1")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "build failed: %s", string(out))
	return bin
}

// projectRoot walks up from this file's directory to the go.mod.
func projectRoot(t *testing.T) string {
	t.Helper()
	_, filename, _, ok := runtime.Caller(0)
	require.True(t, ok, "runtime.Caller failed")
	dir := filepath.Dir(filename)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		require.NotEqual(t, parent, dir, "could not find project root")
		dir = parent
	}
}

// fixture copies testdata/sample.txt into a fresh working directory.
func fixture(t *testing.T) (dir, sample string) {
	t.Helper()
	dir = t.TempDir()
	data, err := os.ReadFile(filepath.Join(projectRoot(t), "testdata", "sample.txt"))
	require.NoError(t, err)
	sample = filepath.Join(dir, "sample.txt")
	require.NoError(t, os.WriteFile(sample, data, 0o644))
	return dir, sample
}

// runJSON executes the binary in dir and decodes the JSON envelope.
func runJSON(t *testing.T, bin, dir string, args ...string) map[string]any {
	t.Helper()
	cmd := exec.Command(bin, args...)
	cmd.Dir = dir
	stdout, err := cmd.Output()
	if err != nil && len(stdout) == 0 {
		t.Fatalf("%v failed with no output: %v", args, err)
	}
	var result map[string]any
	require.NoError(t, json.Unmarshal(stdout, &result), "invalid JSON output: %s", string(stdout))
	return result
}

// field returns m[key] as a JSON object, failing the test otherwise.
func field(t *testing.T, m map[string]any, key string) map[string]any {
	t.Helper()
	v, ok := m[key].(map[string]any)
	require.True(t, ok, "%s is not an object: %v", key, m)
	return v
}

func TestCLI_Solve(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	bin := buildBinary(t)
	dir, sample := fixture(t)

	result := runJSON(t, bin, dir, "solve", sample)
	assert.Equal(t, "solve", result["command"])
	results, ok := result["results"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(4361), results["part_sum"])
	assert.Equal(t, float64(467835), results["gear_ratio_sum"])
	assert.NotContains(t, results, "parts")
}

func TestCLI_SolveMissingFile(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	bin := buildBinary(t)
	dir := t.TempDir()

	result := runJSON(t, bin, dir, "solve", "missing.txt")
	assert.Contains(t, result["error"], "source unavailable")
}

func TestCLI_AnalyzeThenQuery(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	bin := buildBinary(t)
	dir, sample := fixture(t)

	cmd := exec.Command(bin, "analyze", dir)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "analyze failed: %s", string(out))
	require.FileExists(t, filepath.Join(dir, ".schematic", "results.db"))

	reports := runJSON(t, bin, dir, "query", "reports")
	list, ok := reports["results"].([]any)
	require.True(t, ok)
	require.Len(t, list, 1)
	first, ok := list[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(4361), first["part_sum"])
	assert.Equal(t, float64(467835), first["gear_ratio_sum"])

	gears := runJSON(t, bin, dir, "query", "gears", "sample.txt")
	gearList, ok := gears["results"].([]any)
	require.True(t, ok)
	assert.Len(t, gearList, 2)

	number := runJSON(t, bin, dir, "query", "number", "sample.txt", "0", "1")
	part := field(t, field(t, number, "results"), "number")
	assert.Equal(t, float64(467), part["value"])

	none := runJSON(t, bin, dir, "query", "number", "sample.txt", "0", "5")
	assert.Nil(t, none["results"])

	adjacent := runJSON(t, bin, dir, "query", "adjacent", sample, "1", "3")
	nums, ok := field(t, adjacent, "results")["numbers"].([]any)
	require.True(t, ok, "numbers: %v", adjacent)
	assert.Len(t, nums, 2)

	summary := runJSON(t, bin, dir, "run", "summary", "sample.txt")
	emitted := field(t, field(t, summary, "results"), "emitted")
	assert.Equal(t, float64(4361), emitted["part_sum"])

	totals := runJSON(t, bin, dir, "run", "totals")
	require.Nil(t, totals["error"])
	emitted = field(t, field(t, totals, "results"), "emitted")
	assert.Equal(t, float64(1), emitted["schematics"])
	assert.Equal(t, float64(4361), emitted["part_sum"])
	assert.Equal(t, float64(467835), emitted["gear_ratio_sum"])
}

func TestCLI_QueryWithoutDatabase(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	bin := buildBinary(t)
	dir := t.TempDir()

	result := runJSON(t, bin, dir, "query", "reports")
	assert.Contains(t, result["error"], "database not found")
}
