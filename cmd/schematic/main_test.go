package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/schematic"
)

func TestFindRepoRoot_DirectGitDir(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))

	assert.Equal(t, root, findRepoRoot(root))
}

func TestFindRepoRoot_NestedSubdirectory(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	deep := filepath.Join(root, "sub", "deep")
	require.NoError(t, os.MkdirAll(deep, 0o755))

	assert.Equal(t, root, findRepoRoot(deep))
}

func TestFindRepoRoot_NoGitAncestor(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	assert.Equal(t, dir, findRepoRoot(dir))
}

func TestResolveDBPath(t *testing.T) {
	saved := flagDB
	t.Cleanup(func() { flagDB = saved })

	flagDB = ""
	assert.Equal(t, filepath.Join("/repo", ".schematic", "results.db"), resolveDBPath("/repo"))

	flagDB = "custom.db"
	assert.Equal(t, filepath.Join("/repo", "custom.db"), resolveDBPath("/repo"))

	flagDB = "/abs/results.db"
	assert.Equal(t, "/abs/results.db", resolveDBPath("/repo"))
}

func TestValidateFormat(t *testing.T) {
	t.Parallel()
	assert.NoError(t, validateFormat("json"))
	assert.NoError(t, validateFormat("text"))
	err := validateFormat("yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "json or text")
}

func TestParseIntArg(t *testing.T) {
	t.Parallel()

	n, err := parseIntArg("12", "row")
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	_, err = parseIntArg("-1", "row")
	assert.ErrorContains(t, err, "non-negative")

	_, err = parseIntArg("x", "col")
	assert.ErrorContains(t, err, `invalid col "x"`)
}

func TestPositionArgs(t *testing.T) {
	t.Parallel()

	file, row, col, err := positionArgs([]string{"/tmp/a.txt", "3", "4"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/a.txt", file)
	assert.Equal(t, 3, row)
	assert.Equal(t, 4, col)

	_, _, _, err = positionArgs([]string{"/tmp/a.txt", "3", "-4"})
	assert.Error(t, err)
}

func TestGearsToCLI(t *testing.T) {
	t.Parallel()
	s := schematic.Parse("12*3")

	gears := gearsToCLI(s.GearRatios())
	require.Len(t, gears, 1)
	assert.Equal(t, CLISymbol{Row: 0, Col: 2, Char: "*", Kind: "gear"}, gears[0].Gear)
	assert.Equal(t, CLINumber{Value: 12, Row: 0, StartCol: 0, EndCol: 1}, gears[0].Parts[0])
	assert.Equal(t, CLINumber{Value: 3, Row: 0, StartCol: 3, EndCol: 3}, gears[0].Parts[1])
	assert.Equal(t, uint64(36), gears[0].Ratio)
}

func TestWriteResultText_Solve(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	err := writeResultText(&buf, CLIResult{Command: "solve", Results: CLISolve{
		File:         "a.txt",
		Rows:         1,
		Symbols:      1,
		Gears:        1,
		PartSum:      15,
		GearRatioSum: 36,
		Parts:        []CLINumber{{Value: 12, StartCol: 0, EndCol: 1}},
	}})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Part sum: 15")
	assert.Contains(t, out, "Gear ratio sum: 36")
	assert.Contains(t, out, "VALUE")
	assert.NotContains(t, out, "RATIO\n")
}

func TestWriteResultText_Emitted(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	err := writeResultText(&buf, CLIResult{Command: "run", Results: CLIScript{
		Script:  "summary.risor",
		Emitted: map[string]any{"part_sum": int64(4361), "gears": int64(3)},
	}})
	require.NoError(t, err)
	assert.Equal(t, "gears: 3\npart_sum: 4361\n", buf.String())
}

func TestWriteResultText_NilAndUnsupported(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	require.NoError(t, writeResultText(&buf, CLIResult{Command: "number"}))
	assert.Empty(t, buf.String())

	err := writeResultText(&buf, CLIResult{Command: "x", Results: 42})
	assert.ErrorContains(t, err, "unsupported result type")
}
