package schematic

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleRows is the ten-row schematic used throughout the tests.
var sampleRows = []string{
	"467..114..",
	"...*......",
	"..35..633.",
	"......#...",
	"617*......",
	".....+.58.",
	"..592.....",
	"......755.",
	"...$.*....",
	".664.598..",
}

func sample() *Schematic {
	return New(Lines(sampleRows...))
}

func TestFromString_TrailingNewlineAndCRLF(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want int
	}{
		{"plain", "ab\ncd", 2},
		{"trailing newline", "ab\ncd\n", 2},
		{"crlf", "ab\r\ncd\r\n", 2},
		{"empty", "", 0},
		{"only newline", "\n", 1},
		{"trailing blank row", "ab\n\n", 2},
		{"crlf only", "\r\n", 1},
		{"blank middle row", "ab\n\ncd", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			src := FromString(tt.text)
			assert.Equal(t, tt.want, src.Len())
			assert.Equal(t, tt.want, New(src).RowCount())
		})
	}

	row, ok := FromString("ab\r\ncd").Line(0)
	require.True(t, ok)
	assert.Equal(t, "ab", row)
}

func TestRow(t *testing.T) {
	t.Parallel()
	s := sample()

	row, ok := s.Row(0)
	require.True(t, ok)
	assert.Equal(t, "467..114..", row)

	row, ok = s.Row(9)
	require.True(t, ok)
	assert.Equal(t, ".664.598..", row)

	_, ok = s.Row(10)
	assert.False(t, ok)
	_, ok = s.Row(-1)
	assert.False(t, ok)
}

func TestCell(t *testing.T) {
	t.Parallel()
	s := sample()

	ch, ok := s.Cell(1, 3)
	require.True(t, ok)
	assert.Equal(t, '*', ch)

	ch, ok = s.Cell(0, 0)
	require.True(t, ok)
	assert.Equal(t, '4', ch)

	for _, rc := range [][2]int{{0, 10}, {10, 0}, {-1, 0}, {0, -1}, {-1, -1}} {
		_, ok := s.Cell(rc[0], rc[1])
		assert.False(t, ok, "cell %v", rc)
	}
}

func TestCell_RaggedRows(t *testing.T) {
	t.Parallel()
	s := New(Lines("12345", "1", ""))

	_, ok := s.Cell(1, 1)
	assert.False(t, ok)
	_, ok = s.Cell(2, 0)
	assert.False(t, ok)
	ch, ok := s.Cell(0, 4)
	require.True(t, ok)
	assert.Equal(t, '5', ch)
	assert.Equal(t, 3, s.RowCount())
}

func TestCell_CountsRunes(t *testing.T) {
	t.Parallel()
	s := New(Lines("é*1"))

	ch, ok := s.Cell(0, 1)
	require.True(t, ok)
	assert.Equal(t, '*', ch)
	ch, ok = s.Cell(0, 2)
	require.True(t, ok)
	assert.Equal(t, '1', ch)
}

func TestOpen(t *testing.T) {
	t.Parallel()

	s, err := Open(filepath.Join("testdata", "sample.txt"))
	require.NoError(t, err)
	assert.Equal(t, 10, s.RowCount())
	row, ok := s.Row(0)
	require.True(t, ok)
	assert.Equal(t, "467..114..", row)
}

func TestOpen_CRLF(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "crlf.txt")
	require.NoError(t, os.WriteFile(path, []byte("12*\r\n..3\r\n"), 0644))

	s, err := Open(path)
	require.NoError(t, err)
	row, ok := s.Row(0)
	require.True(t, ok)
	assert.Equal(t, "12*", row)
	assert.Equal(t, uint64(36), s.SumGearRatios())
}

func TestOpen_AgreesWithParse(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"", "\n", "\n\n", "ab", "ab\n", "ab\n\n", "12*\r\n..3", "\r\n"} {
		path := filepath.Join(t.TempDir(), "grid.txt")
		require.NoError(t, os.WriteFile(path, []byte(text), 0644))

		opened, err := Open(path)
		require.NoError(t, err)
		parsed := Parse(text)
		require.Equal(t, parsed.RowCount(), opened.RowCount(), "%q", text)
		for i := 0; i < parsed.RowCount(); i++ {
			want, _ := parsed.Row(i)
			got, ok := opened.Row(i)
			require.True(t, ok)
			assert.Equal(t, want, got, "%q row %d", text, i)
		}
	}
}

func TestOpen_Missing(t *testing.T) {
	t.Parallel()

	_, err := Open(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSourceUnavailable))
	assert.Contains(t, err.Error(), "nope.txt")
}

func TestOpenFile_Path(t *testing.T) {
	t.Parallel()
	path := filepath.Join("testdata", "sample.txt")

	src, err := OpenFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, src.Path())
	assert.Equal(t, 10, src.Len())
}

func TestOpenFile_Directory(t *testing.T) {
	t.Parallel()

	_, err := OpenFile(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}
