package schematic

import (
	"fmt"
	"os"
	"strings"
)

// LineSource is the "read line N" capability a Schematic is built on.
// Line reports false once n is past the last line.
type LineSource interface {
	Line(n int) (string, bool)
}

// MemorySource is a LineSource over lines already held in memory.
type MemorySource struct {
	lines []string
}

// Lines returns a MemorySource over the given rows.
func Lines(rows ...string) *MemorySource {
	return &MemorySource{lines: rows}
}

// FromString splits text on newlines. A single trailing newline does not
// produce an extra empty row, and "\r\n" endings are accepted.
func FromString(text string) *MemorySource {
	return &MemorySource{lines: splitLines(text)}
}

// splitLines breaks text into rows the way bufio.ScanLines does: only a final
// empty line is dropped, so "\n" is one empty row.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func (m *MemorySource) Line(n int) (string, bool) {
	if n < 0 || n >= len(m.lines) {
		return "", false
	}
	return m.lines[n], true
}

// Len returns the number of lines.
func (m *MemorySource) Len() int {
	return len(m.lines)
}

// FileSource is a LineSource backed by a file on disk. The file is read once
// when opened; later edits to the file are not observed.
type FileSource struct {
	MemorySource
	path string
}

// OpenFile reads the file at path. Any open or read failure wraps
// ErrSourceUnavailable.
func OpenFile(path string) (*FileSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
	}
	return &FileSource{MemorySource: MemorySource{lines: splitLines(string(data))}, path: path}, nil
}

// Path returns the path the source was read from.
func (f *FileSource) Path() string {
	return f.path
}
