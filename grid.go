package schematic

import "fmt"

// Schematic is an immutable character grid read through a LineSource. Rows
// may differ in length. All lookups outside the grid report absence rather
// than failing.
type Schematic struct {
	src LineSource
}

// New wraps an already-open LineSource.
func New(src LineSource) *Schematic {
	return &Schematic{src: src}
}

// Open reads the file at path and returns a Schematic over it. The error
// wraps ErrSourceUnavailable when the file cannot be read.
func Open(path string) (*Schematic, error) {
	src, err := OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open schematic: %w", err)
	}
	return New(src), nil
}

// Parse builds a Schematic from newline-delimited text.
func Parse(text string) *Schematic {
	return New(FromString(text))
}

// Row returns the text of row i.
func (s *Schematic) Row(i int) (string, bool) {
	if i < 0 {
		return "", false
	}
	return s.src.Line(i)
}

// Cell returns the rune at column c of row r. Columns count runes, not bytes.
func (s *Schematic) Cell(r, c int) (rune, bool) {
	if c < 0 {
		return 0, false
	}
	row, ok := s.Row(r)
	if !ok {
		return 0, false
	}
	n := 0
	for _, ch := range row {
		if n == c {
			return ch, true
		}
		n++
	}
	return 0, false
}

// RowCount returns the number of rows, found by probing until Row reports
// absence.
func (s *Schematic) RowCount() int {
	n := 0
	for {
		if _, ok := s.Row(n); !ok {
			return n
		}
		n++
	}
}

// scan visits every cell in row-major order until the source runs out of
// rows.
func (s *Schematic) scan(visit func(r, c int, ch rune)) {
	for r := 0; ; r++ {
		row, ok := s.Row(r)
		if !ok {
			return
		}
		c := 0
		for _, ch := range row {
			visit(r, c, ch)
			c++
		}
	}
}
