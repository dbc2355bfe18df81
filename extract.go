package schematic

// NumberAt returns the number whose digit run contains (r, c). It reports
// false if that cell is absent or not a digit.
//
// The run is grown right from c+1 and left from c-1 until a non-digit or an
// absent cell; the left walk stops at column 0. The digits are read left to
// right as a base-10 value.
func (s *Schematic) NumberAt(r, c int) (Number, bool) {
	seed, ok := s.Cell(r, c)
	if !ok || !IsDigit(seed) {
		return Number{}, false
	}

	right := []rune{}
	for col := c + 1; ; col++ {
		ch, ok := s.Cell(r, col)
		if !ok || !IsDigit(ch) {
			break
		}
		right = append(right, ch)
	}

	// Left digits are collected nearest-first and reversed below.
	left := []rune{}
	for col := c - 1; col >= 0; col-- {
		ch, ok := s.Cell(r, col)
		if !ok || !IsDigit(ch) {
			break
		}
		left = append(left, ch)
	}

	start := c - len(left)
	digits := make([]rune, 0, len(left)+1+len(right))
	for i := len(left) - 1; i >= 0; i-- {
		digits = append(digits, left[i])
	}
	digits = append(digits, seed)
	digits = append(digits, right...)

	n := Number{Signature: make([]Coordinate, len(digits))}
	for i, d := range digits {
		n.Value = n.Value*10 + uint32(d-'0')
		n.Signature[i] = Coordinate{Row: r, Col: start + i}
	}
	return n, true
}
