package schematic

// neighborOffsets are the eight (dRow, dCol) steps around a cell, row-major.
var neighborOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// AdjacentNumbers returns the distinct numbers touching sym, diagonals
// included. A multi-digit number reached from several probes appears once.
func (s *Schematic) AdjacentNumbers(sym Symbol) []Number {
	return s.adjacentTo(sym.Coordinate)
}

func (s *Schematic) adjacentTo(at Coordinate) []Number {
	var found []Number
	for _, d := range neighborOffsets {
		r, c := at.Row+d[0], at.Col+d[1]
		if r < 0 || c < 0 {
			continue
		}
		if n, ok := s.NumberAt(r, c); ok {
			found = append(found, n)
		}
	}
	return Unique(found)
}

// TwoPartAdjacent returns the numbers touching sym only when there are
// exactly two of them.
func (s *Schematic) TwoPartAdjacent(sym Symbol) ([2]Number, bool) {
	nums := s.AdjacentNumbers(sym)
	if len(nums) != 2 {
		return [2]Number{}, false
	}
	return [2]Number{nums[0], nums[1]}, true
}

// Unique drops repeated numbers, comparing value and signature, and keeps
// the first occurrence of each.
func Unique(nums []Number) []Number {
	if len(nums) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(nums))
	out := make([]Number, 0, len(nums))
	for _, n := range nums {
		k := n.key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, n)
	}
	return out
}
