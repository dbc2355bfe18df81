package schematic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjacentNumbers_DedupsMultiDigitProbes(t *testing.T) {
	t.Parallel()
	s := sample()

	nums := s.AdjacentNumbers(Symbol{Coordinate: Coordinate{1, 3}, Char: '*'})
	require.Len(t, nums, 2)
	assert.Equal(t, Number{Value: 467, Signature: sig(0, 0, 1, 2)}, nums[0])
	assert.Equal(t, Number{Value: 35, Signature: sig(2, 2, 3)}, nums[1])
}

func TestAdjacentNumbers_ProbeOrder(t *testing.T) {
	t.Parallel()
	s := New(Lines(
		"1.2",
		"3*4",
		"5.6",
	))

	nums := s.AdjacentNumbers(Symbol{Coordinate: Coordinate{1, 1}})
	var values []uint32
	for _, n := range nums {
		values = append(values, n.Value)
	}
	assert.Equal(t, []uint32{1, 2, 3, 4, 5, 6}, values)
}

func TestAdjacentNumbers_SameValueDifferentPlaces(t *testing.T) {
	t.Parallel()
	s := New(Lines(
		"5.5",
		".*.",
	))

	nums := s.AdjacentNumbers(Symbol{Coordinate: Coordinate{1, 1}})
	require.Len(t, nums, 2, "equal values at distinct positions are distinct numbers")
	assert.Equal(t, uint64(25), s.SumGearRatios())
}

func TestAdjacentNumbers_GridCorners(t *testing.T) {
	t.Parallel()
	s := New(Lines(
		"*1",
		"2.",
	))

	nums := s.AdjacentNumbers(Symbol{Coordinate: Coordinate{0, 0}})
	require.Len(t, nums, 2)
	assert.Equal(t, uint32(1), nums[0].Value)
	assert.Equal(t, uint32(2), nums[1].Value)
}

func TestAdjacentNumbers_SkipsOwnCell(t *testing.T) {
	t.Parallel()
	s := New(Lines("...", ".7.", "..."))

	assert.Empty(t, s.AdjacentNumbers(Symbol{Coordinate: Coordinate{1, 1}}))
}

func TestAdjacentNumbers_RaggedNeighborRows(t *testing.T) {
	t.Parallel()
	s := New(Lines(
		"1",
		"..*",
		"",
	))

	assert.Empty(t, s.AdjacentNumbers(Symbol{Coordinate: Coordinate{1, 2}}))
}

func TestTwoPartAdjacent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rows []string
		ok   bool
	}{
		{"none", []string{"...", ".*.", "..."}, false},
		{"one", []string{"12.", ".*.", "..."}, false},
		{"two", []string{"12.", ".*.", "..3"}, true},
		{"three", []string{"1.2", ".*.", "3.."}, false},
		{"two probes one number", []string{"123", ".*.", "..."}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := New(Lines(tt.rows...))
			sym := Symbol{Coordinate: Coordinate{1, 1}, Char: '*', Kind: KindGear}

			parts, ok := s.TwoPartAdjacent(sym)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, len(s.AdjacentNumbers(sym)) == 2, ok)
			if !ok {
				assert.Equal(t, [2]Number{}, parts)
			}
		})
	}
}

func TestUnique(t *testing.T) {
	t.Parallel()

	a := Number{Value: 467, Signature: sig(0, 0, 1, 2)}
	b := Number{Value: 35, Signature: sig(2, 2, 3)}
	c := Number{Value: 35, Signature: sig(5, 0, 1)}

	got := Unique([]Number{a, b, a, c, b, a})
	assert.Equal(t, []Number{a, b, c}, got)
	assert.Equal(t, got, Unique(got), "idempotent")
	assert.Nil(t, Unique(nil))
}

func TestUnique_SignatureOnlyMatchIsNotDuplicate(t *testing.T) {
	t.Parallel()

	a := Number{Value: 12, Signature: sig(0, 0, 1)}
	b := Number{Value: 21, Signature: sig(0, 0, 1)}
	assert.Len(t, Unique([]Number{a, b}), 2)
}
