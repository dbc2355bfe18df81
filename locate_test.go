package schematic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSpecial(t *testing.T) {
	t.Parallel()

	for _, r := range "0123456789." {
		assert.False(t, IsSpecial(r), "%q", r)
	}
	for _, r := range "*#+$/@=%-&é " {
		assert.True(t, IsSpecial(r), "%q", r)
	}
	assert.True(t, IsGear('*'))
	assert.False(t, IsGear('#'))
	assert.False(t, IsDigit('٣'), "non-ASCII digits are symbols")
}

func TestFindSpecialSymbols(t *testing.T) {
	t.Parallel()

	syms := sample().FindSpecialSymbols()
	want := []Symbol{
		{Coordinate{1, 3}, '*', KindGear},
		{Coordinate{3, 6}, '#', KindSpecial},
		{Coordinate{4, 3}, '*', KindGear},
		{Coordinate{5, 5}, '+', KindSpecial},
		{Coordinate{8, 3}, '$', KindSpecial},
		{Coordinate{8, 5}, '*', KindGear},
	}
	assert.Equal(t, want, syms)
}

func TestFindSpecialSymbols_NeverDigitOrFiller(t *testing.T) {
	t.Parallel()
	s := New(Lines("1.2#", "..@9", "", "*"))

	for _, sym := range s.FindSpecialSymbols() {
		ch, ok := s.Cell(sym.Row, sym.Col)
		require.True(t, ok)
		assert.Equal(t, sym.Char, ch)
		assert.False(t, IsDigit(ch))
		assert.NotEqual(t, '.', ch)
	}
	assert.Len(t, s.FindSpecialSymbols(), 3)
}

func TestFindGears_SubsetOfSpecial(t *testing.T) {
	t.Parallel()
	s := sample()

	special := make(map[Coordinate]bool)
	for _, sym := range s.FindSpecialSymbols() {
		special[sym.Coordinate] = true
	}
	gears := s.FindGears()
	require.Len(t, gears, 3)
	for _, g := range gears {
		assert.True(t, special[g.Coordinate], "gear %s not special", g.Coordinate)
		assert.Equal(t, '*', g.Char)
		assert.Equal(t, KindGear, g.Kind)
	}
}

func TestFindSymbols_EmptyGrid(t *testing.T) {
	t.Parallel()
	s := Parse("")

	assert.Empty(t, s.FindSpecialSymbols())
	assert.Empty(t, s.FindGears())
}
