package schematic

import (
	"fmt"
	"strconv"
	"strings"
)

// Coordinate is a zero-based (row, column) grid position.
type Coordinate struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Number is a maximal horizontal run of digits. Signature lists the
// coordinate of every digit, left to right.
type Number struct {
	Value     uint32       `json:"value"`
	Signature []Coordinate `json:"signature"`
}

// Equal reports whether n and o have the same value and the same signature.
func (n Number) Equal(o Number) bool {
	if n.Value != o.Value || len(n.Signature) != len(o.Signature) {
		return false
	}
	for i := range n.Signature {
		if n.Signature[i] != o.Signature[i] {
			return false
		}
	}
	return true
}

// Start returns the coordinate of the leftmost digit.
func (n Number) Start() Coordinate {
	if len(n.Signature) == 0 {
		return Coordinate{}
	}
	return n.Signature[0]
}

// End returns the coordinate of the rightmost digit.
func (n Number) End() Coordinate {
	if len(n.Signature) == 0 {
		return Coordinate{}
	}
	return n.Signature[len(n.Signature)-1]
}

// key encodes value and signature for use as a map key.
func (n Number) key() string {
	var b strings.Builder
	b.WriteString(strconv.FormatUint(uint64(n.Value), 10))
	for _, c := range n.Signature {
		b.WriteByte('|')
		b.WriteString(strconv.Itoa(c.Row))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(c.Col))
	}
	return b.String()
}

func (n Number) String() string {
	return fmt.Sprintf("%d@%s", n.Value, n.Start())
}

// SymbolKind classifies a special symbol.
type SymbolKind string

const (
	KindSpecial SymbolKind = "special"
	KindGear    SymbolKind = "gear"
)

// Symbol is a special-symbol cell.
type Symbol struct {
	Coordinate
	Char rune       `json:"char"`
	Kind SymbolKind `json:"kind"`
}

// GearRatio is a gear touching exactly two numbers, with their product.
type GearRatio struct {
	Gear  Symbol    `json:"gear"`
	Parts [2]Number `json:"parts"`
	Ratio uint64    `json:"ratio"`
}

// Report is the full result of analyzing one schematic.
type Report struct {
	Rows         int         `json:"rows"`
	SymbolCount  int         `json:"symbol_count"`
	GearCount    int         `json:"gear_count"`
	Parts        []Number    `json:"parts"`
	Gears        []GearRatio `json:"gears"`
	PartSum      uint64      `json:"part_sum"`
	GearRatioSum uint64      `json:"gear_ratio_sum"`
}
