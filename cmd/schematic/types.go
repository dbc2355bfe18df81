package main

import (
	"time"

	"github.com/jward/schematic"
)

// CLIResult is the top-level JSON envelope for all commands.
type CLIResult struct {
	Command string `json:"command"`
	Results any    `json:"results"`
	Error   string `json:"error,omitempty"`
}

// CLINumber is a JSON-friendly part number. Columns are inclusive.
type CLINumber struct {
	Value    uint32 `json:"value"`
	Row      int    `json:"row"`
	StartCol int    `json:"start_col"`
	EndCol   int    `json:"end_col"`
}

// CLISymbol is a JSON-friendly special symbol.
type CLISymbol struct {
	Row  int    `json:"row"`
	Col  int    `json:"col"`
	Char string `json:"char"`
	Kind string `json:"kind"`
}

// CLIGear is a gear with its two parts and their product.
type CLIGear struct {
	Gear  CLISymbol    `json:"gear"`
	Parts [2]CLINumber `json:"parts"`
	Ratio uint64       `json:"ratio"`
}

// CLISolve is the result of solving one schematic in memory.
type CLISolve struct {
	File         string      `json:"file"`
	Rows         int         `json:"rows"`
	Symbols      int         `json:"symbols"`
	Gears        int         `json:"gears"`
	PartSum      uint64      `json:"part_sum"`
	GearRatioSum uint64      `json:"gear_ratio_sum"`
	Parts        []CLINumber `json:"parts,omitempty"`
	GearRatios   []CLIGear   `json:"gear_ratios,omitempty"`
}

// CLIReport is a stored analysis.
type CLIReport struct {
	ID           int64     `json:"id"`
	Path         string    `json:"path"`
	Hash         string    `json:"hash"`
	Rows         int       `json:"rows"`
	PartSum      int64     `json:"part_sum"`
	GearRatioSum int64     `json:"gear_ratio_sum"`
	LastAnalyzed time.Time `json:"last_analyzed"`
}

// CLIPartAt is a stored part number with the symbols it touches.
type CLIPartAt struct {
	Number   CLINumber   `json:"number"`
	Touching []CLISymbol `json:"touching"`
}

// CLIAdjacent is a stored symbol with the part numbers it touches.
type CLIAdjacent struct {
	Symbol  CLISymbol   `json:"symbol"`
	Numbers []CLINumber `json:"numbers"`
}

// CLIScript holds the values a script passed to emit.
type CLIScript struct {
	Script  string         `json:"script"`
	Emitted map[string]any `json:"emitted"`
}

func numberToCLI(n schematic.Number) CLINumber {
	return CLINumber{
		Value:    n.Value,
		Row:      n.Start().Row,
		StartCol: n.Start().Col,
		EndCol:   n.End().Col,
	}
}

func numbersToCLI(nums []schematic.Number) []CLINumber {
	out := make([]CLINumber, len(nums))
	for i, n := range nums {
		out[i] = numberToCLI(n)
	}
	return out
}

func symbolToCLI(s schematic.Symbol) CLISymbol {
	return CLISymbol{Row: s.Row, Col: s.Col, Char: string(s.Char), Kind: string(s.Kind)}
}

func symbolsToCLI(syms []schematic.Symbol) []CLISymbol {
	out := make([]CLISymbol, len(syms))
	for i, s := range syms {
		out[i] = symbolToCLI(s)
	}
	return out
}

func gearsToCLI(gears []schematic.GearRatio) []CLIGear {
	out := make([]CLIGear, len(gears))
	for i, g := range gears {
		out[i] = CLIGear{
			Gear:  symbolToCLI(g.Gear),
			Parts: [2]CLINumber{numberToCLI(g.Parts[0]), numberToCLI(g.Parts[1])},
			Ratio: g.Ratio,
		}
	}
	return out
}

func reportToCLI(sc *schematic.StoredSchematic) CLIReport {
	return CLIReport{
		ID:           sc.ID,
		Path:         sc.Path,
		Hash:         sc.Hash,
		Rows:         sc.RowCount,
		PartSum:      sc.PartSum,
		GearRatioSum: sc.GearRatioSum,
		LastAnalyzed: sc.LastAnalyzed,
	}
}
