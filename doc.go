// Package schematic analyzes engine schematics: character grids of digit
// runs, filler dots and special symbols.
//
// # Model
//
// A [Schematic] is an immutable grid read through a [LineSource]. Rows may
// differ in length; any lookup outside the grid reports absence instead of
// failing. A [Number] is a maximal horizontal run of digits together with its
// signature, the coordinate of every digit from left to right. Two numbers
// are the same number when both value and signature match.
//
// # Queries
//
//   - [Schematic.NumberAt] recovers the whole digit run through a cell.
//   - [Schematic.FindSpecialSymbols] and [Schematic.FindGears] scan the grid
//     in row-major order.
//   - [Schematic.AdjacentNumbers] probes the eight cells around a symbol and
//     collapses probes that hit the same number.
//   - [Schematic.SumPartNumbers] sums every number touching any symbol, each
//     counted once.
//   - [Schematic.SumGearRatios] sums, over every '*' touching exactly two
//     numbers, the product of those two numbers.
//
// # Usage
//
//	s, err := schematic.Open("input.txt")
//	if err != nil { ... }
//	fmt.Println(s.SumPartNumbers(), s.SumGearRatios())
//
// # Batch analysis
//
// An [Engine] analyzes many files and records symbols, part numbers and
// symbol→number links in SQLite. Unchanged files are detected by content
// hash and skipped. Results are read back through [Engine.Query]:
//
//	e, err := schematic.NewEngine(".schematic/results.db")
//	if err != nil { ... }
//	defer e.Close()
//
//	err = e.AnalyzeDirectory(ctx, "inputs")
//	gears, err := e.Query().GearRatios("inputs/day3.txt")
package schematic
