package schematic_test

import (
	"fmt"

	"github.com/jward/schematic"
)

func Example() {
	s := schematic.Parse(`467..114..
...*......
..35..633.
......#...
617*......
.....+.58.
..592.....
......755.
...$.*....
.664.598..`)

	fmt.Println(s.SumPartNumbers())
	fmt.Println(s.SumGearRatios())
	// Output:
	// 4361
	// 467835
}

func ExampleSchematic_NumberAt() {
	s := schematic.New(schematic.Lines("467..114.."))

	n, _ := s.NumberAt(0, 6)
	fmt.Println(n.Value, n.Signature)
	// Output:
	// 114 [(0,5) (0,6) (0,7)]
}

func ExampleSchematic_GearRatios() {
	s := schematic.New(schematic.Lines(
		"467..114..",
		"...*......",
		"..35..633.",
	))

	for _, g := range s.GearRatios() {
		fmt.Printf("%s %d x %d = %d\n", g.Gear.Coordinate, g.Parts[0].Value, g.Parts[1].Value, g.Ratio)
	}
	// Output:
	// (1,3) 467 x 35 = 16345
}
