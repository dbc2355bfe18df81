package main

import (
	"github.com/spf13/cobra"

	"github.com/jward/schematic"
)

var flagDetail bool

var solveCmd = &cobra.Command{
	Use:   "solve <file>",
	Short: "Print the part-number sum and gear-ratio sum of one schematic",
	Long:  "Analyzes a single schematic in memory. Nothing is written to the database.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSolve,
}

func init() {
	solveCmd.Flags().BoolVar(&flagDetail, "detail", false, "list every part number and gear")
}

func runSolve(cmd *cobra.Command, args []string) error {
	file, err := resolveFilePath(args[0])
	if err != nil {
		return outputError("solve", err)
	}
	s, err := schematic.Open(file)
	if err != nil {
		return outputError("solve", err)
	}

	report := s.Analyze()
	out := CLISolve{
		File:         file,
		Rows:         report.Rows,
		Symbols:      report.SymbolCount,
		Gears:        report.GearCount,
		PartSum:      report.PartSum,
		GearRatioSum: report.GearRatioSum,
	}
	if flagDetail {
		out.Parts = numbersToCLI(report.Parts)
		out.GearRatios = gearsToCLI(report.Gears)
	}
	return outputResult(CLIResult{Command: "solve", Results: out})
}
