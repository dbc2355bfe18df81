package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
)

// formatSolveText prints the two sums, then the detail tables when present.
func formatSolveText(w io.Writer, s CLISolve) {
	fmt.Fprintf(w, "File: %s\n", s.File)
	fmt.Fprintf(w, "Rows: %d  Symbols: %d  Gears: %d\n", s.Rows, s.Symbols, s.Gears)
	fmt.Fprintf(w, "Part sum: %d\n", s.PartSum)
	fmt.Fprintf(w, "Gear ratio sum: %d\n", s.GearRatioSum)
	if len(s.Parts) > 0 {
		fmt.Fprintln(w)
		formatNumbersText(w, s.Parts)
	}
	if len(s.GearRatios) > 0 {
		fmt.Fprintln(w)
		formatGearsText(w, s.GearRatios)
	}
}

// formatNumbersText formats part numbers as aligned columns.
func formatNumbersText(w io.Writer, nums []CLINumber) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "VALUE\tROW\tCOLS")
	for _, n := range nums {
		fmt.Fprintf(tw, "%d\t%d\t%d-%d\n", n.Value, n.Row, n.StartCol, n.EndCol)
	}
	tw.Flush()
}

// formatSymbolsText formats symbols as aligned columns.
func formatSymbolsText(w io.Writer, syms []CLISymbol) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CHAR\tKIND\tROW\tCOL")
	for _, s := range syms {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", s.Char, s.Kind, s.Row, s.Col)
	}
	tw.Flush()
}

// formatGearsText formats gear ratios as aligned columns.
func formatGearsText(w io.Writer, gears []CLIGear) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "GEAR\tPARTS\tRATIO")
	for _, g := range gears {
		fmt.Fprintf(tw, "%d:%d\t%d x %d\t%d\n",
			g.Gear.Row, g.Gear.Col, g.Parts[0].Value, g.Parts[1].Value, g.Ratio)
	}
	tw.Flush()
}

// formatReportsText formats stored analyses as aligned columns.
func formatReportsText(w io.Writer, reports []CLIReport) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPATH\tROWS\tPART SUM\tGEAR RATIO SUM")
	for _, r := range reports {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\n", r.ID, r.Path, r.Rows, r.PartSum, r.GearRatioSum)
	}
	tw.Flush()
}

// formatEmittedText prints emitted script values sorted by name.
func formatEmittedText(w io.Writer, s CLIScript) {
	names := make([]string, 0, len(s.Emitted))
	for name := range s.Emitted {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s: %v\n", name, s.Emitted[name])
	}
}

// outputResultText dispatches to the appropriate text formatter based on the
// result type. It writes to os.Stdout.
func outputResultText(result CLIResult) error {
	return writeResultText(os.Stdout, result)
}

func writeResultText(w io.Writer, result CLIResult) error {
	switch v := result.Results.(type) {
	case CLISolve:
		formatSolveText(w, v)
	case []CLIReport:
		formatReportsText(w, v)
	case CLIReport:
		formatReportsText(w, []CLIReport{v})
	case []CLINumber:
		formatNumbersText(w, v)
	case []CLIGear:
		formatGearsText(w, v)
	case CLIPartAt:
		formatNumbersText(w, []CLINumber{v.Number})
		if len(v.Touching) > 0 {
			fmt.Fprintln(w)
			formatSymbolsText(w, v.Touching)
		}
	case CLIAdjacent:
		formatSymbolsText(w, []CLISymbol{v.Symbol})
		if len(v.Numbers) > 0 {
			fmt.Fprintln(w)
			formatNumbersText(w, v.Numbers)
		}
	case CLIScript:
		formatEmittedText(w, v)
	case nil:
		// No output for nil results (e.g., number with no match).
	default:
		return fmt.Errorf("unsupported result type for text format: %T", v)
	}
	return nil
}

// validFormats lists accepted values for --format.
var validFormats = []string{"json", "text"}

// validateFormat checks that the --format flag value is recognized.
func validateFormat(format string) error {
	for _, f := range validFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid format %q: must be %s", format, strings.Join(validFormats, " or "))
}
