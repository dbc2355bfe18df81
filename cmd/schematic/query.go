package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jward/schematic"
	"github.com/jward/schematic/internal/store"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query recorded analyses",
	Long:  "Run queries against the results database written by 'schematic analyze'. All row and column numbers are 0-based.",
}

func init() {
	queryCmd.AddCommand(reportsCmd)
	queryCmd.AddCommand(partsCmd)
	queryCmd.AddCommand(gearsCmd)
	queryCmd.AddCommand(numberCmd)
	queryCmd.AddCommand(adjacentCmd)
}

// --- Helpers ---

// openStore opens the Store from the --db flag path (or default).
func openStore() (*store.Store, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting cwd: %w", err)
	}
	dbPath := resolveDBPath(findRepoRoot(cwd))

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("database not found: %s (run 'schematic analyze' first)", dbPath)
	}
	return store.NewStore(dbPath)
}

// resolveFilePath converts a file argument to an absolute path, the form
// analyze records.
func resolveFilePath(file string) (string, error) {
	if filepath.IsAbs(file) {
		return file, nil
	}
	abs, err := filepath.Abs(file)
	if err != nil {
		return "", fmt.Errorf("resolving file path %q: %w", file, err)
	}
	return abs, nil
}

// parseIntArg parses a positional argument as an integer with a clear error.
func parseIntArg(value, name string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be a non-negative integer", name, value)
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid %s %q: must be non-negative", name, value)
	}
	return n, nil
}

// positionArgs parses <file> <row> <col>.
func positionArgs(args []string) (file string, row, col int, err error) {
	file, err = resolveFilePath(args[0])
	if err != nil {
		return "", 0, 0, err
	}
	row, err = parseIntArg(args[1], "row")
	if err != nil {
		return "", 0, 0, err
	}
	col, err = parseIntArg(args[2], "col")
	if err != nil {
		return "", 0, 0, err
	}
	return file, row, col, nil
}

// outputResult marshals a CLIResult to stdout in the selected format.
func outputResult(result CLIResult) error {
	if flagFormat == "text" {
		return outputResultText(result)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// outputError writes an error in the selected format and returns it so RunE
// can propagate it to Cobra. In JSON mode the error is written to stdout as a
// CLIResult envelope. In text mode it goes to stderr.
func outputError(command string, err error) error {
	errorHandled = true
	if flagFormat == "text" {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return err
	}
	result := CLIResult{
		Command: command,
		Error:   err.Error(),
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(result)
	return err
}

// withQuery opens the store, runs fn against a QueryBuilder, and closes it.
func withQuery(command string, fn func(qb *schematic.QueryBuilder) (any, error)) error {
	s, err := openStore()
	if err != nil {
		return outputError(command, err)
	}
	defer s.Close()

	results, err := fn(schematic.NewQueryBuilder(s))
	if err != nil {
		return outputError(command, err)
	}
	return outputResult(CLIResult{Command: command, Results: results})
}

// --- Commands ---

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "List every recorded analysis",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withQuery("reports", func(qb *schematic.QueryBuilder) (any, error) {
			all, err := qb.Reports()
			if err != nil {
				return nil, err
			}
			out := make([]CLIReport, len(all))
			for i, sc := range all {
				out[i] = reportToCLI(sc)
			}
			return out, nil
		})
	},
}

var partsCmd = &cobra.Command{
	Use:   "parts <file>",
	Short: "List the recorded part numbers of a schematic",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withQuery("parts", func(qb *schematic.QueryBuilder) (any, error) {
			file, err := resolveFilePath(args[0])
			if err != nil {
				return nil, err
			}
			nums, err := qb.PartNumbers(file)
			if err != nil {
				return nil, err
			}
			return numbersToCLI(nums), nil
		})
	},
}

var gearsCmd = &cobra.Command{
	Use:   "gears <file>",
	Short: "List the recorded gears of a schematic that touch exactly two parts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withQuery("gears", func(qb *schematic.QueryBuilder) (any, error) {
			file, err := resolveFilePath(args[0])
			if err != nil {
				return nil, err
			}
			gears, err := qb.GearRatios(file)
			if err != nil {
				return nil, err
			}
			return gearsToCLI(gears), nil
		})
	},
}

var numberCmd = &cobra.Command{
	Use:   "number <file> <row> <col>",
	Short: "Find the part number covering a cell and the symbols it touches",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withQuery("number", func(qb *schematic.QueryBuilder) (any, error) {
			file, row, col, err := positionArgs(args)
			if err != nil {
				return nil, err
			}
			n, touching, ok, err := qb.PartAt(file, row, col)
			if err != nil || !ok {
				return nil, err
			}
			return CLIPartAt{Number: numberToCLI(n), Touching: symbolsToCLI(touching)}, nil
		})
	},
}

var adjacentCmd = &cobra.Command{
	Use:   "adjacent <file> <row> <col>",
	Short: "List the part numbers touching the symbol at a cell",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withQuery("adjacent", func(qb *schematic.QueryBuilder) (any, error) {
			file, row, col, err := positionArgs(args)
			if err != nil {
				return nil, err
			}
			sym, nums, ok, err := qb.AdjacentAt(file, row, col)
			if err != nil || !ok {
				return nil, err
			}
			return CLIAdjacent{Symbol: symbolToCLI(sym), Numbers: numbersToCLI(nums)}, nil
		})
	},
}
