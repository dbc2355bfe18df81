package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jward/schematic"
)

var (
	flagDB      string
	flagFormat  string
	flagVerbose bool
)

// errorHandled is set by outputError so main() doesn't double-print.
var errorHandled bool

// logger is installed by the root command before any subcommand runs.
var logger = slog.Default()

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errorHandled {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "schematic",
	Short:         "Part-number and gear-ratio analysis of engine schematics",
	Long:          "Schematic reads character grids of digit runs and symbols, sums the part numbers touching a symbol and the gear ratios of every '*' touching exactly two numbers, and can record the results in a SQLite database for later queries.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := validateFormat(flagFormat); err != nil {
			return err
		}
		logger = newLogger(flagVerbose)
		slog.SetDefault(logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "database path (default: .schematic/results.db relative to repo root)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "json", "output format: json|text")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging on stderr")

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(runCmd)
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

var (
	flagForce   bool
	flagExt     []string
	flagSerial  bool
	flagWorkers int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path...]",
	Short: "Analyze schematic files and record the results",
	Long:  "Analyzes each file, and every matching file under each directory, and writes symbols, part numbers and gear links to the SQLite database. Files whose content is unchanged since the last run are skipped.",
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&flagForce, "force", false, "delete database and analyze from scratch")
	analyzeCmd.Flags().StringSliceVar(&flagExt, "ext", []string{".txt"}, "file extensions picked up from directories")
	analyzeCmd.Flags().BoolVar(&flagSerial, "serial", false, "analyze files one at a time")
	analyzeCmd.Flags().IntVar(&flagWorkers, "workers", 0, "worker pool size (default: number of CPUs)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	start := time.Now()

	if len(args) == 0 {
		args = []string{"."}
	}
	var files, dirs []string
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return fmt.Errorf("resolving path %q: %w", arg, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return fmt.Errorf("path not found: %s", abs)
		}
		if info.IsDir() {
			dirs = append(dirs, abs)
		} else {
			files = append(files, abs)
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting cwd: %w", err)
	}
	dbPath := resolveDBPath(findRepoRoot(cwd))
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(dbPath), err)
	}

	if flagForce {
		if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing database for --force: %w", err)
		}
		logger.Info("cleared database", slog.String("db", dbPath))
	}

	engine, err := schematic.NewEngine(dbPath,
		schematic.WithParallel(!flagSerial),
		schematic.WithWorkers(flagWorkers),
		schematic.WithExtensions(flagExt...),
		schematic.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}
	defer engine.Close()

	ctx := context.Background()
	for _, dir := range dirs {
		if err := engine.AnalyzeDirectory(ctx, dir); err != nil {
			return fmt.Errorf("analyzing %s: %w", dir, err)
		}
	}
	if len(files) > 0 {
		if err := engine.AnalyzeFiles(ctx, files); err != nil {
			return fmt.Errorf("analyzing: %w", err)
		}
	}

	logger.Info("analyze complete",
		slog.String("db", dbPath),
		slog.Duration("elapsed", time.Since(start).Round(time.Millisecond)),
	)
	return nil
}

// findRepoRoot walks up from startDir looking for a .git directory.
// Returns the directory containing .git, or startDir if not found.
func findRepoRoot(startDir string) string {
	dir := startDir
	for {
		if info, err := os.Stat(filepath.Join(dir, ".git")); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return startDir
		}
		dir = parent
	}
}

// resolveDBPath returns the database path from the --db flag or the default.
func resolveDBPath(repoRoot string) string {
	if flagDB != "" {
		if filepath.IsAbs(flagDB) {
			return flagDB
		}
		return filepath.Join(repoRoot, flagDB)
	}
	return filepath.Join(repoRoot, ".schematic", "results.db")
}
