package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jward/schematic"
	"github.com/jward/schematic/internal/runtime"
	"github.com/jward/schematic/scripts/reports"
)

var flagScriptsDir string

var runCmd = &cobra.Command{
	Use:   "run <script> [file]",
	Short: "Run a Risor report script",
	Long:  "Runs a built-in report (summary, gears, totals) or a script from --scripts-dir. When a file is given the script can read that schematic; when the results database exists the script can also read recorded analyses.",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runScript,
}

func init() {
	runCmd.Flags().StringVar(&flagScriptsDir, "scripts-dir", "", "load scripts from disk path instead of embedded")
}

func runScript(cmd *cobra.Command, args []string) error {
	name := args[0]

	opts := []runtime.RuntimeOption{runtime.WithLogger(logger)}
	if flagScriptsDir == "" {
		opts = append(opts, runtime.WithRuntimeFS(reports.FS))
	}

	var grid *schematic.Schematic
	if len(args) == 2 {
		file, err := resolveFilePath(args[1])
		if err != nil {
			return outputError("run", err)
		}
		grid, err = schematic.Open(file)
		if err != nil {
			return outputError("run", err)
		}
	}

	// The store is optional: scripts that only read the grid run without it.
	if s, err := openStore(); err == nil {
		defer s.Close()
		opts = append(opts, runtime.WithStore(s))
	} else {
		logger.Debug("results database unavailable", slog.Any("err", err))
	}

	rt := runtime.NewRuntime(grid, flagScriptsDir, opts...)
	emitted, err := rt.RunScript(context.Background(), name, nil)
	if err != nil {
		return outputError("run", err)
	}
	return outputResult(CLIResult{
		Command: "run",
		Results: CLIScript{Script: runtime.ScriptPath(name), Emitted: emitted},
	})
}
