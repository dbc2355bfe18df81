package runtime

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/risor-io/risor"
	"github.com/risor-io/risor/importer"

	"github.com/jward/schematic"
	"github.com/jward/schematic/internal/store"
)

// Runtime embeds a Risor VM and exposes a schematic, and optionally the
// result store, to report scripts through host functions.
type Runtime struct {
	grid       *schematic.Schematic
	store      *store.Store
	scriptsDir string
	fsys       fs.FS
	logger     *slog.Logger

	mu      sync.Mutex
	emitted map[string]any
}

// RuntimeOption configures a Runtime.
type RuntimeOption func(*Runtime)

// WithRuntimeFS configures the Runtime to load scripts from an fs.FS
// instead of from disk. Also configures the Risor importer to use
// FSImporter for import statement resolution.
func WithRuntimeFS(fsys fs.FS) RuntimeOption {
	return func(r *Runtime) {
		r.fsys = fsys
	}
}

// WithStore exposes the result store to scripts (reports, db_query).
func WithStore(s *store.Store) RuntimeOption {
	return func(r *Runtime) {
		r.store = s
	}
}

// WithLogger routes the script "log" module to l.
func WithLogger(l *slog.Logger) RuntimeOption {
	return func(r *Runtime) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRuntime creates a Runtime over grid, which may be nil for scripts that
// only read the store.
func NewRuntime(grid *schematic.Schematic, scriptsDir string, opts ...RuntimeOption) *Runtime {
	r := &Runtime{
		grid:       grid,
		scriptsDir: scriptsDir,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunScript loads and executes a Risor script with all standard globals
// plus any extra globals provided by the caller. It returns the values the
// script passed to emit.
func (r *Runtime) RunScript(ctx context.Context, scriptPath string, extraGlobals map[string]any) (map[string]any, error) {
	src, err := r.LoadScript(scriptPath)
	if err != nil {
		return nil, err
	}
	return r.eval(ctx, src, scriptPath, extraGlobals)
}

// RunSource executes Risor source code directly with all standard globals
// plus any extra globals. Useful for testing without script files.
func (r *Runtime) RunSource(ctx context.Context, source string, extraGlobals map[string]any) (map[string]any, error) {
	return r.eval(ctx, source, "<inline>", extraGlobals)
}

func (r *Runtime) eval(ctx context.Context, source, label string, extraGlobals map[string]any) (map[string]any, error) {
	r.mu.Lock()
	r.emitted = make(map[string]any)
	r.mu.Unlock()

	globals := r.buildGlobals(extraGlobals)

	var opts []risor.Option
	for name, val := range globals {
		opts = append(opts, risor.WithGlobal(name, val))
	}

	// Wire importer so Risor import statements resolve correctly.
	if imp := r.buildImporter(globals); imp != nil {
		opts = append(opts, risor.WithImporter(imp))
	}

	if _, err := risor.Eval(ctx, source, opts...); err != nil {
		return nil, fmt.Errorf("runtime: script %s: %w", label, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.emitted, nil
}

// buildImporter returns a Risor importer configured for the Runtime's script source.
// Returns nil if neither fs.FS nor scriptsDir is configured.
func (r *Runtime) buildImporter(globals map[string]any) importer.Importer {
	globalNames := make([]string, 0, len(globals))
	for name := range globals {
		globalNames = append(globalNames, name)
	}

	if r.fsys != nil {
		return importer.NewFSImporter(importer.FSImporterOptions{
			GlobalNames: globalNames,
			SourceFS:    r.fsys,
			Extensions:  []string{".risor"},
		})
	}
	if r.scriptsDir != "" {
		return importer.NewLocalImporter(importer.LocalImporterOptions{
			GlobalNames: globalNames,
			SourceDir:   r.scriptsDir,
			Extensions:  []string{".risor"},
		})
	}
	return nil
}

// LoadScript reads a .risor file and returns its source code. A bare name
// such as "summary" gets the .risor extension appended.
// When an fs.FS is configured, uses fs.ReadFile on the embedded filesystem.
// Otherwise, uses os.ReadFile with scriptsDir as the base directory.
func (r *Runtime) LoadScript(path string) (string, error) {
	path = ScriptPath(path)
	if r.fsys != nil {
		fsPath := strings.TrimPrefix(filepath.ToSlash(path), "/")
		data, err := fs.ReadFile(r.fsys, fsPath)
		if err != nil {
			return "", fmt.Errorf("runtime: loading script %s from fs: %w", fsPath, err)
		}
		return string(data), nil
	}

	fullPath := path
	if !filepath.IsAbs(path) && r.scriptsDir != "" {
		fullPath = filepath.Join(r.scriptsDir, path)
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		return "", fmt.Errorf("runtime: loading script %s: %w", fullPath, err)
	}
	return string(data), nil
}

// ScriptPath appends the .risor extension when name has none.
func ScriptPath(name string) string {
	if filepath.Ext(name) == "" {
		return name + ".risor"
	}
	return name
}

// buildGlobals constructs the full set of globals exposed to Risor scripts.
func (r *Runtime) buildGlobals(extra map[string]any) map[string]any {
	globals := map[string]any{
		"emit": makeEmitFn(r),
		"log":  makeLogModule(r.logger),
	}

	if r.grid != nil {
		globals["row_count"] = makeRowCountFn(r.grid)
		globals["row"] = makeRowFn(r.grid)
		globals["cell"] = makeCellFn(r.grid)
		globals["number_at"] = makeNumberAtFn(r.grid)
		globals["adjacent"] = makeAdjacentFn(r.grid)
		globals["symbols"] = makeSymbolsFn("symbols", r.grid.FindSpecialSymbols)
		globals["gears"] = makeSymbolsFn("gears", r.grid.FindGears)
		globals["part_numbers"] = makePartNumbersFn(r.grid)
		globals["gear_ratios"] = makeGearRatiosFn(r.grid)
		globals["part_sum"] = makeSumFn("part_sum", r.grid.SumPartNumbers)
		globals["gear_ratio_sum"] = makeSumFn("gear_ratio_sum", r.grid.SumGearRatios)
	}

	// Expose the Store if available.
	if r.store != nil {
		globals["reports"] = makeReportsFn(r.store)
		globals["db_query"] = makeDBQueryFn(r.store)
	}

	for k, v := range extra {
		globals[k] = v
	}
	return globals
}

func (r *Runtime) emit(name string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emitted[name] = value
}
