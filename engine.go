package schematic

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/jward/schematic/internal/store"
)

// Engine analyzes schematic files in bulk and records the results in a
// SQLite store: file discovery, change detection, analysis, persistence and
// query access.
type Engine struct {
	store      *store.Store
	logger     *slog.Logger
	extensions map[string]bool

	// useParallel enables the worker-pool pipeline.
	useParallel bool
	workers     int
}

// Option configures an Engine.
type Option func(*Engine)

// WithParallel controls parallel analysis. When true (default), AnalyzeFiles
// uses a worker pool for reading and analysis, with the calling goroutine
// committing batches to SQLite. Set to false for serial mode.
func WithParallel(parallel bool) Option {
	return func(e *Engine) {
		e.useParallel = parallel
	}
}

// WithWorkers caps the worker pool size. Zero or less means runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = n
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithExtensions restricts directory discovery to files with the given
// extensions (".txt" by default). Extensions are matched case-insensitively.
func WithExtensions(exts ...string) Option {
	return func(e *Engine) {
		e.extensions = make(map[string]bool, len(exts))
		for _, ext := range exts {
			ext = strings.ToLower(strings.TrimSpace(ext))
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			e.extensions[ext] = true
		}
	}
}

// NewEngine creates an Engine backed by a SQLite database at dbPath.
func NewEngine(dbPath string, opts ...Option) (*Engine, error) {
	s, err := store.NewStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("schematic: create store: %w", err)
	}
	if err := s.Migrate(); err != nil {
		s.Close()
		return nil, fmt.Errorf("schematic: migrate: %w", err)
	}

	e := &Engine{
		store:       s,
		logger:      slog.Default(),
		extensions:  map[string]bool{".txt": true},
		useParallel: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Close releases the Engine's database resources.
func (e *Engine) Close() error {
	return e.store.Close()
}

// Store returns the underlying Store for direct access.
func (e *Engine) Store() *Store {
	return e.store
}

// Query returns a new QueryBuilder wrapping the Store.
func (e *Engine) Query() *QueryBuilder {
	return &QueryBuilder{store: e.store}
}

// AnalyzeFiles analyzes each path and stores the results. Files whose
// content hash matches the stored analysis are skipped. A failing file does
// not stop the others; the first error is returned with a count.
func (e *Engine) AnalyzeFiles(ctx context.Context, paths []string) error {
	start := time.Now()
	var err error
	if e.useParallel {
		err = e.AnalyzeFilesParallel(ctx, paths)
	} else {
		err = e.analyzeFilesSerial(ctx, paths)
	}
	e.logger.Info("analysis finished",
		slog.Int("files", len(paths)),
		slog.Bool("parallel", e.useParallel),
		slog.Duration("elapsed", time.Since(start)),
		slog.Any("err", err),
	)
	return err
}

func (e *Engine) analyzeFilesSerial(ctx context.Context, paths []string) error {
	var errs []error
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := e.analyzeFile(ctx, path); err != nil {
			errs = append(errs, fmt.Errorf("analyze %s: %w", path, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("analysis had %d error(s): %w", len(errs), errs[0])
	}
	return nil
}

func (e *Engine) analyzeFile(ctx context.Context, path string) error {
	item, skip, err := e.prepareFile(ctx, path)
	if err != nil {
		return err
	}
	if skip {
		return nil
	}
	t, err := analyzeInto(e.store, item.schematicID, item.grid)
	if err == nil {
		err = e.finishFile(item, t)
	}
	if err != nil {
		e.discard(item)
		return err
	}
	return nil
}

// finishFile records the aggregate answers once all rows for the file are
// in the store.
func (e *Engine) finishFile(item workItem, t totals) error {
	if err := e.store.UpdateTotals(item.schematicID, t.rows, int64(t.partSum), int64(t.gearRatioSum)); err != nil {
		return err
	}
	e.logger.Debug("analyzed schematic",
		slog.String("path", item.path),
		slog.Int("rows", t.rows),
		slog.Int("symbols", t.symbols),
		slog.Int("parts", t.parts),
		slog.Uint64("part_sum", t.partSum),
		slog.Uint64("gear_ratio_sum", t.gearRatioSum),
	)
	return nil
}

// totals summarizes one analysis pass.
type totals struct {
	rows         int
	symbols      int
	parts        int
	partSum      uint64
	gearRatioSum uint64
}

// analyzeInto writes every special symbol, every distinct part number and
// every symbol→number link of s into ds, and returns the aggregate answers.
// A number touched by several symbols is written once.
func analyzeInto(ds store.DataStore, schematicID int64, s *Schematic) (totals, error) {
	t := totals{rows: s.RowCount()}
	numberIDs := make(map[string]int64)

	for _, sym := range s.FindSpecialSymbols() {
		t.symbols++
		symID, err := ds.InsertSymbol(&store.Symbol{
			SchematicID: schematicID,
			Line:        sym.Row,
			Col:         sym.Col,
			Char:        string(sym.Char),
			Kind:        string(sym.Kind),
		})
		if err != nil {
			return t, err
		}

		adjacent := s.AdjacentNumbers(sym)
		for _, n := range adjacent {
			k := n.key()
			numID, seen := numberIDs[k]
			if !seen {
				numID, err = ds.InsertNumber(&store.Number{
					SchematicID: schematicID,
					Value:       int64(n.Value),
					Line:        n.Start().Row,
					StartCol:    n.Start().Col,
					EndCol:      n.End().Col,
				})
				if err != nil {
					return t, err
				}
				numberIDs[k] = numID
				t.parts++
				t.partSum += uint64(n.Value)
			}
			if _, err := ds.InsertAdjacency(&store.Adjacency{SymbolID: symID, NumberID: numID}); err != nil {
				return t, err
			}
		}

		if sym.Kind == KindGear && len(adjacent) == 2 {
			t.gearRatioSum += uint64(adjacent[0].Value) * uint64(adjacent[1].Value)
		}
	}
	return t, nil
}

// AnalyzeDirectory discovers schematic files under root and analyzes them.
func (e *Engine) AnalyzeDirectory(ctx context.Context, root string) error {
	paths, err := e.gitListFiles(root)
	if err != nil {
		// Not a git repo or git not available; walk instead.
		paths, err = e.walkListFiles(root)
		if err != nil {
			return err
		}
	}
	e.logger.Debug("discovered schematics", slog.String("root", root), slog.Int("count", len(paths)))
	return e.AnalyzeFiles(ctx, paths)
}

func (e *Engine) wantFile(path string) bool {
	return e.extensions[strings.ToLower(filepath.Ext(path))]
}

// gitListFiles uses git ls-files to discover tracked and untracked (but not
// ignored) files under root, filtered by extension.
func (e *Engine) gitListFiles(root string) ([]string, error) {
	cmd := exec.Command("git", "ls-files", "--cached", "--others", "--exclude-standard")
	cmd.Dir = root
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("git ls-files: %w", err)
	}

	var paths []string
	for _, line := range strings.Split(stdout.String(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		absPath := filepath.Join(root, line)
		if e.wantFile(absPath) {
			paths = append(paths, absPath)
		}
	}
	return paths, nil
}

// walkListFiles discovers files by walking the filesystem, used as a fallback
// when git is not available. Skips hidden directories.
func (e *Engine) walkListFiles(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if e.wantFile(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}
	return paths, nil
}

// readSchematic reads path for hashing and analysis. Read failures wrap
// ErrSourceUnavailable.
func readSchematic(path string) ([]byte, *Schematic, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
	}
	return content, Parse(string(content)), nil
}
