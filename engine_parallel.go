package schematic

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/jward/schematic/internal/store"
)

// workItem holds everything a parallel analysis worker needs.
type workItem struct {
	path        string
	schematicID int64
	grid        *Schematic
	batch       *store.BatchedStore
}

// AnalyzeFilesParallel analyzes files using a three-phase pipeline:
//
//	Phase A (serial):   Read, hash check, delete old data, insert schematic records.
//	Phase B (parallel): Symbol scan and adjacency resolution via worker pool.
//	Phase C (serial):   Commit batches to SQLite and record totals.
func (e *Engine) AnalyzeFilesParallel(ctx context.Context, paths []string) error {
	var errs []error

	// ---- Phase A: Serial file preparation ----
	var items []workItem
	for _, path := range paths {
		item, skip, err := e.prepareFile(ctx, path)
		if err != nil {
			errs = append(errs, fmt.Errorf("prepare %s: %w", path, err))
			continue
		}
		if skip {
			continue
		}
		item.batch = store.NewBatchedStore()
		items = append(items, item)
	}

	if len(items) > 0 {
		errs = append(errs, e.runWorkers(ctx, items)...)
	}

	if len(errs) > 0 {
		return fmt.Errorf("analysis had %d error(s): %w", len(errs), errs[0])
	}
	return nil
}

func (e *Engine) runWorkers(ctx context.Context, items []workItem) []error {
	// ---- Phase B: Parallel analysis ----
	numWorkers := e.workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	numWorkers = max(1, min(numWorkers, len(items)))

	workCh := make(chan workItem, len(items))
	for _, item := range items {
		workCh <- item
	}
	close(workCh)

	type result struct {
		item   workItem
		totals totals
		err    error
	}
	resultCh := make(chan result, len(items))

	var wg sync.WaitGroup
	for range numWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range workCh {
				if err := ctx.Err(); err != nil {
					resultCh <- result{item: item, err: err}
					continue
				}
				t, err := analyzeInto(item.batch, item.schematicID, item.grid)
				resultCh <- result{item: item, totals: t, err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	// ---- Phase C: Serial commit ----
	var errs []error
	for res := range resultCh {
		if res.err != nil {
			errs = append(errs, fmt.Errorf("analyze %s: %w", res.item.path, res.err))
			e.discard(res.item)
			continue
		}
		if err := e.store.CommitBatch(res.item.batch); err != nil {
			errs = append(errs, fmt.Errorf("commit %s: %w", res.item.path, err))
			e.discard(res.item)
			continue
		}
		if err := e.finishFile(res.item, res.totals); err != nil {
			errs = append(errs, fmt.Errorf("finish %s: %w", res.item.path, err))
			e.discard(res.item)
		}
	}
	return errs
}

// prepareFile does Phase A work for a single file: read, hash check,
// cleanup, schematic record. skip=true means the file is unchanged.
func (e *Engine) prepareFile(_ context.Context, path string) (workItem, bool, error) {
	content, grid, err := readSchematic(path)
	if err != nil {
		return workItem{}, false, err
	}
	hash := store.ContentHash(content)

	existing, err := e.store.SchematicByPath(path)
	if err != nil {
		return workItem{}, false, fmt.Errorf("lookup schematic: %w", err)
	}
	if existing != nil && existing.Hash == hash {
		e.logger.Debug("unchanged, skipping", slog.String("path", path))
		return workItem{}, true, nil
	}

	if existing != nil {
		if err := e.store.DeleteSchematicData(existing.ID); err != nil {
			return workItem{}, false, fmt.Errorf("delete old data: %w", err)
		}
	}

	id, err := e.store.InsertSchematic(&store.Schematic{
		Path:         path,
		Hash:         hash,
		LastAnalyzed: time.Now(),
	})
	if err != nil {
		return workItem{}, false, fmt.Errorf("insert schematic: %w", err)
	}

	return workItem{
		path:        path,
		schematicID: id,
		grid:        grid,
	}, false, nil
}

// discard removes a half-written schematic so the next run does not mistake
// it for an unchanged file.
func (e *Engine) discard(item workItem) {
	if err := e.store.DeleteSchematicData(item.schematicID); err != nil {
		e.logger.Warn("discard failed analysis",
			slog.String("path", item.path),
			slog.Any("err", err),
		)
	}
}
