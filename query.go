package schematic

import (
	"fmt"

	"github.com/jward/schematic/internal/store"
)

// Public type aliases for internal store types used in the QueryBuilder API.
// These are Go type aliases (=), identical to the internal types at compile
// time.

type Store = store.Store
type StoredSchematic = store.Schematic

// QueryBuilder provides read-only queries over stored analyses.
type QueryBuilder struct {
	store *store.Store
}

// NewQueryBuilder wraps an already-open Store.
func NewQueryBuilder(s *Store) *QueryBuilder {
	return &QueryBuilder{store: s}
}

// Reports returns every stored analysis ordered by path.
func (q *QueryBuilder) Reports() ([]*StoredSchematic, error) {
	all, err := q.store.Schematics()
	if err != nil {
		return nil, fmt.Errorf("reports: %w", err)
	}
	return all, nil
}

// Report returns the stored analysis for path, or ErrNotAnalyzed.
func (q *QueryBuilder) Report(path string) (*StoredSchematic, error) {
	sc, err := q.store.SchematicByPath(path)
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	if sc == nil {
		return nil, fmt.Errorf("report %s: %w", path, ErrNotAnalyzed)
	}
	return sc, nil
}

// PartNumbers returns the stored part numbers of path in row-major order.
func (q *QueryBuilder) PartNumbers(path string) ([]Number, error) {
	sc, err := q.Report(path)
	if err != nil {
		return nil, fmt.Errorf("part numbers: %w", err)
	}
	nums, err := q.store.NumbersBySchematic(sc.ID)
	if err != nil {
		return nil, fmt.Errorf("part numbers: %w", err)
	}
	out := make([]Number, len(nums))
	for i, n := range nums {
		out[i] = numberFromStore(n)
	}
	return out, nil
}

// GearRatios returns the stored gears of path that touch exactly two
// numbers, in row-major gear order.
func (q *QueryBuilder) GearRatios(path string) ([]GearRatio, error) {
	sc, err := q.Report(path)
	if err != nil {
		return nil, fmt.Errorf("gear ratios: %w", err)
	}
	pairs, err := q.store.GearPairs(sc.ID)
	if err != nil {
		return nil, fmt.Errorf("gear ratios: %w", err)
	}
	out := make([]GearRatio, len(pairs))
	for i, p := range pairs {
		a, b := numberFromStore(p.Parts[0]), numberFromStore(p.Parts[1])
		out[i] = GearRatio{
			Gear:  symbolFromStore(p.Gear),
			Parts: [2]Number{a, b},
			Ratio: uint64(a.Value) * uint64(b.Value),
		}
	}
	return out, nil
}

// PartAt returns the stored part number covering (row, col) of path and the
// symbols it touches. ok is false when no part number covers that cell.
func (q *QueryBuilder) PartAt(path string, row, col int) (n Number, touching []Symbol, ok bool, err error) {
	sc, err := q.Report(path)
	if err != nil {
		return Number{}, nil, false, fmt.Errorf("part at: %w", err)
	}
	var stored store.Number
	err = q.store.DB().QueryRow(
		`SELECT id, schematic_id, value, line, start_col, end_col FROM numbers
		 WHERE schematic_id = ? AND line = ? AND start_col <= ? AND end_col >= ?`,
		sc.ID, row, col, col,
	).Scan(&stored.ID, &stored.SchematicID, &stored.Value, &stored.Line, &stored.StartCol, &stored.EndCol)
	if err != nil {
		if isNoRows(err) {
			return Number{}, nil, false, nil
		}
		return Number{}, nil, false, fmt.Errorf("part at: %w", err)
	}
	syms, err := q.store.SymbolsByNumber(stored.ID)
	if err != nil {
		return Number{}, nil, false, fmt.Errorf("part at: %w", err)
	}
	for _, s := range syms {
		touching = append(touching, symbolFromStore(s))
	}
	return numberFromStore(&stored), touching, true, nil
}

// AdjacentAt returns the stored symbol at (row, col) of path and the part
// numbers linked to it, ordered by position. ok is false when no special
// symbol sits at that cell.
func (q *QueryBuilder) AdjacentAt(path string, row, col int) (sym Symbol, nums []Number, ok bool, err error) {
	sc, err := q.Report(path)
	if err != nil {
		return Symbol{}, nil, false, fmt.Errorf("adjacent at: %w", err)
	}
	var stored store.Symbol
	err = q.store.DB().QueryRow(
		`SELECT id, schematic_id, line, col, char, kind FROM symbols
		 WHERE schematic_id = ? AND line = ? AND col = ?`,
		sc.ID, row, col,
	).Scan(&stored.ID, &stored.SchematicID, &stored.Line, &stored.Col, &stored.Char, &stored.Kind)
	if err != nil {
		if isNoRows(err) {
			return Symbol{}, nil, false, nil
		}
		return Symbol{}, nil, false, fmt.Errorf("adjacent at: %w", err)
	}
	linked, err := q.store.NumbersBySymbol(stored.ID)
	if err != nil {
		return Symbol{}, nil, false, fmt.Errorf("adjacent at: %w", err)
	}
	for _, n := range linked {
		nums = append(nums, numberFromStore(n))
	}
	return symbolFromStore(&stored), nums, true, nil
}

// numberFromStore rebuilds the signature from the stored column span.
func numberFromStore(n *store.Number) Number {
	out := Number{Value: uint32(n.Value)}
	for c := n.StartCol; c <= n.EndCol; c++ {
		out.Signature = append(out.Signature, Coordinate{Row: n.Line, Col: c})
	}
	return out
}

func symbolFromStore(s *store.Symbol) Symbol {
	var ch rune
	for _, r := range s.Char {
		ch = r
		break
	}
	return Symbol{
		Coordinate: Coordinate{Row: s.Line, Col: s.Col},
		Char:       ch,
		Kind:       SymbolKind(s.Kind),
	}
}
