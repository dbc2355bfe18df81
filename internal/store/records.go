package store

import (
	"database/sql"
	"fmt"
)

// --- Schematic operations ---

func (s *Store) InsertSchematic(sc *Schematic) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO schematics (path, hash, row_count, part_sum, gear_ratio_sum, last_analyzed)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sc.Path, sc.Hash, sc.RowCount, sc.PartSum, sc.GearRatioSum, sc.LastAnalyzed,
	)
	if err != nil {
		return 0, fmt.Errorf("insert schematic: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	sc.ID = id
	return id, nil
}

// UpdateTotals records the aggregate answers for an analyzed schematic.
func (s *Store) UpdateTotals(schematicID int64, rowCount int, partSum, gearRatioSum int64) error {
	_, err := s.db.Exec(
		"UPDATE schematics SET row_count = ?, part_sum = ?, gear_ratio_sum = ? WHERE id = ?",
		rowCount, partSum, gearRatioSum, schematicID,
	)
	if err != nil {
		return fmt.Errorf("update totals: %w", err)
	}
	return nil
}

const schematicColumns = "id, path, hash, row_count, part_sum, gear_ratio_sum, last_analyzed"

func scanSchematic(scanner interface{ Scan(...any) error }) (*Schematic, error) {
	sc := &Schematic{}
	err := scanner.Scan(&sc.ID, &sc.Path, &sc.Hash, &sc.RowCount, &sc.PartSum, &sc.GearRatioSum, &sc.LastAnalyzed)
	if err != nil {
		return nil, err
	}
	return sc, nil
}

// SchematicByPath returns nil, nil when path has not been analyzed.
func (s *Store) SchematicByPath(path string) (*Schematic, error) {
	sc, err := scanSchematic(s.db.QueryRow(
		"SELECT "+schematicColumns+" FROM schematics WHERE path = ?", path,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("schematic by path: %w", err)
	}
	return sc, nil
}

// Schematics returns every analyzed schematic ordered by path.
func (s *Store) Schematics() ([]*Schematic, error) {
	rows, err := s.db.Query("SELECT " + schematicColumns + " FROM schematics ORDER BY path")
	if err != nil {
		return nil, fmt.Errorf("schematics: %w", err)
	}
	defer rows.Close()
	var out []*Schematic
	for rows.Next() {
		sc, err := scanSchematic(rows)
		if err != nil {
			return nil, fmt.Errorf("scan schematic: %w", err)
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

// --- Symbol operations ---

func (s *Store) InsertSymbol(sym *Symbol) (int64, error) {
	return insertSymbolExec(s.db, sym)
}

func insertSymbolExec(ex execer, sym *Symbol) (int64, error) {
	res, err := ex.Exec(
		"INSERT INTO symbols (schematic_id, line, col, char, kind) VALUES (?, ?, ?, ?, ?)",
		sym.SchematicID, sym.Line, sym.Col, sym.Char, sym.Kind,
	)
	if err != nil {
		return 0, fmt.Errorf("insert symbol: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	sym.ID = id
	return id, nil
}

const symbolColumns = "id, schematic_id, line, col, char, kind"

func scanSymbols(rows *sql.Rows) ([]*Symbol, error) {
	defer rows.Close()
	var out []*Symbol
	for rows.Next() {
		sym := &Symbol{}
		if err := rows.Scan(&sym.ID, &sym.SchematicID, &sym.Line, &sym.Col, &sym.Char, &sym.Kind); err != nil {
			return nil, fmt.Errorf("scan symbol: %w", err)
		}
		out = append(out, sym)
	}
	return out, rows.Err()
}

// SymbolsBySchematic returns a schematic's symbols in row-major order.
func (s *Store) SymbolsBySchematic(schematicID int64) ([]*Symbol, error) {
	rows, err := s.db.Query(
		"SELECT "+symbolColumns+" FROM symbols WHERE schematic_id = ? ORDER BY line, col", schematicID,
	)
	if err != nil {
		return nil, fmt.Errorf("symbols by schematic: %w", err)
	}
	return scanSymbols(rows)
}

// SymbolsByNumber returns the symbols a stored number touches.
func (s *Store) SymbolsByNumber(numberID int64) ([]*Symbol, error) {
	rows, err := s.db.Query(
		`SELECT s.id, s.schematic_id, s.line, s.col, s.char, s.kind
		 FROM symbols s JOIN adjacencies a ON a.symbol_id = s.id
		 WHERE a.number_id = ? ORDER BY s.line, s.col`, numberID,
	)
	if err != nil {
		return nil, fmt.Errorf("symbols by number: %w", err)
	}
	return scanSymbols(rows)
}

// --- Number operations ---

func (s *Store) InsertNumber(n *Number) (int64, error) {
	return insertNumberExec(s.db, n)
}

func insertNumberExec(ex execer, n *Number) (int64, error) {
	res, err := ex.Exec(
		"INSERT INTO numbers (schematic_id, value, line, start_col, end_col) VALUES (?, ?, ?, ?, ?)",
		n.SchematicID, n.Value, n.Line, n.StartCol, n.EndCol,
	)
	if err != nil {
		return 0, fmt.Errorf("insert number: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	n.ID = id
	return id, nil
}

const numberColumns = "id, schematic_id, value, line, start_col, end_col"

func scanNumbers(rows *sql.Rows) ([]*Number, error) {
	defer rows.Close()
	var out []*Number
	for rows.Next() {
		n := &Number{}
		if err := rows.Scan(&n.ID, &n.SchematicID, &n.Value, &n.Line, &n.StartCol, &n.EndCol); err != nil {
			return nil, fmt.Errorf("scan number: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// NumbersBySchematic returns a schematic's part numbers in row-major order.
func (s *Store) NumbersBySchematic(schematicID int64) ([]*Number, error) {
	rows, err := s.db.Query(
		"SELECT "+numberColumns+" FROM numbers WHERE schematic_id = ? ORDER BY line, start_col", schematicID,
	)
	if err != nil {
		return nil, fmt.Errorf("numbers by schematic: %w", err)
	}
	return scanNumbers(rows)
}

// NumbersBySymbol returns the numbers a stored symbol touches.
func (s *Store) NumbersBySymbol(symbolID int64) ([]*Number, error) {
	rows, err := s.db.Query(
		`SELECT n.id, n.schematic_id, n.value, n.line, n.start_col, n.end_col
		 FROM numbers n JOIN adjacencies a ON a.number_id = n.id
		 WHERE a.symbol_id = ? ORDER BY n.line, n.start_col`, symbolID,
	)
	if err != nil {
		return nil, fmt.Errorf("numbers by symbol: %w", err)
	}
	return scanNumbers(rows)
}

// --- Adjacency operations ---

func (s *Store) InsertAdjacency(a *Adjacency) (int64, error) {
	return insertAdjacencyExec(s.db, a)
}

func insertAdjacencyExec(ex execer, a *Adjacency) (int64, error) {
	res, err := ex.Exec(
		"INSERT INTO adjacencies (symbol_id, number_id) VALUES (?, ?)",
		a.SymbolID, a.NumberID,
	)
	if err != nil {
		return 0, fmt.Errorf("insert adjacency: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	a.ID = id
	return id, nil
}

// GearPairs returns every gear in the schematic that touches exactly two
// stored numbers, in row-major gear order.
func (s *Store) GearPairs(schematicID int64) ([]*GearPair, error) {
	rows, err := s.db.Query(
		`SELECT s.id, s.schematic_id, s.line, s.col, s.char, s.kind
		 FROM symbols s JOIN adjacencies a ON a.symbol_id = s.id
		 WHERE s.schematic_id = ? AND s.kind = 'gear'
		 GROUP BY s.id HAVING COUNT(a.id) = 2
		 ORDER BY s.line, s.col`, schematicID,
	)
	if err != nil {
		return nil, fmt.Errorf("gear pairs: %w", err)
	}
	gears, err := scanSymbols(rows)
	if err != nil {
		return nil, fmt.Errorf("gear pairs: %w", err)
	}

	pairs := make([]*GearPair, 0, len(gears))
	for _, g := range gears {
		nums, err := s.NumbersBySymbol(g.ID)
		if err != nil {
			return nil, fmt.Errorf("gear pairs: %w", err)
		}
		if len(nums) != 2 {
			return nil, fmt.Errorf("gear pairs: gear %d has %d numbers", g.ID, len(nums))
		}
		pairs = append(pairs, &GearPair{Gear: g, Parts: [2]*Number{nums[0], nums[1]}})
	}
	return pairs, nil
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}
