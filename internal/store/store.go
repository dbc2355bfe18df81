package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store is the SQLite data access layer for analyzed schematics.
type Store struct {
	db *sql.DB
}

// NewStore opens a SQLite database at dbPath with WAL mode enabled.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use in transactions.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Migrate creates all tables and indexes. Idempotent.
func (s *Store) Migrate() error {
	_, err := s.db.Exec(schemaDDL)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS schematics (
  id              INTEGER PRIMARY KEY,
  path            TEXT NOT NULL UNIQUE,
  hash            TEXT,
  row_count       INTEGER DEFAULT 0,
  part_sum        INTEGER DEFAULT 0,
  gear_ratio_sum  INTEGER DEFAULT 0,
  last_analyzed   TIMESTAMP
);

CREATE TABLE IF NOT EXISTS symbols (
  id              INTEGER PRIMARY KEY,
  schematic_id    INTEGER NOT NULL REFERENCES schematics(id),
  line            INTEGER NOT NULL,
  col             INTEGER NOT NULL,
  char            TEXT NOT NULL,
  kind            TEXT NOT NULL
);

-- Only numbers adjacent to at least one symbol are stored.
CREATE TABLE IF NOT EXISTS numbers (
  id              INTEGER PRIMARY KEY,
  schematic_id    INTEGER NOT NULL REFERENCES schematics(id),
  value           INTEGER NOT NULL,
  line            INTEGER NOT NULL,
  start_col       INTEGER NOT NULL,
  end_col         INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS adjacencies (
  id              INTEGER PRIMARY KEY,
  symbol_id       INTEGER NOT NULL REFERENCES symbols(id),
  number_id       INTEGER NOT NULL REFERENCES numbers(id)
);

CREATE INDEX IF NOT EXISTS idx_symbols_schematic ON symbols(schematic_id);
CREATE INDEX IF NOT EXISTS idx_symbols_position ON symbols(schematic_id, line, col);
CREATE INDEX IF NOT EXISTS idx_symbols_kind ON symbols(kind);
CREATE INDEX IF NOT EXISTS idx_numbers_schematic ON numbers(schematic_id);
CREATE INDEX IF NOT EXISTS idx_numbers_position ON numbers(schematic_id, line, start_col);
CREATE INDEX IF NOT EXISTS idx_adjacencies_symbol ON adjacencies(symbol_id);
CREATE INDEX IF NOT EXISTS idx_adjacencies_number ON adjacencies(number_id);
`

// DeleteSchematicData transactionally removes a schematic and everything
// recorded for it. Deletes in reverse-dependency order to respect FK
// constraints.
func (s *Store) DeleteSchematicData(schematicID int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.Query("SELECT id FROM symbols WHERE schematic_id = ?", schematicID)
	if err != nil {
		return fmt.Errorf("query symbols: %w", err)
	}
	var symbolIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("scan symbol id: %w", err)
		}
		symbolIDs = append(symbolIDs, id)
	}
	rows.Close()

	if len(symbolIDs) > 0 {
		q := "DELETE FROM adjacencies WHERE symbol_id IN (" + placeholderList(len(symbolIDs)) + ")"
		if _, err := tx.Exec(q, int64sToArgs(symbolIDs)...); err != nil {
			return fmt.Errorf("delete adjacencies: %w", err)
		}
	}

	for _, q := range []string{
		"DELETE FROM numbers WHERE schematic_id = ?",
		"DELETE FROM symbols WHERE schematic_id = ?",
		"DELETE FROM schematics WHERE id = ?",
	} {
		if _, err := tx.Exec(q, schematicID); err != nil {
			return fmt.Errorf("delete schematic data: %w", err)
		}
	}

	return tx.Commit()
}
