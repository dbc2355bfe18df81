package schematic

import (
	"database/sql"
	"errors"
)

var (
	// ErrSourceUnavailable indicates the backing text source could not be
	// opened or read. No Schematic is produced.
	ErrSourceUnavailable = errors.New("schematic: source unavailable")
	// ErrNotAnalyzed indicates a query referenced a path that has no stored
	// analysis.
	ErrNotAnalyzed = errors.New("schematic: path has not been analyzed")
)

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
