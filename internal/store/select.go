package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotSelect is returned by Select for statements that are not queries.
var ErrNotSelect = errors.New("only SELECT queries are allowed")

// Select runs a read-only query over the result tables and returns one map
// per row keyed by column name. Values are nil, int64, float64 or string.
// The statement runs on a connection with query_only set, so a write that
// slips past the prefix check still fails inside SQLite.
func (s *Store) Select(ctx context.Context, query string, args ...any) ([]map[string]any, error) {
	head := strings.ToUpper(strings.TrimSpace(query))
	if !strings.HasPrefix(head, "SELECT") && !strings.HasPrefix(head, "WITH") {
		return nil, ErrNotSelect
	}

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("select: conn: %w", err)
	}
	defer conn.Close()
	if _, err := conn.ExecContext(ctx, "PRAGMA query_only = ON"); err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	defer conn.ExecContext(context.Background(), "PRAGMA query_only = OFF")

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("select: columns: %w", err)
	}
	out := []map[string]any{}
	for rows.Next() {
		cells := make([]any, len(cols))
		dest := make([]any, len(cols))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("select: scan: %w", err)
		}
		row := make(map[string]any, len(cols))
		for i, col := range cols {
			row[col] = normalizeCell(cells[i])
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	return out, nil
}

func normalizeCell(v any) any {
	switch v := v.(type) {
	case nil, int64, float64, string:
		return v
	case []byte:
		return string(v)
	case bool:
		if v {
			return int64(1)
		}
		return int64(0)
	default:
		return fmt.Sprint(v)
	}
}
