package runtime

import (
	"context"
	"fmt"

	"github.com/risor-io/risor/object"

	"github.com/jward/schematic/internal/store"
)

// makeReportsFn creates "reports", listing every stored analysis.
//
// reports() → list of {id, path, hash, rows, part_sum, gear_ratio_sum}
func makeReportsFn(s *store.Store) *object.Builtin {
	return object.NewBuiltin("reports", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 0 {
			return object.NewArgsError("reports", 0, len(args))
		}
		all, err := s.Schematics()
		if err != nil {
			return object.Errorf("reports: %v", err)
		}
		results := make([]object.Object, 0, len(all))
		for _, sc := range all {
			results = append(results, object.NewMap(map[string]object.Object{
				"id":             object.NewInt(sc.ID),
				"path":           object.NewString(sc.Path),
				"hash":           object.NewString(sc.Hash),
				"rows":           object.NewInt(int64(sc.RowCount)),
				"part_sum":       object.NewInt(sc.PartSum),
				"gear_ratio_sum": object.NewInt(sc.GearRatioSum),
			}))
		}
		return object.NewList(results)
	})
}

// makeDBQueryFn creates "db_query", a read-only window onto the result
// tables (schematics, symbols, numbers, adjacencies).
//
// db_query(sql, args...) → list of maps keyed by column name
func makeDBQueryFn(s *store.Store) *object.Builtin {
	return object.NewBuiltin("db_query", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) < 1 {
			return object.Errorf("db_query: expected at least 1 argument (sql), got %d", len(args))
		}
		query, err := toString(args[0])
		if err != nil {
			return object.Errorf("db_query: %v", err)
		}
		params := make([]any, 0, len(args)-1)
		for _, arg := range args[1:] {
			params = append(params, arg.Interface())
		}

		rows, err := s.Select(ctx, query, params...)
		if err != nil {
			return object.Errorf("db_query: %v", err)
		}
		list := make([]object.Object, 0, len(rows))
		for _, row := range rows {
			m := make(map[string]object.Object, len(row))
			for col, v := range row {
				m[col] = cellObject(v)
			}
			list = append(list, object.NewMap(m))
		}
		return object.NewList(list)
	})
}

// cellObject converts a value produced by store.Select.
func cellObject(v any) object.Object {
	switch v := v.(type) {
	case int64:
		return object.NewInt(v)
	case float64:
		return object.NewFloat(v)
	case string:
		return object.NewString(v)
	}
	return object.Nil
}

func toInt(obj object.Object) (int, error) {
	switch v := obj.(type) {
	case *object.Int:
		return int(v.Value()), nil
	case *object.Float:
		return int(v.Value()), nil
	}
	return 0, fmt.Errorf("expected int, got %s", obj.Type())
}

func toString(obj object.Object) (string, error) {
	if s, ok := obj.(*object.String); ok {
		return s.Value(), nil
	}
	return "", fmt.Errorf("expected string, got %s", obj.Type())
}
