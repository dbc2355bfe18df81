package runtime

import (
	"context"
	"log/slog"

	"github.com/risor-io/risor/object"

	"github.com/jward/schematic"
)

// makeEmitFn creates "emit", which records a named result for the caller.
//
// emit(name, value) → nil
func makeEmitFn(r *Runtime) *object.Builtin {
	return object.NewBuiltin("emit", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 2 {
			return object.NewArgsError("emit", 2, len(args))
		}
		name, err := toString(args[0])
		if err != nil {
			return object.Errorf("emit: name: %v", err)
		}
		r.emit(name, args[1].Interface())
		return object.Nil
	})
}

// makeLogModule creates the "log" module with info/warn/error functions
// that write to the runtime's structured logger.
func makeLogModule(l *slog.Logger) *object.Module {
	level := func(name string, lvl slog.Level) *object.Builtin {
		return object.NewBuiltin(name, func(ctx context.Context, args ...object.Object) object.Object {
			if len(args) != 1 {
				return object.NewArgsError("log."+name, 1, len(args))
			}
			msg, ok := args[0].(*object.String)
			if !ok {
				l.Log(ctx, lvl, args[0].Inspect(), slog.String("source", "script"))
				return object.Nil
			}
			l.Log(ctx, lvl, msg.Value(), slog.String("source", "script"))
			return object.Nil
		})
	}
	return object.NewBuiltinsModule("log", map[string]object.Object{
		"info":  level("info", slog.LevelInfo),
		"warn":  level("warn", slog.LevelWarn),
		"error": level("error", slog.LevelError),
	})
}

// row_count() → int
func makeRowCountFn(g *schematic.Schematic) *object.Builtin {
	return object.NewBuiltin("row_count", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 0 {
			return object.NewArgsError("row_count", 0, len(args))
		}
		return object.NewInt(int64(g.RowCount()))
	})
}

// row(i) → string or nil
func makeRowFn(g *schematic.Schematic) *object.Builtin {
	return object.NewBuiltin("row", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 1 {
			return object.NewArgsError("row", 1, len(args))
		}
		i, err := toInt(args[0])
		if err != nil {
			return object.Errorf("row: %v", err)
		}
		text, ok := g.Row(i)
		if !ok {
			return object.Nil
		}
		return object.NewString(text)
	})
}

// cell(row, col) → string or nil
func makeCellFn(g *schematic.Schematic) *object.Builtin {
	return object.NewBuiltin("cell", func(ctx context.Context, args ...object.Object) object.Object {
		r, c, errObj := rowColArgs("cell", args)
		if errObj != nil {
			return errObj
		}
		ch, ok := g.Cell(r, c)
		if !ok {
			return object.Nil
		}
		return object.NewString(string(ch))
	})
}

// number_at(row, col) → number map or nil
func makeNumberAtFn(g *schematic.Schematic) *object.Builtin {
	return object.NewBuiltin("number_at", func(ctx context.Context, args ...object.Object) object.Object {
		r, c, errObj := rowColArgs("number_at", args)
		if errObj != nil {
			return errObj
		}
		n, ok := g.NumberAt(r, c)
		if !ok {
			return object.Nil
		}
		return numberToMap(n)
	})
}

// adjacent(row, col) → list of number maps touching that cell
func makeAdjacentFn(g *schematic.Schematic) *object.Builtin {
	return object.NewBuiltin("adjacent", func(ctx context.Context, args ...object.Object) object.Object {
		r, c, errObj := rowColArgs("adjacent", args)
		if errObj != nil {
			return errObj
		}
		sym := schematic.Symbol{Coordinate: schematic.Coordinate{Row: r, Col: c}}
		return numbersToList(g.AdjacentNumbers(sym))
	})
}

// symbols() / gears() → list of symbol maps
func makeSymbolsFn(name string, find func() []schematic.Symbol) *object.Builtin {
	return object.NewBuiltin(name, func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 0 {
			return object.NewArgsError(name, 0, len(args))
		}
		syms := find()
		items := make([]object.Object, len(syms))
		for i, s := range syms {
			items[i] = symbolToMap(s)
		}
		return object.NewList(items)
	})
}

// part_numbers() → list of number maps
func makePartNumbersFn(g *schematic.Schematic) *object.Builtin {
	return object.NewBuiltin("part_numbers", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 0 {
			return object.NewArgsError("part_numbers", 0, len(args))
		}
		return numbersToList(g.PartNumbers())
	})
}

// gear_ratios() → list of {gear, parts, ratio}
func makeGearRatiosFn(g *schematic.Schematic) *object.Builtin {
	return object.NewBuiltin("gear_ratios", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 0 {
			return object.NewArgsError("gear_ratios", 0, len(args))
		}
		ratios := g.GearRatios()
		items := make([]object.Object, len(ratios))
		for i, gr := range ratios {
			items[i] = object.NewMap(map[string]object.Object{
				"gear":  symbolToMap(gr.Gear),
				"parts": numbersToList(gr.Parts[:]),
				"ratio": object.NewInt(int64(gr.Ratio)),
			})
		}
		return object.NewList(items)
	})
}

// part_sum() / gear_ratio_sum() → int
func makeSumFn(name string, sum func() uint64) *object.Builtin {
	return object.NewBuiltin(name, func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 0 {
			return object.NewArgsError(name, 0, len(args))
		}
		return object.NewInt(int64(sum()))
	})
}

func rowColArgs(name string, args []object.Object) (int, int, *object.Error) {
	if len(args) != 2 {
		return 0, 0, object.NewArgsError(name, 2, len(args))
	}
	r, err := toInt(args[0])
	if err != nil {
		return 0, 0, object.Errorf("%s: row: %v", name, err)
	}
	c, err := toInt(args[1])
	if err != nil {
		return 0, 0, object.Errorf("%s: col: %v", name, err)
	}
	return r, c, nil
}

func numberToMap(n schematic.Number) object.Object {
	sig := make([]object.Object, len(n.Signature))
	for i, c := range n.Signature {
		sig[i] = object.NewList([]object.Object{
			object.NewInt(int64(c.Row)),
			object.NewInt(int64(c.Col)),
		})
	}
	return object.NewMap(map[string]object.Object{
		"value":     object.NewInt(int64(n.Value)),
		"row":       object.NewInt(int64(n.Start().Row)),
		"start_col": object.NewInt(int64(n.Start().Col)),
		"end_col":   object.NewInt(int64(n.End().Col)),
		"signature": object.NewList(sig),
	})
}

func numbersToList(nums []schematic.Number) object.Object {
	items := make([]object.Object, len(nums))
	for i, n := range nums {
		items[i] = numberToMap(n)
	}
	return object.NewList(items)
}

func symbolToMap(s schematic.Symbol) object.Object {
	return object.NewMap(map[string]object.Object{
		"row":  object.NewInt(int64(s.Row)),
		"col":  object.NewInt(int64(s.Col)),
		"char": object.NewString(string(s.Char)),
		"kind": object.NewString(string(s.Kind)),
	})
}
