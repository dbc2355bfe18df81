package store

import "time"

type Schematic struct {
	ID           int64
	Path         string
	Hash         string
	RowCount     int
	PartSum      int64
	GearRatioSum int64
	LastAnalyzed time.Time
}

// Symbol is a stored special-symbol cell. Kind is "special" or "gear".
type Symbol struct {
	ID          int64
	SchematicID int64
	Line        int
	Col         int
	Char        string
	Kind        string
}

// Number is a stored part number spanning columns StartCol..EndCol of Line.
type Number struct {
	ID          int64
	SchematicID int64
	Value       int64
	Line        int
	StartCol    int
	EndCol      int
}

// Adjacency links a symbol to a number it touches.
type Adjacency struct {
	ID       int64
	SymbolID int64
	NumberID int64
}

// GearPair is a gear symbol with the two numbers it touches.
type GearPair struct {
	Gear  *Symbol
	Parts [2]*Number
}
