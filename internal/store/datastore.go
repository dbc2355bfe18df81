package store

// DataStore is the interface for analysis-phase writes. Both Store (direct
// SQLite) and BatchedStore (in-memory buffering for parallel analysis)
// implement this interface.
type DataStore interface {
	InsertSymbol(sym *Symbol) (int64, error)
	InsertNumber(n *Number) (int64, error)
	InsertAdjacency(a *Adjacency) (int64, error)
}

// Compile-time check: *Store satisfies DataStore.
var _ DataStore = (*Store)(nil)
