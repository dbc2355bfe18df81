package store

import "fmt"

// CommitBatch inserts all buffered data from a BatchedStore into SQLite
// within a single transaction. Fake (negative) IDs are remapped to real
// IDs, and adjacency references are rewritten using the fakeToReal mapping.
//
// Insert order respects FK dependencies:
//  1. Symbols (depend on schematic_id only, which is already real)
//  2. Numbers (depend on schematic_id only)
//  3. Adjacencies (depend on symbol_id and number_id)
func (s *Store) CommitBatch(batch *BatchedStore) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("commit batch: begin: %w", err)
	}
	defer tx.Rollback()

	fakeToReal := make(map[int64]int64, len(batch.Symbols)+len(batch.Numbers))

	for _, sym := range batch.Symbols {
		fakeID := sym.ID
		realID, err := insertSymbolExec(tx, &sym)
		if err != nil {
			return fmt.Errorf("commit batch: symbol at %d:%d: %w", sym.Line, sym.Col, err)
		}
		fakeToReal[fakeID] = realID
	}

	for _, n := range batch.Numbers {
		fakeID := n.ID
		realID, err := insertNumberExec(tx, &n)
		if err != nil {
			return fmt.Errorf("commit batch: number %d: %w", n.Value, err)
		}
		fakeToReal[fakeID] = realID
	}

	for _, a := range batch.Adjacencies {
		if a.SymbolID < 0 {
			realID, ok := fakeToReal[a.SymbolID]
			if !ok {
				return fmt.Errorf("commit batch: adjacency has symbol_id=%d not in fakeToReal map", a.SymbolID)
			}
			a.SymbolID = realID
		}
		if a.NumberID < 0 {
			realID, ok := fakeToReal[a.NumberID]
			if !ok {
				return fmt.Errorf("commit batch: adjacency has number_id=%d not in fakeToReal map", a.NumberID)
			}
			a.NumberID = realID
		}
		if _, err := insertAdjacencyExec(tx, &a); err != nil {
			return fmt.Errorf("commit batch: adjacency: %w", err)
		}
	}

	return tx.Commit()
}
