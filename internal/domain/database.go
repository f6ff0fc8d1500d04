package domain

import "fmt"

// VectorRecord binds a chunk to its embedding vector. Content is duplicated
// from the chunk so retrieval never needs the source document.
type VectorRecord struct {
	ChunkID int
	Content string
	Vector  []float32
	Pages   []int
}

// VectorDatabase is the persisted output of the indexing stage. It is created
// once and read-only afterwards. Model and Dimensions identify the embedding
// model used at creation time; queries against a different model are rejected.
type VectorDatabase struct {
	Model      string
	Dimensions int
	Records    []VectorRecord
}

// Len returns the number of stored records.
func (db *VectorDatabase) Len() int { return len(db.Records) }

// Validate checks the structural invariants: a recorded model identifier,
// uniform vector dimensionality, non-empty contents and unique chunk ids.
// An empty database (zero records) is valid.
func (db *VectorDatabase) Validate() error {
	if db.Model == "" {
		return fmt.Errorf("missing embedding model identifier: %w", ErrModelMismatch)
	}
	if db.Dimensions <= 0 && len(db.Records) > 0 {
		return fmt.Errorf("dimensions must be positive, got %d: %w", db.Dimensions, ErrDimMismatch)
	}
	seen := make(map[int]struct{}, len(db.Records))
	for i, rec := range db.Records {
		if rec.Content == "" {
			return fmt.Errorf("record %d: empty content", i)
		}
		if len(rec.Vector) != db.Dimensions {
			return fmt.Errorf("record %d: vector has %d dimensions, database declares %d: %w",
				i, len(rec.Vector), db.Dimensions, ErrDimMismatch)
		}
		if _, dup := seen[rec.ChunkID]; dup {
			return fmt.Errorf("record %d: duplicate chunk id %d", i, rec.ChunkID)
		}
		seen[rec.ChunkID] = struct{}{}
	}
	return nil
}
