// Package vectordb persists the vector database as a single JSON snapshot.
package vectordb

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/VishnuVamsi7/DocReporter/internal/artifact"
	"github.com/VishnuVamsi7/DocReporter/internal/domain"
)

// Save writes db to path atomically. The snapshot records the embedding
// model identifier and vector dimensionality so loads can enforce the
// same-model invariant.
func Save(path string, vdb *domain.VectorDatabase) error {
	if err := vdb.Validate(); err != nil {
		return fmt.Errorf("refusing to persist invalid database: %w", err)
	}

	data, err := json.MarshalIndent(toDTO(vdb), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal vector database: %w", err)
	}
	if err := artifact.WriteAtomic(path, data); err != nil {
		return fmt.Errorf("write vector database %s: %w", path, err)
	}
	return nil
}

// Load reads and validates a snapshot. Snapshots written as a bare record
// array (no model metadata) are rejected: retrieval against an unidentified
// embedding model is meaningless.
func Load(path string) (*domain.VectorDatabase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vector database %s: %w", path, err)
	}

	if trimmed := bytes.TrimLeft(data, " \t\r\n"); len(trimmed) > 0 && trimmed[0] == '[' {
		return nil, fmt.Errorf(
			"vector database %s is a bare record array with no embedding model metadata; re-run indexing: %w",
			path, domain.ErrModelMismatch)
	}

	var dto databaseDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("parse vector database %s: %w", path, err)
	}

	vdb := dto.toDomain()
	if err := vdb.Validate(); err != nil {
		return nil, fmt.Errorf("invalid vector database %s: %w", path, err)
	}
	return vdb, nil
}
