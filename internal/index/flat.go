// Package index provides exact nearest-neighbor search over dense vectors.
package index

import (
	"fmt"
	"sort"

	"github.com/VishnuVamsi7/DocReporter/internal/domain"
)

// FlatL2 is an exhaustive-scan L2 index. Corpora here are single-document
// scale (hundreds to low thousands of vectors), so O(n·d) per query is fine
// and results are exact. The index is append-only and safe for concurrent
// searches once built.
type FlatL2 struct {
	dim     int
	vectors [][]float32
}

// Neighbor is one search hit: squared L2 distance and the insertion position
// of the matched vector.
type Neighbor struct {
	Distance float32
	Position int
}

// NewFlatL2 creates an empty index for vectors of the given dimensionality.
func NewFlatL2(dim int) (*FlatL2, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("dimension must be positive, got %d", dim)
	}
	return &FlatL2{dim: dim}, nil
}

// Add appends vectors in order. All vectors must match the index dimension.
func (x *FlatL2) Add(vectors [][]float32) error {
	for i, v := range vectors {
		if len(v) != x.dim {
			return fmt.Errorf("vector %d has %d dimensions, index expects %d: %w",
				i, len(v), x.dim, domain.ErrDimMismatch)
		}
	}
	x.vectors = append(x.vectors, vectors...)
	return nil
}

// Ntotal returns the number of indexed vectors.
func (x *FlatL2) Ntotal() int { return len(x.vectors) }

// Dim returns the index dimensionality.
func (x *FlatL2) Dim() int { return x.dim }

// Search returns up to k nearest neighbors of query, ascending by squared L2
// distance, ties broken by insertion order. k is clamped to Ntotal; an empty
// index yields an empty result.
func (x *FlatL2) Search(query []float32, k int) ([]Neighbor, error) {
	if len(query) != x.dim {
		return nil, fmt.Errorf("query has %d dimensions, index expects %d: %w",
			len(query), x.dim, domain.ErrDimMismatch)
	}
	if k <= 0 || len(x.vectors) == 0 {
		return nil, nil
	}
	if k > len(x.vectors) {
		k = len(x.vectors)
	}

	neighbors := make([]Neighbor, len(x.vectors))
	for i, v := range x.vectors {
		neighbors[i] = Neighbor{Distance: squaredL2(query, v), Position: i}
	}
	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Distance < neighbors[j].Distance
	})
	return neighbors[:k], nil
}

func squaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
