// Package retrieval answers natural-language queries with the most similar
// document chunks.
package retrieval

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/VishnuVamsi7/DocReporter/internal/domain"
	"github.com/VishnuVamsi7/DocReporter/internal/index"
)

// Service embeds queries and searches the in-memory index. The index is
// rebuilt once per process from the immutable snapshot; rebuilding is
// idempotent, so identical snapshots always answer identically.
type Service struct {
	idx      *index.FlatL2
	records  []domain.VectorRecord
	embedder domain.Embedder
	model    string
	logger   *zap.Logger
}

// New builds the index from a loaded database. expectedModel is the query
// embedder's model; it must match the model recorded in the snapshot or
// similarity scores would be meaningless.
func New(vdb *domain.VectorDatabase, embedder domain.Embedder, expectedModel string, logger *zap.Logger) (*Service, error) {
	if err := vdb.Validate(); err != nil {
		return nil, fmt.Errorf("vector database: %w", err)
	}
	if vdb.Model != expectedModel {
		return nil, fmt.Errorf("database built with model %q but query embedder uses %q: %w",
			vdb.Model, expectedModel, domain.ErrModelMismatch)
	}

	svc := &Service{
		records:  vdb.Records,
		embedder: embedder,
		model:    vdb.Model,
		logger:   logger,
	}

	if vdb.Len() > 0 {
		idx, err := index.NewFlatL2(vdb.Dimensions)
		if err != nil {
			return nil, err
		}
		vectors := make([][]float32, vdb.Len())
		for i, rec := range vdb.Records {
			vectors[i] = rec.Vector
		}
		if err := idx.Add(vectors); err != nil {
			return nil, fmt.Errorf("build index: %w", err)
		}
		svc.idx = idx
		logger.Info("Index built",
			zap.Int("vectors", idx.Ntotal()),
			zap.Int("dimensions", idx.Dim()),
		)
	} else {
		logger.Warn("Vector database is empty; retrieval will return empty context")
	}

	return svc, nil
}

// RetrieveChunks returns the top-k chunks by ascending distance. An empty
// database returns an empty result, not an error.
func (s *Service) RetrieveChunks(ctx context.Context, query string, k int) (domain.RetrievalResult, error) {
	if s.idx == nil {
		return nil, nil
	}

	res, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := s.idx.Search(res.Embedding, k)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}

	result := make(domain.RetrievalResult, len(hits))
	for i, h := range hits {
		rec := s.records[h.Position]
		result[i] = domain.ScoredChunk{
			Distance: h.Distance,
			Chunk: domain.Chunk{
				ID:      rec.ChunkID,
				Content: rec.Content,
				Pages:   rec.Pages,
			},
		}
	}
	return result, nil
}

// Retrieve joins the top-k chunk contents with the stable separator in rank
// order, ready for prompt grounding.
func (s *Service) Retrieve(ctx context.Context, query string, k int) (string, error) {
	s.logger.Info("Retrieving context", zap.String("query", query), zap.Int("k", k))

	chunks, err := s.RetrieveChunks(ctx, query, k)
	if err != nil {
		return "", err
	}
	contents := make([]string, len(chunks))
	for i, sc := range chunks {
		contents[i] = sc.Chunk.Content
	}
	return strings.Join(contents, domain.ContextSeparator), nil
}
