// Package indexing builds the vector database from an extracted document.
package indexing

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/VishnuVamsi7/DocReporter/internal/chunker"
	"github.com/VishnuVamsi7/DocReporter/internal/domain"
	"github.com/VishnuVamsi7/DocReporter/internal/metrics"
	"github.com/VishnuVamsi7/DocReporter/internal/source"
)

// ChunkModeChars slides a fixed character window; ChunkModePages accumulates
// pages under a token budget and needs a page-structured source.
const (
	ChunkModeChars = "chars"
	ChunkModePages = "pages"
)

// Config holds chunking and embedding throughput settings.
type Config struct {
	Mode       string
	ChunkSize  int
	Overlap    int
	TokenLimit int
	BatchSize  int // texts per embedding API call
	Workers    int // concurrent embedding batches
}

// Service turns a document into a persisted-ready VectorDatabase.
type Service struct {
	embedder   Embedder
	model      string
	dimensions int
	cfg        Config
	logger     *zap.Logger
}

// New creates the indexing service. model identifies the embedding model and
// is recorded in the database; dimensions may be 0 to infer from the first
// returned vector.
func New(embedder Embedder, model string, dimensions int, cfg Config, logger *zap.Logger) *Service {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 16
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	return &Service{
		embedder:   embedder,
		model:      model,
		dimensions: dimensions,
		cfg:        cfg,
		logger:     logger,
	}
}

// BuildDatabase chunks the document and embeds all chunks. An empty document
// yields an empty (but valid) database.
func (s *Service) BuildDatabase(ctx context.Context, doc *source.Document) (*domain.VectorDatabase, error) {
	chunks, err := s.chunk(doc)
	if err != nil {
		return nil, fmt.Errorf("chunk document: %w", err)
	}
	s.logger.Info("Document chunked",
		zap.Int("chunks", len(chunks)),
		zap.String("mode", s.chunkMode(doc)),
	)
	metrics.ChunksProducedTotal.WithLabelValues(s.chunkMode(doc)).Add(float64(len(chunks)))

	if len(chunks) == 0 {
		return &domain.VectorDatabase{Model: s.model, Dimensions: s.dimensions}, nil
	}

	vectors, err := s.embedChunks(ctx, chunks)
	if err != nil {
		return nil, err
	}

	dims := s.dimensions
	if dims == 0 {
		dims = len(vectors[0])
	}

	records := make([]domain.VectorRecord, len(chunks))
	for i, c := range chunks {
		records[i] = domain.VectorRecord{
			ChunkID: c.ID,
			Content: c.Content,
			Vector:  vectors[i],
			Pages:   c.Pages,
		}
	}

	vdb := &domain.VectorDatabase{Model: s.model, Dimensions: dims, Records: records}
	if err := vdb.Validate(); err != nil {
		return nil, fmt.Errorf("built database is invalid: %w", err)
	}
	s.logger.Info("Vector database built",
		zap.Int("records", vdb.Len()),
		zap.Int("dimensions", vdb.Dimensions),
		zap.String("model", vdb.Model),
	)
	return vdb, nil
}

func (s *Service) chunkMode(doc *source.Document) string {
	if s.cfg.Mode == ChunkModePages && doc.HasPages() {
		return ChunkModePages
	}
	return ChunkModeChars
}

func (s *Service) chunk(doc *source.Document) ([]domain.Chunk, error) {
	if s.chunkMode(doc) == ChunkModePages {
		return chunker.SplitPages(doc.Pages, s.cfg.TokenLimit)
	}
	return chunker.SplitText(doc.Text, s.cfg.ChunkSize, s.cfg.Overlap)
}

// embedChunks embeds chunks in parallel bounded batches. Embedding is
// order-preserving: result i always belongs to chunk i.
func (s *Service) embedChunks(ctx context.Context, chunks []domain.Chunk) ([][]float32, error) {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}

	type batch struct {
		start int
		texts []string
	}
	var batches []batch
	for start := 0; start < len(texts); start += s.cfg.BatchSize {
		end := start + s.cfg.BatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batches = append(batches, batch{start: start, texts: texts[start:end]})
	}

	vectors := make([][]float32, len(texts))
	sem := make(chan struct{}, s.cfg.Workers)
	errCh := make(chan error, len(batches))
	var wg sync.WaitGroup

	for _, b := range batches {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(b batch) {
			defer wg.Done()
			defer func() { <-sem }()

			res, err := s.embedder.BatchEmbed(ctx, b.texts)
			if err != nil {
				errCh <- fmt.Errorf("embed batch at chunk %d: %w", b.start, err)
				return
			}
			if len(res.Embeddings) != len(b.texts) {
				errCh <- fmt.Errorf("embed batch at chunk %d: got %d vectors for %d texts",
					b.start, len(res.Embeddings), len(b.texts))
				return
			}
			for j, v := range res.Embeddings {
				vectors[b.start+j] = v
			}
		}(b)
	}
	wg.Wait()
	close(errCh)

	if err := <-errCh; err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("embedding canceled: %w", err)
	}
	return vectors, nil
}
