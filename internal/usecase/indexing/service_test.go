package indexing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"

	"github.com/VishnuVamsi7/DocReporter/internal/domain"
	"github.com/VishnuVamsi7/DocReporter/internal/metrics"
	"github.com/VishnuVamsi7/DocReporter/internal/source"
)

func init() { metrics.Register() }

// seqEmbedder returns a vector encoding the text length, so order
// preservation is observable.
type seqEmbedder struct {
	calls atomic.Int32
	err   error
}

func (e *seqEmbedder) BatchEmbed(_ context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	e.calls.Add(1)
	if e.err != nil {
		return domain.BatchEmbeddingResult{}, e.err
	}
	embeddings := make([][]float32, len(texts))
	for i, t := range texts {
		embeddings[i] = []float32{float32(len(t)), 1}
	}
	return domain.BatchEmbeddingResult{Embeddings: embeddings, TotalTokens: len(texts)}, nil
}

func TestBuildDatabase_CharMode(t *testing.T) {
	svc := New(&seqEmbedder{}, "test-model", 2,
		Config{Mode: ChunkModeChars, ChunkSize: 10, Overlap: 2, BatchSize: 3, Workers: 2},
		zap.NewNop())

	doc := &source.Document{Text: strings.Repeat("a", 25)}
	vdb, err := svc.BuildDatabase(context.Background(), doc)
	if err != nil {
		t.Fatal(err)
	}
	// windows of 10 stepping 8 over 25 chars: [0:10] [8:18] [16:25] -> 3 chunks
	if vdb.Len() != 3 {
		t.Fatalf("expected 3 records, got %d", vdb.Len())
	}
	if vdb.Model != "test-model" || vdb.Dimensions != 2 {
		t.Errorf("metadata = %s/%d", vdb.Model, vdb.Dimensions)
	}
	for i, rec := range vdb.Records {
		if rec.ChunkID != i {
			t.Errorf("record %d has chunk id %d", i, rec.ChunkID)
		}
		if rec.Vector[0] != float32(len(rec.Content)) {
			t.Errorf("record %d vector does not match its own content", i)
		}
	}
}

func TestBuildDatabase_PageMode(t *testing.T) {
	svc := New(&seqEmbedder{}, "test-model", 2,
		Config{Mode: ChunkModePages, TokenLimit: 50, ChunkSize: 1000, Overlap: 100},
		zap.NewNop())

	doc := &source.Document{
		Pages: []domain.Page{
			{Number: 1, Text: strings.Repeat("x", 150)},
			{Number: 2, Text: strings.Repeat("y", 150)},
		},
	}
	vdb, err := svc.BuildDatabase(context.Background(), doc)
	if err != nil {
		t.Fatal(err)
	}
	// each page ≈ 37 tokens, together 74 > 50 -> two chunks
	if vdb.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", vdb.Len())
	}
	if len(vdb.Records[0].Pages) != 1 || vdb.Records[0].Pages[0] != 1 {
		t.Errorf("record 0 pages = %v", vdb.Records[0].Pages)
	}
}

func TestBuildDatabase_PageModeFallsBackWithoutPages(t *testing.T) {
	svc := New(&seqEmbedder{}, "m", 2,
		Config{Mode: ChunkModePages, TokenLimit: 50, ChunkSize: 10, Overlap: 0},
		zap.NewNop())

	vdb, err := svc.BuildDatabase(context.Background(), &source.Document{Text: strings.Repeat("z", 15)})
	if err != nil {
		t.Fatal(err)
	}
	if vdb.Len() != 2 {
		t.Fatalf("expected char-window fallback with 2 records, got %d", vdb.Len())
	}
}

func TestBuildDatabase_EmptyDocument(t *testing.T) {
	emb := &seqEmbedder{}
	svc := New(emb, "m", 4, Config{ChunkSize: 10}, zap.NewNop())

	vdb, err := svc.BuildDatabase(context.Background(), &source.Document{})
	if err != nil {
		t.Fatal(err)
	}
	if vdb.Len() != 0 {
		t.Errorf("expected empty database, got %d records", vdb.Len())
	}
	if emb.calls.Load() != 0 {
		t.Errorf("embedder must not be called for an empty document")
	}
}

func TestBuildDatabase_ManyBatchesPreserveOrder(t *testing.T) {
	svc := New(&seqEmbedder{}, "m", 2,
		Config{ChunkSize: 7, Overlap: 0, BatchSize: 2, Workers: 4},
		zap.NewNop())

	// varying chunk lengths: final chunk is shorter
	doc := &source.Document{Text: strings.Repeat("q", 7*9+3)}
	vdb, err := svc.BuildDatabase(context.Background(), doc)
	if err != nil {
		t.Fatal(err)
	}
	if vdb.Len() != 10 {
		t.Fatalf("expected 10 records, got %d", vdb.Len())
	}
	for i, rec := range vdb.Records {
		if rec.Vector[0] != float32(len(rec.Content)) {
			t.Fatalf("record %d: vector %v does not match content length %d (order broken)",
				i, rec.Vector, len(rec.Content))
		}
	}
}

func TestBuildDatabase_EmbedderFailure(t *testing.T) {
	wantErr := fmt.Errorf("quota: %w", domain.ErrEmbeddingProviderError)
	svc := New(&seqEmbedder{err: wantErr}, "m", 2, Config{ChunkSize: 5}, zap.NewNop())

	_, err := svc.BuildDatabase(context.Background(), &source.Document{Text: "some document text"})
	if !errors.Is(err, domain.ErrEmbeddingProviderError) {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestBuildDatabase_InvalidChunkConfig(t *testing.T) {
	svc := New(&seqEmbedder{}, "m", 2, Config{ChunkSize: 5, Overlap: 5}, zap.NewNop())
	if _, err := svc.BuildDatabase(context.Background(), &source.Document{Text: "text"}); err == nil {
		t.Fatal("expected error for overlap == chunk size")
	}
}
