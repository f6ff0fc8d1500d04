package indexing

import (
	"context"

	"github.com/VishnuVamsi7/DocReporter/internal/domain"
)

// Embedder is the consumer contract for document vectorization.
type Embedder interface {
	BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error)
}
