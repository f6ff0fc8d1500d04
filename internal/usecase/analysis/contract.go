package analysis

import "context"

// Retriever supplies grounded context for a natural-language query.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) (string, error)
}
