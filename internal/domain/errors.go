package domain

import "errors"

var (
	// ErrDimMismatch signals a vector dimension mismatch.
	ErrDimMismatch = errors.New("vector dimension mismatch")
	// ErrModelMismatch signals that a database was built with a different embedding model.
	ErrModelMismatch = errors.New("embedding model mismatch")
	// ErrEmptyDatabase signals an operation that needs at least one stored vector.
	ErrEmptyDatabase = errors.New("empty vector database")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrCompletionProviderError signals a completion provider failure.
	ErrCompletionProviderError = errors.New("completion provider error")
	// ErrNoChart signals that no renderable chart specification is available.
	ErrNoChart = errors.New("no renderable chart")
)
