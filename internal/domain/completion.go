package domain

import "context"

// Completer is the black-box completion service contract. Implementations
// must honor context cancellation; calls may block on the network.
type Completer interface {
	Complete(ctx context.Context, prompt string) (CompletionResult, error)
}

// CompletionResult carries generated text and token usage.
type CompletionResult struct {
	Text             string
	PromptTokens     int
	CompletionTokens int
}
