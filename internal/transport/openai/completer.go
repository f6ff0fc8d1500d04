package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/VishnuVamsi7/DocReporter/internal/domain"
	"github.com/VishnuVamsi7/DocReporter/internal/metrics"
)

// Completer calls an OpenAI-compatible chat completion API with a per-attempt
// timeout and a bounded retry. A completion call is a blocking network
// operation and must never hang the pipeline indefinitely.
type Completer struct {
	client      *openai.Client
	model       string
	temperature float32
	timeout     time.Duration
	maxRetries  int
	backoff     time.Duration
	logger      *zap.Logger
}

// CompleterConfig holds the completion provider settings.
type CompleterConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	Timeout     time.Duration
	MaxRetries  int // additional attempts after the first
	Logger      *zap.Logger
}

// NewCompleter creates an OpenAI-compatible completion provider.
func NewCompleter(cfg *CompleterConfig) *Completer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Completer{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		timeout:     timeout,
		maxRetries:  cfg.MaxRetries,
		backoff:     time.Second,
		logger:      cfg.Logger,
	}
}

// Complete implements domain.Completer. Retries transient failures with
// linear backoff; non-transient API errors (auth, bad model) and a done
// parent context end the loop immediately.
func (c *Completer) Complete(ctx context.Context, prompt string) (domain.CompletionResult, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Warn("Retrying completion request",
				zap.Int("attempt", attempt+1),
				zap.Error(lastErr),
			)
			select {
			case <-ctx.Done():
				return domain.CompletionResult{}, fmt.Errorf("completion canceled: %w", ctx.Err())
			case <-time.After(time.Duration(attempt) * c.backoff):
			}
		}

		result, retryable, err := c.complete(ctx, prompt)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !retryable || ctx.Err() != nil {
			break
		}
	}

	return domain.CompletionResult{}, lastErr
}

func (c *Completer) complete(ctx context.Context, prompt string) (domain.CompletionResult, bool, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(attemptCtx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.temperature,
	})
	duration := time.Since(start)

	if err != nil {
		metrics.CompletionRequestsTotal.WithLabelValues(c.model, "error").Inc()
		if errors.Is(err, context.DeadlineExceeded) {
			return domain.CompletionResult{}, true, fmt.Errorf(
				"completion timed out after %s: %w", c.timeout, domain.ErrCompletionProviderError)
		}
		return domain.CompletionResult{}, retryableAPIError(err),
			parseAPIError("completion", err, domain.ErrCompletionProviderError)
	}
	if len(resp.Choices) == 0 {
		metrics.CompletionRequestsTotal.WithLabelValues(c.model, "error").Inc()
		return domain.CompletionResult{}, true, fmt.Errorf(
			"empty completion response: %w", domain.ErrCompletionProviderError)
	}

	metrics.CompletionRequestsTotal.WithLabelValues(c.model, "success").Inc()
	metrics.CompletionRequestDuration.WithLabelValues(c.model).Observe(duration.Seconds())
	metrics.CompletionTokensTotal.WithLabelValues(c.model, "prompt").Add(float64(resp.Usage.PromptTokens))
	metrics.CompletionTokensTotal.WithLabelValues(c.model, "completion").Add(float64(resp.Usage.CompletionTokens))

	return domain.CompletionResult{
		Text:             resp.Choices[0].Message.Content,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
	}, false, nil
}

// retryableAPIError reports whether a failed API call is worth repeating.
// Rate limits and server-side errors are transient; other client errors
// (invalid key, unknown model) fail identically on every attempt.
func retryableAPIError(err error) bool {
	var status int
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	default:
		// transport-level failure with no HTTP response
		return true
	}
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}
