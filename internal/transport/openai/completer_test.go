package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/VishnuVamsi7/DocReporter/internal/domain"
)

func chatResponse(text string) map[string]any {
	return map[string]any{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"model":  "test-llm",
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": text},
				"finish_reason": "stop",
			},
		},
		"usage": map[string]any{
			"prompt_tokens":     12,
			"completion_tokens": 7,
			"total_tokens":      19,
		},
	}
}

func newTestCompleter(url string, retries int) *Completer {
	c := NewCompleter(&CompleterConfig{
		APIKey:     "test-key",
		BaseURL:    url,
		Model:      "test-llm",
		Timeout:    5 * time.Second,
		MaxRetries: retries,
		Logger:     zap.NewNop(),
	})
	c.backoff = time.Millisecond
	return c
}

func TestCompleter_Complete(t *testing.T) {
	var gotPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotPrompt = req.Messages[0].Content

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatResponse("three key themes"))
	}))
	defer server.Close()

	result, err := newTestCompleter(server.URL, 0).Complete(context.Background(), "Context:\nfoo\n\nTask:\nbar")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if result.Text != "three key themes" {
		t.Errorf("Text = %q", result.Text)
	}
	if gotPrompt != "Context:\nfoo\n\nTask:\nbar" {
		t.Errorf("prompt = %q", gotPrompt)
	}
	if result.PromptTokens != 12 || result.CompletionTokens != 7 {
		t.Errorf("usage = %d/%d", result.PromptTokens, result.CompletionTokens)
	}
}

func TestCompleter_RetriesTransientFailure(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"message":"overloaded"}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatResponse("recovered"))
	}))
	defer server.Close()

	result, err := newTestCompleter(server.URL, 2).Complete(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Complete failed after retry: %v", err)
	}
	if result.Text != "recovered" {
		t.Errorf("Text = %q", result.Text)
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 calls, got %d", calls.Load())
	}
}

func TestCompleter_GivesUpAfterBoundedRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"still down"}}`))
	}))
	defer server.Close()

	_, err := newTestCompleter(server.URL, 2).Complete(context.Background(), "prompt")
	if !errors.Is(err, domain.ErrCompletionProviderError) {
		t.Fatalf("expected ErrCompletionProviderError, got %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 attempts (1 + 2 retries), got %d", calls.Load())
	}
}

func TestCompleter_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key"}}`))
	}))
	defer server.Close()

	_, err := newTestCompleter(server.URL, 5).Complete(context.Background(), "prompt")
	if !errors.Is(err, domain.ErrCompletionProviderError) {
		t.Fatalf("expected ErrCompletionProviderError, got %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("auth failure must not be retried, got %d calls", calls.Load())
	}
}

func TestCompleter_RetriesRateLimit(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatResponse("after limit"))
	}))
	defer server.Close()

	result, err := newTestCompleter(server.URL, 2).Complete(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Complete failed after rate limit: %v", err)
	}
	if result.Text != "after limit" {
		t.Errorf("Text = %q", result.Text)
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 calls, got %d", calls.Load())
	}
}

func TestCompleter_CanceledContextStopsRetrying(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestCompleter(server.URL, 5).Complete(ctx, "prompt")
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
}
