// Package analysis runs the fixed RAG analysis tasks and assembles the
// report artifact.
package analysis

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/VishnuVamsi7/DocReporter/internal/domain"
)

// The three analysis tasks. Instructions pin the model to the retrieved
// context; that grounding is a best-effort policy the completion service is
// asked to follow, not something this code can mechanically guarantee.
const (
	themesQuery       = "What are the main themes, topics, goals, and corporate strategies discussed?"
	themesInstruction = "Identify 3-5 key themes based only on the context. For each theme, provide a " +
		"concise one-sentence summary. Respond with a JSON object of the form " +
		`{"heading": "...", "summary": "..."}.`

	revenueQuery       = "What are the financial results, sales performance, revenue challenges, and growth opportunities?"
	revenueInstruction = "Based only on the context, suggest 2-3 actionable revenue growth strategies. " +
		"Do not invent figures that are not in the context. Respond with a JSON object of the form " +
		`{"heading": "...", "summary": "..."}.`

	chartQuery       = "Find all quantifiable data, financials, numbers, or statistics over time (e.g., by year, quarter)."
	chartInstruction = "Based only on the data in the context, describe a simple bar, line or scatter chart " +
		"as a JSON object with fields \"type\" (one of \"bar\", \"line\", \"scatter\"), \"title\", " +
		"\"x_labels\" (array of strings), \"y_values\" (array of numbers) and optional \"y_label\". " +
		"Enclose the JSON in a fenced code block (```json ... ```). " +
		"If no quantifiable data is found, reply exactly '" + domain.NoDataMarker + "'."
)

const degradedPlaceholder = "Analysis unavailable: the completion service did not return a result for this section."

// Service composes retrieved context with task instructions and parses the
// completion output into the report structure.
type Service struct {
	retriever Retriever
	completer domain.Completer
	k         int
	logger    *zap.Logger
}

// New creates the analysis service. k is the retrieval depth per task.
func New(retriever Retriever, completer domain.Completer, k int, logger *zap.Logger) *Service {
	if k <= 0 {
		k = 5
	}
	return &Service{retriever: retriever, completer: completer, k: k, logger: logger}
}

// Run executes the three analysis tasks concurrently. The tasks are
// independent reads against a read-only index, so no coordination is needed
// beyond collecting results into fixed fields. A failed task degrades to a
// placeholder; only cancellation aborts the whole run.
func (s *Service) Run(ctx context.Context) (*domain.AnalysisReport, error) {
	report := &domain.AnalysisReport{Title: "AI-Generated Analysis"}

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		raw, ok := s.generate(ctx, "key_insights", themesQuery, themesInstruction)
		if !ok {
			report.KeyInsights = degradedPlaceholder
			return
		}
		report.KeyInsights = formatHeadedSummary(raw)
	}()

	go func() {
		defer wg.Done()
		raw, ok := s.generate(ctx, "revenue_suggestions", revenueQuery, revenueInstruction)
		if !ok {
			report.RevenueSuggestions = degradedPlaceholder
			return
		}
		report.RevenueSuggestions = formatHeadedSummary(raw)
	}()

	go func() {
		defer wg.Done()
		report.Visualization = s.generateVisualization(ctx)
	}()

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analysis canceled: %w", err)
	}
	return report, nil
}

// generate retrieves context for query and forwards a single grounded prompt
// to the completion service. Returns ok=false when the task degraded.
func (s *Service) generate(ctx context.Context, task, query, instruction string) (string, bool) {
	grounding, err := s.retriever.Retrieve(ctx, query, s.k)
	if err != nil {
		s.logger.Warn("Context retrieval failed, degrading task",
			zap.String("task", task), zap.Error(err))
		return "", false
	}

	prompt := fmt.Sprintf("Context:\n%s\n\nTask:\n%s", grounding, instruction)
	result, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		s.logger.Warn("Completion failed, degrading task",
			zap.String("task", task), zap.Error(err))
		return "", false
	}

	s.logger.Info("Task completed",
		zap.String("task", task),
		zap.Int("prompt_tokens", result.PromptTokens),
		zap.Int("completion_tokens", result.CompletionTokens),
	)
	return result.Text, true
}

func (s *Service) generateVisualization(ctx context.Context) domain.Visualization {
	viz := domain.Visualization{Title: "Data Visualization"}

	raw, ok := s.generate(ctx, "visualization", chartQuery, chartInstruction)
	if !ok {
		viz.Insight = degradedPlaceholder
		return viz
	}

	spec, insight := parseChartSpec(raw)
	viz.Chart = spec
	viz.Insight = insight
	if spec == nil {
		s.logger.Warn("No renderable chart spec in completion output",
			zap.String("insight", insight))
	}
	return viz
}
