// Package chunker splits extracted document text into retrieval units.
package chunker

import (
	"fmt"
	"strings"

	"github.com/VishnuVamsi7/DocReporter/internal/domain"
)

// tokensPerChar is the documented approximation used for token estimation
// (~4 characters per token). It is a heuristic with known imprecision, not
// a tokenizer.
const tokensPerChar = 4

// EstimateTokens returns the approximate token count for text.
func EstimateTokens(text string) int {
	return len(text) / tokensPerChar
}

// SplitText slices text into chunks of chunkSize characters, each window
// advancing by chunkSize-overlap. The final chunk may be shorter than
// chunkSize. Empty input yields zero chunks.
func SplitText(text string, chunkSize, overlap int) ([]domain.Chunk, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, fmt.Errorf("overlap must satisfy 0 <= overlap < chunk size, got overlap=%d size=%d",
			overlap, chunkSize)
	}
	if len(text) == 0 {
		return nil, nil
	}

	step := chunkSize - overlap
	var chunks []domain.Chunk
	for start := 0; start < len(text); start += step {
		end := start + chunkSize
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, domain.Chunk{
			ID:      len(chunks),
			Content: text[start:end],
		})
		// The window reaching the end covers the whole tail; a further step
		// would emit a chunk of nothing but already-covered overlap.
		if end == len(text) {
			break
		}
	}
	return chunks, nil
}

// SplitPages accumulates pages into chunks until the estimated token count
// would exceed tokenLimit, then flushes. A single page above the limit still
// becomes its own chunk rather than failing. Pages with empty text are
// skipped. Empty input yields zero chunks.
func SplitPages(pages []domain.Page, tokenLimit int) ([]domain.Chunk, error) {
	if tokenLimit <= 0 {
		return nil, fmt.Errorf("token limit must be positive, got %d", tokenLimit)
	}

	var chunks []domain.Chunk
	var buf strings.Builder
	var bufPages []int

	flush := func() {
		content := strings.TrimSpace(buf.String())
		if content == "" {
			buf.Reset()
			bufPages = nil
			return
		}
		chunks = append(chunks, domain.Chunk{
			ID:      len(chunks),
			Content: content,
			Pages:   append([]int(nil), bufPages...),
		})
		buf.Reset()
		bufPages = nil
	}

	for _, page := range pages {
		if strings.TrimSpace(page.Text) == "" {
			continue
		}
		if len(bufPages) > 0 && EstimateTokens(buf.String())+EstimateTokens(page.Text) > tokenLimit {
			flush()
		}
		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(page.Text)
		bufPages = append(bufPages, page.Number)
	}
	flush()

	return chunks, nil
}
