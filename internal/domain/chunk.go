package domain

// Chunk is a contiguous slice of document text, the unit of retrieval.
// IDs are assigned sequentially in document order, starting at 0.
type Chunk struct {
	ID      int
	Content string
	Pages   []int // 1-based source pages; empty when the source has no page structure
}

// Page is a single page of an extracted document.
type Page struct {
	Number int
	Text   string
}

// ScoredChunk is a chunk paired with its distance to a query vector.
type ScoredChunk struct {
	Distance float32
	Chunk    Chunk
}

// RetrievalResult is an ordered sequence of scored chunks, ascending by distance.
type RetrievalResult []ScoredChunk

// ContextSeparator joins retrieved chunk contents into a single prompt context.
const ContextSeparator = "\n---\n"
