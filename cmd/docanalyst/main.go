// docanalyst runs the RAG analysis tasks against a vector database snapshot
// and writes the analysis report artifact.
//
// Usage:
//
//	docanalyst [-metrics-port 9090] <db.json> <report.json>
//
// The snapshot must have been produced with the embedding model currently
// configured; a mismatch is a hard error.
package main

import (
	"github.com/VishnuVamsi7/DocReporter/internal/cli"
	"github.com/VishnuVamsi7/DocReporter/internal/pipeline"
)

func main() {
	cli.Main("docanalyst", "db.json", "report.json", pipeline.RunAnalysis)
}
