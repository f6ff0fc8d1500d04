// docindex builds the vector database snapshot for one extracted document.
//
// Usage:
//
//	docindex [-metrics-port 9090] <input_document> <output_db.json>
//
// The input is either a plain-text dump or a pages JSON document
// ({"pages":[{"number":1,"text":"..."}]}). Configuration is read from
// config/<ENV>.yaml; API keys come from the environment.
package main

import (
	"github.com/VishnuVamsi7/DocReporter/internal/cli"
	"github.com/VishnuVamsi7/DocReporter/internal/pipeline"
)

func main() {
	cli.Main("docindex", "input_document", "output_db.json", pipeline.RunIndex)
}
