// docreporter runs the full pipeline for one document: index, analyze,
// report. Stages exchange data through files in the output directory only,
// so any stage can be rerun standalone with its sibling binary.
//
// Usage:
//
//	docreporter [-metrics-port 9090] <input_document> <output_dir>
package main

import (
	"github.com/VishnuVamsi7/DocReporter/internal/cli"
	"github.com/VishnuVamsi7/DocReporter/internal/pipeline"
)

func main() {
	cli.Main("docreporter", "input_document", "output_dir", pipeline.RunAll)
}
