// docreport renders an analysis report artifact into the final HTML page.
//
// Usage:
//
//	docreport <report.json> <output.html>
package main

import (
	"github.com/VishnuVamsi7/DocReporter/internal/cli"
	"github.com/VishnuVamsi7/DocReporter/internal/pipeline"
)

func main() {
	cli.Main("docreport", "report.json", "output.html", pipeline.RunReport)
}
