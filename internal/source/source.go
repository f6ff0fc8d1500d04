// Package source loads extracted documents. PDF extraction itself is an
// external collaborator: this package only consumes its output, either a
// plain-text dump or a pages JSON document.
package source

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/VishnuVamsi7/DocReporter/internal/domain"
)

// Document is an extracted document ready for chunking.
type Document struct {
	Text  string        // full text, always populated
	Pages []domain.Page // populated only for page-structured sources
}

// HasPages reports whether the source carried page structure.
func (d *Document) HasPages() bool { return len(d.Pages) > 0 }

type pagesFile struct {
	Pages []struct {
		Number int    `json:"number"`
		Text   string `json:"text"`
	} `json:"pages"`
}

// Load reads an extracted document. A .json file must follow the pages form
// {"pages":[{"number":1,"text":"..."}]}; anything else is read as plain text.
// An empty document is not an error: it chunks to nothing downstream.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return loadPages(path, data)
	}
	return &Document{Text: string(data)}, nil
}

func loadPages(path string, data []byte) (*Document, error) {
	var pf pagesFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse pages document %s: %w", path, err)
	}

	doc := &Document{}
	var full strings.Builder
	for i, p := range pf.Pages {
		number := p.Number
		if number <= 0 {
			number = i + 1
		}
		doc.Pages = append(doc.Pages, domain.Page{Number: number, Text: p.Text})
		if full.Len() > 0 {
			full.WriteString("\n")
		}
		full.WriteString(p.Text)
	}
	doc.Text = full.String()
	return doc, nil
}
