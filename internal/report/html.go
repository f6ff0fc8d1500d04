package report

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"

	"github.com/VishnuVamsi7/DocReporter/internal/domain"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Georgia, serif; max-width: 860px; margin: 2rem auto; padding: 0 1rem; color: #1a1a1a; }
h1 { border-bottom: 2px solid #1a1a1a; padding-bottom: .4rem; }
h2 { margin-top: 2rem; }
section p { white-space: pre-wrap; line-height: 1.5; }
figure { margin: 1.5rem 0; text-align: center; }
figure img { max-width: 100%; border: 1px solid #ccc; }
figcaption { font-style: italic; margin-top: .5rem; }
.placeholder { color: #666; font-style: italic; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<section>
<h2>Key Insights</h2>
<p>{{.KeyInsights}}</p>
</section>
<section>
<h2>Revenue Growth Suggestions</h2>
<p>{{.RevenueSuggestions}}</p>
</section>
<section>
<h2>{{.VizTitle}}</h2>
{{if .ChartData}}<figure>
<img src="data:image/png;base64,{{.ChartData}}" alt="{{.VizTitle}}">
<figcaption>{{.Insight}}</figcaption>
</figure>
{{else}}<p class="placeholder">No visualization was generated for this report. {{.Insight}}</p>
{{end}}</section>
</body>
</html>
`

var page = template.Must(template.New("report").Parse(pageTemplate))

type pageData struct {
	Title              string
	KeyInsights        string
	RevenueSuggestions string
	VizTitle           string
	ChartData          string
	Insight            string
}

// RenderHTML produces the final self-contained report page. chartPNG may be
// nil when the analysis produced no renderable chart; the page then carries
// an explicit placeholder instead of an image.
func RenderHTML(r *domain.AnalysisReport, chartPNG []byte) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("render report: nil report")
	}

	data := pageData{
		Title:              r.Title,
		KeyInsights:        r.KeyInsights,
		RevenueSuggestions: r.RevenueSuggestions,
		VizTitle:           r.Visualization.Title,
		Insight:            r.Visualization.Insight,
	}
	if data.Title == "" {
		data.Title = "AI-Generated Analysis"
	}
	if data.VizTitle == "" {
		data.VizTitle = "Data Visualization"
	}
	if len(chartPNG) > 0 {
		data.ChartData = base64.StdEncoding.EncodeToString(chartPNG)
	}

	var buf bytes.Buffer
	if err := page.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}
