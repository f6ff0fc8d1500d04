package domain

import "fmt"

// ChartType selects one of the supported chart renderings.
type ChartType string

const (
	ChartBar     ChartType = "bar"
	ChartLine    ChartType = "line"
	ChartScatter ChartType = "scatter"
)

// NoDataMarker is the sentinel the completion service is instructed to emit
// when the retrieved context contains nothing chartable.
const NoDataMarker = "No data available"

// ChartSpec is the constrained charting description filled in by the
// completion service and consumed by a fixed renderer. It replaces free-form
// plot code: the spec carries data only, never executable content.
type ChartSpec struct {
	Type    ChartType `json:"type"`
	Title   string    `json:"title"`
	XLabels []string  `json:"x_labels"`
	YValues []float64 `json:"y_values"`
	YLabel  string    `json:"y_label,omitempty"`
}

// Validate rejects specs a renderer cannot draw safely.
func (s *ChartSpec) Validate() error {
	switch s.Type {
	case ChartBar, ChartLine, ChartScatter:
	default:
		return fmt.Errorf("unsupported chart type %q: %w", s.Type, ErrNoChart)
	}
	if len(s.YValues) == 0 {
		return fmt.Errorf("chart has no data points: %w", ErrNoChart)
	}
	if len(s.XLabels) != len(s.YValues) {
		return fmt.Errorf("chart has %d labels for %d values: %w",
			len(s.XLabels), len(s.YValues), ErrNoChart)
	}
	return nil
}

// Visualization is the chart section of an analysis report. Chart is nil when
// the model reported no chartable data or returned an unparseable spec; the
// Insight field then carries whatever text came back.
type Visualization struct {
	Title   string
	Chart   *ChartSpec
	Insight string
}

// AnalysisReport is the persisted output of the analysis stage, consumed
// read-only by the reporting stage.
type AnalysisReport struct {
	Title              string
	KeyInsights        string
	RevenueSuggestions string
	Visualization      Visualization
}
