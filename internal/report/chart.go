// Package report renders the final document from an analysis report. Chart
// rendering consumes only the validated data-bearing spec; there is no path
// that executes model-generated code.
package report

import (
	"bytes"
	"fmt"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/VishnuVamsi7/DocReporter/internal/domain"
)

// RenderChart draws the spec as a PNG image.
func RenderChart(spec *domain.ChartSpec) ([]byte, error) {
	if spec == nil {
		return nil, domain.ErrNoChart
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	var err error
	switch spec.Type {
	case domain.ChartBar:
		err = renderBar(spec, &buf)
	case domain.ChartLine:
		err = renderXY(spec, &buf, lineStyle())
	case domain.ChartScatter:
		err = renderXY(spec, &buf, scatterStyle())
	default:
		return nil, fmt.Errorf("unsupported chart type %q: %w", spec.Type, domain.ErrNoChart)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s chart: %w", spec.Type, err)
	}
	return buf.Bytes(), nil
}

func renderBar(spec *domain.ChartSpec, buf *bytes.Buffer) error {
	bars := make([]chart.Value, len(spec.YValues))
	for i, y := range spec.YValues {
		bars[i] = chart.Value{Value: y, Label: spec.XLabels[i]}
	}
	graph := chart.BarChart{
		Title:    spec.Title,
		Width:    800,
		Height:   450,
		BarWidth: 48,
		YAxis:    chart.YAxis{Name: spec.YLabel},
		Bars:     bars,
	}
	return graph.Render(chart.PNG, buf)
}

func renderXY(spec *domain.ChartSpec, buf *bytes.Buffer, style chart.Style) error {
	xs := make([]float64, len(spec.YValues))
	ticks := make([]chart.Tick, len(spec.YValues))
	for i := range spec.YValues {
		xs[i] = float64(i)
		ticks[i] = chart.Tick{Value: float64(i), Label: spec.XLabels[i]}
	}
	graph := chart.Chart{
		Title:  spec.Title,
		Width:  800,
		Height: 450,
		XAxis:  chart.XAxis{Ticks: ticks},
		YAxis:  chart.YAxis{Name: spec.YLabel},
		Series: []chart.Series{
			chart.ContinuousSeries{XValues: xs, YValues: spec.YValues, Style: style},
		},
	}
	return graph.Render(chart.PNG, buf)
}

func lineStyle() chart.Style {
	return chart.Style{StrokeWidth: 2}
}

func scatterStyle() chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    5,
	}
}
