// Package reportstore persists the analysis report artifact.
package reportstore

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/VishnuVamsi7/DocReporter/internal/artifact"
	"github.com/VishnuVamsi7/DocReporter/internal/domain"
)

// reportDTO is the on-disk shape of an analysis report.
type reportDTO struct {
	Title              string           `json:"report_title"`
	KeyInsights        string           `json:"key_insights"`
	RevenueSuggestions string           `json:"revenue_suggestions"`
	Visualization      visualizationDTO `json:"visualization"`
}

type visualizationDTO struct {
	Title   string            `json:"title"`
	Chart   *domain.ChartSpec `json:"chart_spec,omitempty"`
	Insight string            `json:"insight"`
}

// Save writes the report to path atomically.
func Save(path string, report *domain.AnalysisReport) error {
	dto := reportDTO{
		Title:              report.Title,
		KeyInsights:        report.KeyInsights,
		RevenueSuggestions: report.RevenueSuggestions,
		Visualization: visualizationDTO{
			Title:   report.Visualization.Title,
			Chart:   report.Visualization.Chart,
			Insight: report.Visualization.Insight,
		},
	}

	data, err := json.MarshalIndent(dto, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal analysis report: %w", err)
	}
	if err := artifact.WriteAtomic(path, data); err != nil {
		return fmt.Errorf("write analysis report %s: %w", path, err)
	}
	return nil
}

// Load reads a report. A present but invalid chart spec is dropped with the
// raw insight preserved rather than failing the whole report.
func Load(path string) (*domain.AnalysisReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read analysis report %s: %w", path, err)
	}

	var dto reportDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("parse analysis report %s: %w", path, err)
	}

	report := &domain.AnalysisReport{
		Title:              dto.Title,
		KeyInsights:        dto.KeyInsights,
		RevenueSuggestions: dto.RevenueSuggestions,
		Visualization: domain.Visualization{
			Title:   dto.Visualization.Title,
			Chart:   dto.Visualization.Chart,
			Insight: dto.Visualization.Insight,
		},
	}
	if report.Visualization.Chart != nil {
		if err := report.Visualization.Chart.Validate(); err != nil {
			report.Visualization.Chart = nil
		}
	}
	return report, nil
}
