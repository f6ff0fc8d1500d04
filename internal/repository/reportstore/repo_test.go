package reportstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/VishnuVamsi7/DocReporter/internal/domain"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analyst_report.json")
	want := &domain.AnalysisReport{
		Title:              "Annual Report Analysis",
		KeyInsights:        "Growth driven by subscriptions.",
		RevenueSuggestions: "Expand into adjacent markets.",
		Visualization: domain.Visualization{
			Title: "Data Visualization",
			Chart: &domain.ChartSpec{
				Type:    domain.ChartBar,
				Title:   "Revenue by year",
				XLabels: []string{"2022", "2023"},
				YValues: []float64{10, 14},
			},
			Insight: "Plot generated from retrieved data.",
		},
	}

	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got.KeyInsights != want.KeyInsights || got.RevenueSuggestions != want.RevenueSuggestions {
		t.Errorf("text fields did not round-trip")
	}
	if got.Visualization.Chart == nil {
		t.Fatal("chart spec lost in round trip")
	}
	if got.Visualization.Chart.Type != domain.ChartBar || len(got.Visualization.Chart.YValues) != 2 {
		t.Errorf("chart spec = %+v", got.Visualization.Chart)
	}
}

func TestSaveLoad_NoChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	want := &domain.AnalysisReport{
		KeyInsights:   "insights",
		Visualization: domain.Visualization{Title: "Data Visualization", Insight: domain.NoDataMarker},
	}
	if err := Save(path, want); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Visualization.Chart != nil {
		t.Error("expected nil chart")
	}
	if got.Visualization.Insight != domain.NoDataMarker {
		t.Errorf("insight = %q", got.Visualization.Insight)
	}
}

func TestLoad_DropsInvalidChartKeepsInsight(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	raw := `{
		"report_title": "t",
		"key_insights": "k",
		"revenue_suggestions": "r",
		"visualization": {
			"title": "Data Visualization",
			"chart_spec": {"type": "pie", "x_labels": ["a"], "y_values": [1]},
			"insight": "model returned an unsupported chart"
		}
	}`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load must not fail on an invalid chart: %v", err)
	}
	if got.Visualization.Chart != nil {
		t.Error("invalid chart must be dropped")
	}
	if got.Visualization.Insight != "model returned an unsupported chart" {
		t.Errorf("insight = %q", got.Visualization.Insight)
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for corrupt report")
	}
}
