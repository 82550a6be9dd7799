package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jwtly10/wealthsim/internal/histogram"
)

// RunLabel is the 1-indexed display label of run i.
func RunLabel(i int) string {
	return fmt.Sprintf("Simulation %d", i+1)
}

// RunLabels returns one selector label per run.
func RunLabels(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = RunLabel(i)
	}
	return labels
}

type Dataset struct {
	Label           string  `json:"label"`
	Data            []int   `json:"data"`
	BorderColor     string  `json:"borderColor"`
	BackgroundColor string  `json:"backgroundColor"`
	Fill            bool    `json:"fill"`
	Tension         float64 `json:"tension"`
}

type Axis struct {
	Title       string `json:"title"`
	Min         int    `json:"min"`
	Max         int    `json:"max"`
	BeginAtZero bool   `json:"beginAtZero,omitempty"`
}

// Chart is a line chart keyed by bin edge with one series per run.
type Chart struct {
	Type     string    `json:"type"`
	Labels   []int     `json:"labels"`
	Datasets []Dataset `json:"datasets"`
	X        Axis      `json:"x"`
	Y        Axis      `json:"y"`
}

// NewChart builds the line chart for a binned batch. Every run gets its own
// hue and the Y axis is shared, scaled to the batch-wide maximum count.
func NewChart(h *histogram.Histogram) Chart {
	n := len(h.Counts)
	chart := Chart{
		Type:     "line",
		Labels:   h.Edges,
		Datasets: make([]Dataset, 0, n),
		X:        Axis{Title: "Wealth (Coins)"},
		Y:        Axis{Title: "Number of Individuals", Max: h.MaxCount(), BeginAtZero: true},
	}
	if len(h.Edges) > 0 {
		chart.X.Max = h.Edges[len(h.Edges)-1]
	}

	for i, counts := range h.Counts {
		hue := i * 360 / n
		chart.Datasets = append(chart.Datasets, Dataset{
			Label:           RunLabel(i),
			Data:            counts,
			BorderColor:     fmt.Sprintf("hsl(%d, 70%%, 50%%)", hue),
			BackgroundColor: fmt.Sprintf("hsla(%d, 70%%, 50%%, 0.3)", hue),
			Fill:            true,
			Tension:         0.4,
		})
	}
	return chart
}

// WriteChartFile dumps the chart as indented JSON.
func WriteChartFile(path string, chart Chart) error {
	data, err := json.MarshalIndent(chart, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding chart: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing chart file: %w", err)
	}
	return nil
}
