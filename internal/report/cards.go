package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jwtly10/wealthsim/internal/stats"
)

// Card pairs a run's display label with its statistics.
type Card struct {
	Label  string
	Report stats.Report
}

// Cards labels reports for the given 0-based runs.
func Cards(runs []int, reports []stats.Report) ([]Card, error) {
	if len(runs) != len(reports) {
		return nil, fmt.Errorf("cards: %d runs but %d reports", len(runs), len(reports))
	}
	cards := make([]Card, len(runs))
	for i, run := range runs {
		cards[i] = Card{Label: RunLabel(run), Report: reports[i]}
	}
	return cards, nil
}

// renderCards formats the statistical report, mean and deviation to 2 decimals.
func renderCards(cards []Card) string {
	var sb strings.Builder

	sb.WriteString("=== Statistical Report ===\n")
	for _, c := range cards {
		r := c.Report
		sb.WriteString(fmt.Sprintf("\n%s\n", c.Label))
		sb.WriteString(fmt.Sprintf("Total Wealth:                           %d\n", r.Total))
		sb.WriteString(fmt.Sprintf("Mean Wealth:                            %.2f\n", r.Mean))
		sb.WriteString(fmt.Sprintf("Standard Deviation:                     %.2f\n", r.StdDev))
		sb.WriteString(fmt.Sprintf("Individuals with Zero Wealth:           %d\n", r.ZeroWealth))
		sb.WriteString(fmt.Sprintf("Individuals Richer than Initial Wealth: %d\n", r.Rich))
	}

	return sb.String()
}

func WriteCards(w io.Writer, cards []Card) error {
	_, err := io.WriteString(w, renderCards(cards))
	return err
}
