package stats

import (
	"fmt"
	"math"

	"github.com/jwtly10/wealthsim/internal/types"
)

type Report struct {
	// Wealth
	Total    int     `json:"total"`
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
	StdDev   float64 `json:"std_dev"`

	// Individuals
	ZeroWealth int `json:"zero_wealth"`
	Rich       int `json:"rich"` // wealth > initial wealth
}

// Summarize computes descriptive statistics for one population. Variance is
// the population variance (divisor N).
func Summarize(pop types.Population, initialWealth int) (Report, error) {
	if len(pop) == 0 {
		return Report{}, types.ErrEmptyPopulation
	}
	if initialWealth < 0 {
		return Report{}, fmt.Errorf("%w: initial wealth must be non-negative, got %d", types.ErrInvalidParameter, initialWealth)
	}

	var r Report
	for _, w := range pop {
		r.Total += w
		if w == 0 {
			r.ZeroWealth++
		}
		if w > initialWealth {
			r.Rich++
		}
	}

	n := float64(len(pop))
	r.Mean = float64(r.Total) / n

	var sq float64
	for _, w := range pop {
		d := float64(w) - r.Mean
		sq += d * d
	}
	r.Variance = sq / n
	r.StdDev = math.Sqrt(r.Variance)

	return r, nil
}

// SummarizeRuns reports on the given 0-based runs of the batch, or on every
// run when none are given. Initial wealth comes from the batch's own params.
func SummarizeRuns(b *types.Batch, runs ...int) ([]Report, error) {
	if b == nil || len(b.Runs) == 0 {
		return nil, types.ErrEmptyBatch
	}

	if len(runs) == 0 {
		runs = make([]int, len(b.Runs))
		for i := range runs {
			runs[i] = i
		}
	}

	reports := make([]Report, 0, len(runs))
	for _, i := range runs {
		pop, err := b.Run(i)
		if err != nil {
			return nil, err
		}
		r, err := Summarize(pop, b.Params.InitialWealth)
		if err != nil {
			return nil, fmt.Errorf("summarize run %d: %w", i+1, err)
		}
		reports = append(reports, r)
	}
	return reports, nil
}
