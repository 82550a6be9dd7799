package stats

import (
	"context"
	"testing"

	"github.com/jwtly10/wealthsim/internal/batch"
	"github.com/jwtly10/wealthsim/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_UniformPopulation(t *testing.T) {
	r, err := Summarize(types.Population{5, 5, 5, 5}, 5)
	require.NoError(t, err)

	assert.Equal(t, 20, r.Total)
	assert.Equal(t, 5.0, r.Mean)
	assert.Equal(t, 0.0, r.StdDev)
	assert.Equal(t, 0, r.ZeroWealth)
	assert.Equal(t, 0, r.Rich, "equal to initial wealth is not rich")
}

func TestSummarize_WithSpread(t *testing.T) {
	r, err := Summarize(types.Population{0, 0, 10, 10}, 5)
	require.NoError(t, err)

	assert.Equal(t, 20, r.Total)
	assert.Equal(t, 5.0, r.Mean)
	assert.Equal(t, 25.0, r.Variance, "population variance divides by N")
	assert.Equal(t, 5.0, r.StdDev)
	assert.Equal(t, 2, r.ZeroWealth)
	assert.Equal(t, 2, r.Rich)
}

func TestSummarize_NonIntegerMean(t *testing.T) {
	r, err := Summarize(types.Population{1, 2}, 1)
	require.NoError(t, err)

	assert.InDelta(t, 1.5, r.Mean, 1e-12)
	assert.InDelta(t, 0.25, r.Variance, 1e-12)
	assert.InDelta(t, 0.5, r.StdDev, 1e-12)
	assert.Equal(t, 1, r.Rich)
}

func TestSummarize_Errors(t *testing.T) {
	_, err := Summarize(types.Population{}, 5)
	assert.ErrorIs(t, err, types.ErrEmptyPopulation)

	_, err = Summarize(nil, 5)
	assert.ErrorIs(t, err, types.ErrEmptyPopulation)

	_, err = Summarize(types.Population{1}, -1)
	assert.ErrorIs(t, err, types.ErrInvalidParameter)
}

func TestSummarizeRuns(t *testing.T) {
	b := &types.Batch{
		Params: types.Params{Individuals: 4, InitialWealth: 5, Encounters: 0, Simulations: 2},
		Runs:   []types.Population{{5, 5, 5, 5}, {0, 0, 10, 10}},
	}

	all, err := SummarizeRuns(b)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 0, all[0].Rich)
	assert.Equal(t, 2, all[1].Rich)

	subset, err := SummarizeRuns(b, 1)
	require.NoError(t, err)
	require.Len(t, subset, 1)
	assert.Equal(t, all[1], subset[0])

	_, err = SummarizeRuns(b, 2)
	assert.ErrorIs(t, err, types.ErrInvalidParameter)

	_, err = SummarizeRuns(&types.Batch{})
	assert.ErrorIs(t, err, types.ErrEmptyBatch)
}

func TestSummarize_EndToEndScenario(t *testing.T) {
	params := types.Params{Individuals: 100, InitialWealth: 50, Encounters: 10000, Simulations: 1}
	b, err := batch.NewRunner(nil, 1).Run(context.Background(), params, 2024)
	require.NoError(t, err)

	reports, err := SummarizeRuns(b)
	require.NoError(t, err)
	require.Len(t, reports, 1)

	assert.Equal(t, 5000, reports[0].Total)
	assert.Equal(t, 50.0, reports[0].Mean)
	assert.GreaterOrEqual(t, reports[0].StdDev, 0.0)
	assert.LessOrEqual(t, reports[0].ZeroWealth+reports[0].Rich, 100)
}
