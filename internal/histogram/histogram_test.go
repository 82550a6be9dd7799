package histogram

import (
	"context"
	"testing"

	"github.com/jwtly10/wealthsim/internal/batch"
	"github.com/jwtly10/wealthsim/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBinEdges(t *testing.T) {
	tests := []struct {
		name string
		runs []types.Population
		want []int
	}{
		{"all zero", []types.Population{{0, 0}}, []int{0, 5}},
		{"below one width", []types.Population{{4, 1}}, []int{0, 5}},
		{"exact multiple", []types.Population{{10, 3}}, []int{0, 5, 10, 15}},
		{"max from later run", []types.Population{{3}, {12, 0}}, []int{0, 5, 10, 15}},
		{"large", []types.Population{{99}}, []int{0, 5, 10, 15, 20, 25, 30, 35, 40, 45, 50, 55, 60, 65, 70, 75, 80, 85, 90, 95, 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edges, err := ComputeBinEdges(&types.Batch{Runs: tt.runs})
			require.NoError(t, err)
			assert.Equal(t, tt.want, edges)
		})
	}
}

func TestComputeBinEdges_EmptyBatch(t *testing.T) {
	_, err := ComputeBinEdges(&types.Batch{})
	assert.ErrorIs(t, err, types.ErrEmptyBatch)

	_, err = ComputeBinEdges(nil)
	assert.ErrorIs(t, err, types.ErrEmptyBatch)

	_, err = BinBatch(&types.Batch{Runs: []types.Population{}})
	assert.ErrorIs(t, err, types.ErrEmptyBatch)
}

func TestBinPopulation_LeftClosedBuckets(t *testing.T) {
	edges := []int{0, 5, 10, 15}
	pop := types.Population{0, 4, 5, 9, 10, 14, 15, 40}

	counts, err := BinPopulation(pop, edges)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2, 2, 2}, counts, "top bucket is open-ended")
}

func TestBinPopulation_Errors(t *testing.T) {
	_, err := BinPopulation(types.Population{1}, nil)
	assert.ErrorIs(t, err, types.ErrEmptyBatch)

	_, err = BinPopulation(types.Population{3}, []int{5, 10})
	assert.ErrorIs(t, err, types.ErrInvalidParameter)
}

func TestBinBatch_CompletenessAndDeterminism(t *testing.T) {
	params := types.Params{Individuals: 80, InitialWealth: 15, Encounters: 20000, Simulations: 4}
	b, err := batch.NewRunner(nil, 2).Run(context.Background(), params, 314)
	require.NoError(t, err)

	h, err := BinBatch(b)
	require.NoError(t, err)
	require.Len(t, h.Counts, params.Simulations)

	for i, counts := range h.Counts {
		assert.Len(t, counts, len(h.Edges), "run %d counts align with edges", i)
		total := 0
		for _, c := range counts {
			total += c
		}
		assert.Equal(t, params.Individuals, total, "run %d: every individual lands in one bin", i)

		again, err := BinPopulation(b.Runs[i], h.Edges)
		require.NoError(t, err)
		assert.Equal(t, counts, again)
	}

	m, err := b.Max()
	require.NoError(t, err)
	assert.Equal(t, m/BinWidth+2, len(h.Edges))
}

func TestHistogram_MaxCount(t *testing.T) {
	h := &Histogram{Edges: []int{0, 5}, Counts: [][]int{{3, 1}, {0, 7}}}
	assert.Equal(t, 7, h.MaxCount())
	assert.Equal(t, 0, (&Histogram{}).MaxCount())
}

func TestTwoPassMatchesBatchBinning(t *testing.T) {
	runs := []types.Population{{1, 22, 7}, {0, 30, 0}}

	m, err := MaxWealth(runs...)
	require.NoError(t, err)
	edges, err := EdgesFor(m)
	require.NoError(t, err)

	h, err := BinBatch(&types.Batch{Runs: runs})
	require.NoError(t, err)
	assert.Equal(t, h.Edges, edges)

	for i, run := range runs {
		counts, err := BinPopulation(run, edges)
		require.NoError(t, err)
		assert.Equal(t, h.Counts[i], counts)
	}

	_, err = EdgesFor(-1)
	assert.ErrorIs(t, err, types.ErrInvalidParameter)
}
