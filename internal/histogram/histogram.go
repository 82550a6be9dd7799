// Package histogram bins populations into fixed-width wealth buckets.
//
// Edges are derived once per batch from the batch-wide maximum, so every run
// of a batch is binned against the same edges and the counts line up by index.
package histogram

import (
	"fmt"
	"sort"

	"github.com/jwtly10/wealthsim/internal/types"
)

// BinWidth is the wealth span of one bucket.
const BinWidth = 5

// Histogram holds the shared edges and one count series per run.
type Histogram struct {
	Edges  []int   `json:"edges"`
	Counts [][]int `json:"counts"`
}

// MaxCount is the largest bucket count across every run, the shared Y-axis ceiling.
func (h *Histogram) MaxCount() int {
	m := 0
	for _, counts := range h.Counts {
		for _, c := range counts {
			if c > m {
				m = c
			}
		}
	}
	return m
}

// EdgesFor returns floor(max/BinWidth)+2 edges starting at 0.
func EdgesFor(maxWealth int) ([]int, error) {
	if maxWealth < 0 {
		return nil, fmt.Errorf("%w: max wealth must be non-negative, got %d", types.ErrInvalidParameter, maxWealth)
	}
	edges := make([]int, maxWealth/BinWidth+2)
	for i := range edges {
		edges[i] = i * BinWidth
	}
	return edges, nil
}

// MaxWealth scans populations for the largest value. It is the first pass of
// a two-pass bin when the whole batch should not be held at once.
func MaxWealth(pops ...types.Population) (int, error) {
	b := types.Batch{Runs: pops}
	return b.Max()
}

// ComputeBinEdges derives the edges shared by every run of the batch.
func ComputeBinEdges(b *types.Batch) ([]int, error) {
	m, err := b.Max()
	if err != nil {
		return nil, fmt.Errorf("compute bin edges: %w", err)
	}
	return EdgesFor(m)
}

// BinPopulation counts each wealth value into the largest edge <= value.
// The top bucket is open-ended.
func BinPopulation(pop types.Population, edges []int) ([]int, error) {
	if len(edges) == 0 {
		return nil, fmt.Errorf("bin population: %w", types.ErrEmptyBatch)
	}

	counts := make([]int, len(edges))
	for i, w := range pop {
		idx := sort.Search(len(edges), func(j int) bool { return edges[j] > w }) - 1
		if idx < 0 {
			return nil, fmt.Errorf("%w: individual %d wealth %d below lowest edge %d", types.ErrInvalidParameter, i, w, edges[0])
		}
		counts[idx]++
	}
	return counts, nil
}

// BinBatch computes edges over the full batch, then bins every run against them.
func BinBatch(b *types.Batch) (*Histogram, error) {
	edges, err := ComputeBinEdges(b)
	if err != nil {
		return nil, err
	}

	h := &Histogram{
		Edges:  edges,
		Counts: make([][]int, len(b.Runs)),
	}
	for i, run := range b.Runs {
		counts, err := BinPopulation(run, edges)
		if err != nil {
			return nil, fmt.Errorf("bin run %d: %w", i+1, err)
		}
		h.Counts[i] = counts
	}
	return h, nil
}
