package types

import (
	"fmt"

	"github.com/google/uuid"
)

// Params are the four inputs of a simulation batch.
type Params struct {
	Individuals   int `json:"individuals"`
	InitialWealth int `json:"initial_wealth"`
	Encounters    int `json:"encounters"`
	Simulations   int `json:"simulations"`
}

// Validate checks every field before any simulation work begins.
func (p Params) Validate() error {
	if p.Individuals < 1 {
		return fmt.Errorf("%w: individuals must be positive, got %d", ErrInvalidParameter, p.Individuals)
	}
	if p.InitialWealth < 0 {
		return fmt.Errorf("%w: initial wealth must be non-negative, got %d", ErrInvalidParameter, p.InitialWealth)
	}
	if p.Encounters < 0 {
		return fmt.Errorf("%w: encounters must be non-negative, got %d", ErrInvalidParameter, p.Encounters)
	}
	if p.Simulations < 1 {
		return fmt.Errorf("%w: simulations must be positive, got %d", ErrInvalidParameter, p.Simulations)
	}
	return nil
}

// TotalWealth is the amount every population of these params must sum to.
func (p Params) TotalWealth() int {
	return p.Individuals * p.InitialWealth
}

// Population is one run's wealth per individual, indexed 0..N-1.
type Population []int

func (p Population) Sum() int {
	total := 0
	for _, w := range p {
		total += w
	}
	return total
}

// Max returns the largest wealth value, or 0 for an empty population.
func (p Population) Max() int {
	m := 0
	for i, w := range p {
		if i == 0 || w > m {
			m = w
		}
	}
	return m
}

func (p Population) Clone() Population {
	out := make(Population, len(p))
	copy(out, p)
	return out
}

// Batch is the ordered result of one batch execution. Runs[i] is run i.
type Batch struct {
	ID     uuid.UUID    `json:"id"`
	Seed   int64        `json:"seed"`
	Params Params       `json:"params"`
	Runs   []Population `json:"runs"`
}

// Max returns the largest wealth across every individual of every run.
func (b *Batch) Max() (int, error) {
	if b == nil || len(b.Runs) == 0 {
		return 0, ErrEmptyBatch
	}

	found := false
	m := 0
	for _, run := range b.Runs {
		if len(run) == 0 {
			continue
		}
		if rm := run.Max(); !found || rm > m {
			m = rm
			found = true
		}
	}
	if !found {
		return 0, ErrEmptyBatch
	}
	return m, nil
}

// Run returns run i (0-based).
func (b *Batch) Run(i int) (Population, error) {
	if b == nil || i < 0 || i >= len(b.Runs) {
		return nil, fmt.Errorf("%w: run index %d out of range", ErrInvalidParameter, i)
	}
	return b.Runs[i], nil
}
