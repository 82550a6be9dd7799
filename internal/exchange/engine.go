package exchange

import (
	"fmt"

	"github.com/jwtly10/wealthsim/internal/logging"
	"github.com/jwtly10/wealthsim/internal/types"
)

var log = logging.New("exchange")

// Rule selects how a failed direction guard is treated.
type Rule string

const (
	// RuleStrict attempts exactly one direction per encounter. If the chosen
	// source has no wealth the encounter has no effect.
	RuleStrict Rule = "strict"

	// RuleFallthrough tries a->b when the coin lands and a has wealth,
	// otherwise tries b->a. A failed a->b guard falls through to b->a.
	RuleFallthrough Rule = "fallthrough"
)

// ParseRule accepts "strict", "fallthrough" or "" (strict).
func ParseRule(s string) (Rule, error) {
	switch Rule(s) {
	case "", RuleStrict:
		return RuleStrict, nil
	case RuleFallthrough:
		return RuleFallthrough, nil
	default:
		return "", fmt.Errorf("%w: unknown exchange rule %q", types.ErrInvalidParameter, s)
	}
}

// Rand is the random source an encounter draws from. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Outcome counts what happened across one run's encounters.
type Outcome struct {
	Transfers int
	Skipped   int // a == b
	Blocked   int // chosen source had no wealth
}

type Engine struct {
	Rule Rule
}

func NewEngine(rule Rule) *Engine {
	return &Engine{Rule: rule}
}

// Simulate runs one population through the strict exchange rule.
func Simulate(rng Rand, individuals, initialWealth, encounters int) (types.Population, error) {
	pop, _, err := NewEngine(RuleStrict).Run(rng, individuals, initialWealth, encounters)
	return pop, err
}

// Run executes exactly encounters iterations over a fresh population where
// every individual starts at initialWealth. The population sum never changes
// and no element drops below zero.
func (e *Engine) Run(rng Rand, individuals, initialWealth, encounters int) (types.Population, Outcome, error) {
	var out Outcome
	if individuals < 1 {
		return nil, out, fmt.Errorf("%w: individuals must be positive, got %d", types.ErrInvalidParameter, individuals)
	}
	if initialWealth < 0 {
		return nil, out, fmt.Errorf("%w: initial wealth must be non-negative, got %d", types.ErrInvalidParameter, initialWealth)
	}
	if encounters < 0 {
		return nil, out, fmt.Errorf("%w: encounters must be non-negative, got %d", types.ErrInvalidParameter, encounters)
	}
	if rng == nil {
		return nil, out, fmt.Errorf("%w: nil random source", types.ErrInvalidParameter)
	}

	fallthroughRule := e != nil && e.Rule == RuleFallthrough

	pop := make(types.Population, individuals)
	for i := range pop {
		pop[i] = initialWealth
	}

	log.Debug("Starting run", "individuals", individuals, "initial_wealth", initialWealth, "encounters", encounters, "fallthrough", fallthroughRule)

	for i := 0; i < encounters; i++ {
		a, b := rng.Intn(individuals), rng.Intn(individuals)
		if a == b {
			out.Skipped++
			continue
		}

		forward := rng.Float64() < 0.5
		switch {
		case forward && pop[a] > 0:
			pop[a]--
			pop[b]++
			out.Transfers++
		case forward && !fallthroughRule:
			out.Blocked++
		case pop[b] > 0:
			pop[b]--
			pop[a]++
			out.Transfers++
		default:
			out.Blocked++
		}
	}

	log.Debug("Finished run", "transfers", out.Transfers, "skipped", out.Skipped, "blocked", out.Blocked)

	return pop, out, nil
}
