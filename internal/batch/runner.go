package batch

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jwtly10/wealthsim/internal/exchange"
	"github.com/jwtly10/wealthsim/internal/logging"
	"github.com/jwtly10/wealthsim/internal/types"
)

var log = logging.New("batch")

// Runner executes independent simulation runs and collects them in run order.
type Runner struct {
	// Workers bounds concurrent runs. Values <= 1 run sequentially.
	Workers int
	Engine  *exchange.Engine
}

func NewRunner(engine *exchange.Engine, workers int) *Runner {
	return &Runner{
		Workers: workers,
		Engine:  engine,
	}
}

// NewSeed draws a non-zero seed from crypto/rand.
func NewSeed() (int64, error) {
	for {
		var b [8]byte
		if _, err := crand.Read(b[:]); err != nil {
			return 0, fmt.Errorf("read random seed: %w", err)
		}
		if s := int64(binary.LittleEndian.Uint64(b[:])); s != 0 {
			return s, nil
		}
	}
}

// runSeeds derives one seed per run from the batch seed, in run order.
func runSeeds(seed int64, n int) []int64 {
	master := rand.New(rand.NewSource(seed))
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = master.Int63()
	}
	return seeds
}

// Run executes params.Simulations runs with identical parameters. A zero seed
// draws a fresh one, which is recorded on the returned batch. The result
// depends only on params and seed, not on Workers.
func (r *Runner) Run(ctx context.Context, params types.Params, seed int64) (*types.Batch, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if seed == 0 {
		s, err := NewSeed()
		if err != nil {
			return nil, err
		}
		seed = s
	}

	engine := r.Engine
	if engine == nil {
		engine = exchange.NewEngine(exchange.RuleStrict)
	}

	b := &types.Batch{
		ID:     uuid.New(),
		Seed:   seed,
		Params: params,
		Runs:   make([]types.Population, params.Simulations),
	}

	slog.Info("Starting batch", "batch_id", b.ID, "seed", seed, "individuals", params.Individuals,
		"initial_wealth", params.InitialWealth, "encounters", params.Encounters,
		"simulations", params.Simulations, "workers", r.Workers, "rule", engine.Rule)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, r.Workers))

	for i, s := range runSeeds(seed, params.Simulations) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			// Each run owns its generator and population buffer.
			rng := rand.New(rand.NewSource(s))
			pop, out, err := engine.Run(rng, params.Individuals, params.InitialWealth, params.Encounters)
			if err != nil {
				return fmt.Errorf("run %d: %w", i+1, err)
			}

			log.Debug("Run complete", "batch_id", b.ID, "run", i+1, "seed", s,
				"transfers", out.Transfers, "skipped", out.Skipped, "blocked", out.Blocked)

			b.Runs[i] = pop
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		slog.Warn("Batch abandoned", "batch_id", b.ID, "error", err)
		return nil, err
	}

	slog.Info("Finished batch", "batch_id", b.ID, "runs", len(b.Runs))

	return b, nil
}
