package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jwtly10/wealthsim/internal/batch"
	"github.com/jwtly10/wealthsim/internal/config"
	"github.com/jwtly10/wealthsim/internal/exchange"
	"github.com/jwtly10/wealthsim/internal/histogram"
	"github.com/jwtly10/wealthsim/internal/logging"
	"github.com/jwtly10/wealthsim/internal/report"
	"github.com/jwtly10/wealthsim/internal/stats"
	"github.com/jwtly10/wealthsim/internal/types"
)

type runOutput struct {
	BatchID string               `json:"batch_id"`
	Seed    int64                `json:"seed"`
	Params  types.Params         `json:"params"`
	Labels  []string             `json:"labels"`
	Hist    *histogram.Histogram `json:"histogram"`
	Reports []reportOutput       `json:"reports"`
}

type reportOutput struct {
	Label string `json:"label"`
	stats.Report
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a batch of simulations and print the statistical report",
		Long: `Run a batch of independent simulations with identical parameters.

Settings are read from defaults, then --config, then WEALTHSIM_* environment
variables, then flags.

Examples:
  wealthsim run                                   # 100 individuals, 50 coins, 10000 encounters
  wealthsim run --simulations 5 --workers 4       # five runs in parallel
  wealthsim run --simulations 5 --select 2,4      # report on runs 2 and 4
  wealthsim run --seed 42 --chart-out chart.json  # reproducible run with chart data`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			jsonOut, _ := cmd.Flags().GetBool("json")
			chartOut, _ := cmd.Flags().GetString("chart-out")
			all, _ := cmd.Flags().GetBool("all")
			selected, _ := cmd.Flags().GetIntSlice("select")

			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			applyFlagOverrides(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			logging.Configure(cfg.Logging.Level, cmd.ErrOrStderr())

			params, err := cfg.Params()
			if err != nil {
				return err
			}
			rule, err := exchange.ParseRule(cfg.Runner.Rule)
			if err != nil {
				return err
			}

			runs, err := selectRuns(selected, all, params.Simulations)
			if err != nil {
				return err
			}

			runner := batch.NewRunner(exchange.NewEngine(rule), cfg.Runner.Workers)
			b, err := runner.Run(cmd.Context(), params, cfg.Runner.Seed)
			if err != nil {
				return fmt.Errorf("running batch: %w", err)
			}

			hist, err := histogram.BinBatch(b)
			if err != nil {
				return err
			}

			reports, err := stats.SummarizeRuns(b, runs...)
			if err != nil {
				return err
			}
			cards, err := report.Cards(runs, reports)
			if err != nil {
				return err
			}

			if chartOut != "" {
				if err := report.WriteChartFile(chartOut, report.NewChart(hist)); err != nil {
					return err
				}
			}

			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), b, hist, cards)
			}
			return writeText(cmd.OutOrStdout(), b, hist, cards)
		},
	}

	cmd.Flags().Int("individuals", 0, "Number of individuals")
	cmd.Flags().Int("wealth", 0, "Initial wealth per individual")
	cmd.Flags().Int("encounters", 0, "Encounters per simulation")
	cmd.Flags().Int("simulations", 0, "Number of simulations")
	cmd.Flags().Int64("seed", 0, "Random seed (0 draws a fresh seed)")
	cmd.Flags().Int("workers", 0, "Simulations run concurrently")
	cmd.Flags().String("rule", "", "Exchange rule: strict or fallthrough")
	cmd.Flags().String("log-level", "", "Log level: info, debug, warn, error")
	cmd.Flags().IntSlice("select", nil, "Simulations to report on, 1-indexed (default 1)")
	cmd.Flags().Bool("all", false, "Report on every simulation")
	cmd.Flags().String("chart-out", "", "Write chart JSON to this file")

	return cmd
}

// applyFlagOverrides copies explicitly set flags over the loaded config.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("individuals") {
		cfg.Simulation.Individuals, _ = flags.GetInt("individuals")
	}
	if flags.Changed("wealth") {
		cfg.Simulation.InitialWealth, _ = flags.GetInt("wealth")
	}
	if flags.Changed("encounters") {
		cfg.Simulation.Encounters, _ = flags.GetInt("encounters")
	}
	if flags.Changed("simulations") {
		cfg.Simulation.Simulations, _ = flags.GetInt("simulations")
	}
	if flags.Changed("seed") {
		cfg.Runner.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("workers") {
		cfg.Runner.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("rule") {
		cfg.Runner.Rule, _ = flags.GetString("rule")
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}
}

// selectRuns turns 1-indexed selections into 0-based run indices.
func selectRuns(selected []int, all bool, simulations int) ([]int, error) {
	if all {
		runs := make([]int, simulations)
		for i := range runs {
			runs[i] = i
		}
		return runs, nil
	}
	if len(selected) == 0 {
		return []int{0}, nil
	}

	runs := make([]int, len(selected))
	for i, s := range selected {
		if s < 1 || s > simulations {
			return nil, fmt.Errorf("%w: --select %d out of range 1..%d", types.ErrInvalidParameter, s, simulations)
		}
		runs[i] = s - 1
	}
	return runs, nil
}

func writeText(w io.Writer, b *types.Batch, hist *histogram.Histogram, cards []report.Card) error {
	fmt.Fprintf(w, "Batch %s (seed %d)\n", b.ID, b.Seed)
	fmt.Fprintf(w, "%d simulations of %d individuals, %d coins each, %d encounters\n",
		len(b.Runs), b.Params.Individuals, b.Params.InitialWealth, b.Params.Encounters)
	fmt.Fprintf(w, "Histogram: %d bins of width %d, max bin count %d\n\n",
		len(hist.Edges), histogram.BinWidth, hist.MaxCount())

	return report.WriteCards(w, cards)
}

func writeJSON(w io.Writer, b *types.Batch, hist *histogram.Histogram, cards []report.Card) error {
	out := runOutput{
		BatchID: b.ID.String(),
		Seed:    b.Seed,
		Params:  b.Params,
		Labels:  report.RunLabels(len(b.Runs)),
		Hist:    hist,
		Reports: make([]reportOutput, len(cards)),
	}
	for i, c := range cards {
		out.Reports[i] = reportOutput{Label: c.Label, Report: c.Report}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
