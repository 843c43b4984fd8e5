package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/featsel/config"
	"github.com/YuminosukeSato/featsel/pkg/errors"
	"github.com/YuminosukeSato/featsel/pkg/log"
	"github.com/YuminosukeSato/featsel/selection"
)

type annealOptions struct {
	dataOptions
	tracePlot   string
	controlRate float64
	iterations  int
	seed        int64
	scorer      string
	cacheSize   int
	mask        bool
}

func newAnnealCmd(root *rootOptions) *cobra.Command {
	var opts annealOptions

	cmd := &cobra.Command{
		Use:   "anneal",
		Short: "Simulated annealing over column subsets",
		Long: `Search column masks with simulated annealing. Each iteration flips about
5% of the columns; worse masks are accepted with a probability that shrinks
as the search goes on. Lower --control-rate cools faster.

Examples:
  featsel anneal -d housing.csv -t price --iterations 500 --seed 42
  featsel anneal -d housing.csv -t price --mask --cache-size 1024`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnneal(cmd, root, &opts)
		},
	}

	addDataFlags(cmd, &opts.dataOptions)
	addTraceFlag(cmd, &opts.tracePlot)
	cmd.Flags().Float64Var(&opts.controlRate, "control-rate", 1, "Cooling control rate (> 0)")
	cmd.Flags().IntVar(&opts.iterations, "iterations", 200, "Number of annealing iterations")
	cmd.Flags().Int64Var(&opts.seed, "seed", -1, "Random seed; -1 picks a fresh seed")
	cmd.Flags().StringVar(&opts.scorer, "scorer", config.ScorerRSS, "Subset score: rss, mse, r2")
	cmd.Flags().IntVar(&opts.cacheSize, "cache-size", 0, "Score cache entries (0 disables)")
	cmd.Flags().BoolVar(&opts.mask, "mask", false, "Print the selection as a 0/1 mask instead of one line per column")

	return cmd
}

func (o *annealOptions) apply(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	if f.Changed("control-rate") {
		cfg.Annealing.ControlRate = o.controlRate
	}
	if f.Changed("iterations") {
		cfg.Annealing.Iterations = o.iterations
	}
	if f.Changed("seed") {
		cfg.Annealing.Seed = o.seed
	}
	if f.Changed("scorer") {
		cfg.Scorer = o.scorer
	}
	if f.Changed("cache-size") {
		cfg.CacheSize = o.cacheSize
	}
	return cfg.Validate()
}

func runAnneal(cmd *cobra.Command, root *rootOptions, opts *annealOptions) (err error) {
	defer errors.Recover(&err, "featsel anneal")

	cfg := root.cfg
	if err := opts.apply(cmd, cfg); err != nil {
		return err
	}
	score, err := scoreFn(cfg.Scorer)
	if err != nil {
		return err
	}
	X, y, err := opts.load()
	if err != nil {
		return err
	}

	t := &trace{}
	searchOpts := root.searchOptions(t)
	if cfg.Annealing.Seed >= 0 {
		searchOpts = append(searchOpts, selection.WithSeed(uint64(cfg.Annealing.Seed)))
	}

	res, err := selection.SimulatedAnnealing(score, X, y, cfg.Annealing.ControlRate, cfg.Annealing.Iterations, searchOpts...)
	if err != nil {
		return err
	}
	log.GetLogger().Info("annealing finished", log.ScoreKey, res.Score, log.SelectedKey, len(res.Indices()))

	out := cmd.OutOrStdout()
	if opts.mask {
		if _, err := fmt.Fprintln(out, formatMask(res.Mask)); err != nil {
			return err
		}
	} else if err := printSelection(out, X, res.Indices()); err != nil {
		return err
	}
	return t.plot("simulated annealing", opts.tracePlot)
}
