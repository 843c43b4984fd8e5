package cmd

import (
	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/featsel/config"
	"github.com/YuminosukeSato/featsel/pkg/errors"
	"github.com/YuminosukeSato/featsel/selection"
)

type forwardOptions struct {
	dataOptions
	tracePlot    string
	minFeatures  int
	maxFeatures  int
	threshold    float64
	stoppingRule string
	scorer       string
	cacheSize    int
}

func newForwardCmd(root *rootOptions) *cobra.Command {
	var opts forwardOptions

	cmd := &cobra.Command{
		Use:   "forward",
		Short: "Greedy forward selection",
		Long: `Start from no columns and add, one round at a time, the column whose
addition gives the lowest score. Stops at --max-features or when the
best score stops improving.

Examples:
  featsel forward -d housing.csv -t price --max-features 5
  featsel forward -d housing.csv -t price --stopping-rule increase --scorer mse`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runForward(cmd, root, &opts)
		},
	}

	addDataFlags(cmd, &opts.dataOptions)
	addTraceFlag(cmd, &opts.tracePlot)
	cmd.Flags().IntVar(&opts.minFeatures, "min-features", 1, "Rounds run before the stopping rule applies")
	cmd.Flags().IntVar(&opts.maxFeatures, "max-features", 10, "Maximum number of selected columns")
	cmd.Flags().Float64Var(&opts.threshold, "threshold", selection.DefaultImprovementThreshold, "Relative improvement below which the search stops")
	cmd.Flags().StringVar(&opts.stoppingRule, "stopping-rule", config.StoppingRelative, "Stopping rule: relative, increase")
	cmd.Flags().StringVar(&opts.scorer, "scorer", config.ScorerRSS, "Subset score: rss, mse, r2")
	cmd.Flags().IntVar(&opts.cacheSize, "cache-size", 0, "Score cache entries (0 disables)")

	return cmd
}

func (o *forwardOptions) apply(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	if f.Changed("min-features") {
		cfg.Forward.MinFeatures = o.minFeatures
	}
	if f.Changed("max-features") {
		cfg.Forward.MaxFeatures = o.maxFeatures
	}
	if f.Changed("threshold") {
		cfg.Forward.Threshold = o.threshold
	}
	if f.Changed("stopping-rule") {
		cfg.Forward.StoppingRule = o.stoppingRule
	}
	if f.Changed("scorer") {
		cfg.Scorer = o.scorer
	}
	if f.Changed("cache-size") {
		cfg.CacheSize = o.cacheSize
	}
	return cfg.Validate()
}

func runForward(cmd *cobra.Command, root *rootOptions, opts *forwardOptions) (err error) {
	defer errors.Recover(&err, "featsel forward")

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

	rule := selection.StopOnRelativeImprovement
	if cfg.Forward.StoppingRule == config.StoppingIncrease {
		rule = selection.StopOnIncrease
	}
	t := &trace{}
	searchOpts := append(root.searchOptions(t),
		selection.WithStoppingRule(rule),
		selection.WithImprovementThreshold(cfg.Forward.Threshold),
	)

	cols, err := selection.ForwardSelection(score, X, y, cfg.Forward.MinFeatures, cfg.Forward.MaxFeatures, searchOpts...)
	if err != nil {
		return err
	}
	if err := printSelection(cmd.OutOrStdout(), X, cols); err != nil {
		return err
	}
	return t.plot("forward selection", opts.tracePlot)
}
