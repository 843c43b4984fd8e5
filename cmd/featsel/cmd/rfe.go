package cmd

import (
	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/featsel/config"
	"github.com/YuminosukeSato/featsel/pkg/errors"
	"github.com/YuminosukeSato/featsel/selection"
)

type rfeOptions struct {
	dataOptions
	nFeatures   int
	scorer      string
	standardize bool
}

func newRFECmd(root *rootOptions) *cobra.Command {
	var opts rfeOptions

	cmd := &cobra.Command{
		Use:   "rfe",
		Short: "Recursive feature elimination",
		Long: `Start from every numeric column and repeatedly drop the column with the
weakest linear-regression coefficient until --n-features remain.

Examples:
  featsel rfe -d housing.csv -t price --n-features 3
  featsel rfe -d housing.csv -t price --scorer coef --standardize=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRFE(cmd, root, &opts)
		},
	}

	addDataFlags(cmd, &opts.dataOptions)
	cmd.Flags().IntVarP(&opts.nFeatures, "n-features", "n", 5, "Number of columns to keep")
	cmd.Flags().StringVar(&opts.scorer, "scorer", config.WeakestAbsCoefficient, "Weakest column rule: abs_coef, coef")
	cmd.Flags().BoolVar(&opts.standardize, "standardize", true, "Standardize columns before comparing coefficients (abs_coef only)")

	return cmd
}

func (o *rfeOptions) apply(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	if f.Changed("n-features") {
		cfg.RFE.NFeatures = o.nFeatures
	}
	if f.Changed("scorer") {
		cfg.RFE.Scorer = o.scorer
	}
	if f.Changed("standardize") {
		cfg.RFE.Standardize = o.standardize
	}
	return cfg.Validate()
}

func runRFE(cmd *cobra.Command, root *rootOptions, opts *rfeOptions) (err error) {
	defer errors.Recover(&err, "featsel rfe")

	cfg := root.cfg
	if err := opts.apply(cmd, cfg); err != nil {
		return err
	}
	weakest, err := weakestFn(cfg.RFE.Scorer, cfg.RFE.Standardize)
	if err != nil {
		return err
	}
	X, y, err := opts.load()
	if err != nil {
		return err
	}

	names, err := selection.RecursiveFeatureElimination(weakest, X, y, cfg.RFE.NFeatures, root.searchOptions(nil)...)
	if err != nil {
		return err
	}
	cols, err := X.Indices(names)
	if err != nil {
		return err
	}
	return printSelection(cmd.OutOrStdout(), X, cols)
}
