package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/featsel/dataset"
	"github.com/YuminosukeSato/featsel/pkg/errors"
	"github.com/YuminosukeSato/featsel/preprocessing"
)

func newVarianceCmd(root *rootOptions) *cobra.Command {
	var (
		data      string
		threshold float64
	)

	cmd := &cobra.Command{
		Use:   "variance",
		Short: "Keep columns whose variance exceeds a threshold",
		Long: `Print the columns of a CSV file whose sample variance is strictly greater
than --threshold. Missing cells are ignored; categorical columns are always
kept.

Examples:
  featsel variance -d housing.csv
  featsel variance -d housing.csv --threshold 0.1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			defer errors.Recover(&err, "featsel variance")

			cfg := root.cfg
			if cmd.Flags().Changed("threshold") {
				cfg.Variance.Threshold = threshold
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			frame, err := dataset.LoadCSV(data)
			if err != nil {
				return err
			}
			keep, err := preprocessing.VarianceThresholding(frame, cfg.Variance.Threshold)
			if err != nil {
				return err
			}

			names := frame.Names()
			for _, j := range keep {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", j, names[j]); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "CSV file with a header row (required)")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Columns with variance at or below this value are dropped")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}
