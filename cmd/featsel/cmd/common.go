package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/featsel/config"
	"github.com/YuminosukeSato/featsel/dataset"
	"github.com/YuminosukeSato/featsel/pkg/errors"
	"github.com/YuminosukeSato/featsel/pkg/log"
	"github.com/YuminosukeSato/featsel/report"
	"github.com/YuminosukeSato/featsel/scoring"
	"github.com/YuminosukeSato/featsel/selection"
)

// dataOptions holds the input flags shared by the search commands.
type dataOptions struct {
	data   string
	target string
}

func addDataFlags(cmd *cobra.Command, d *dataOptions) {
	cmd.Flags().StringVarP(&d.data, "data", "d", "", "CSV file with a header row (required)")
	cmd.Flags().StringVarP(&d.target, "target", "t", "", "Name of the target column (required)")
	_ = cmd.MarkFlagRequired("data")
	_ = cmd.MarkFlagRequired("target")
}

func addTraceFlag(cmd *cobra.Command, path *string) {
	cmd.Flags().StringVar(path, "trace-plot", "", "Save a chart of the search trace (png, svg, pdf)")
}

// load reads the CSV and splits off the target. Categorical columns are
// dropped from the candidates.
func (d *dataOptions) load() (*selection.Table, *mat.VecDense, error) {
	frame, err := dataset.LoadCSV(d.data)
	if err != nil {
		return nil, nil, err
	}
	return frame.Split(d.target)
}

// trace collects the search trace when a plot was requested.
type trace struct {
	steps []selection.Step
}

func (t *trace) hook(s selection.Step) { t.steps = append(t.steps, s) }

func (t *trace) plot(title, path string) error {
	if path == "" {
		return nil
	}
	if err := report.PlotTrace(t.steps, title, path); err != nil {
		return err
	}
	log.GetLogger().Info("trace plot saved", "path", path)
	return nil
}

// searchOptions returns the selection options every engine shares.
func (o *rootOptions) searchOptions(t *trace) []selection.Option {
	opts := []selection.Option{
		selection.WithLogger(log.GetLogger()),
		selection.WithObserver(o.observer),
		selection.WithScoreCache(o.cfg.CacheSize),
	}
	if t != nil {
		opts = append(opts, selection.WithStepHook(t.hook))
	}
	return opts
}

func scoreFn(name string) (selection.ScoreFn, error) {
	switch name {
	case config.ScorerRSS:
		return scoring.ResidualSumOfSquares, nil
	case config.ScorerMSE:
		return scoring.MeanSquaredError, nil
	case config.ScorerOneMinusR2:
		return scoring.OneMinusR2, nil
	default:
		return nil, errors.NewConfigurationError("featsel", "scorer", name, "must be one of rss, mse, r2")
	}
}

func weakestFn(name string, standardize bool) (selection.WeakestColumnFn, error) {
	switch name {
	case config.WeakestAbsCoefficient:
		return scoring.WeakestAbsCoefficient(standardize), nil
	case config.WeakestCoefficient:
		return scoring.WeakestCoefficient, nil
	default:
		return nil, errors.NewConfigurationError("featsel", "rfe.scorer", name, "must be abs_coef or coef")
	}
}

// printSelection writes one "index<TAB>name" line per selected column.
func printSelection(w io.Writer, X *selection.Table, cols []int) error {
	for _, j := range cols {
		if _, err := fmt.Fprintf(w, "%d\t%s\n", j, X.Name(j)); err != nil {
			return err
		}
	}
	return nil
}

func formatMask(mask []bool) string {
	var b strings.Builder
	for _, m := range mask {
		if m {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}
