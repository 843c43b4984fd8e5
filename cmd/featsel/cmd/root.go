// Package cmd provides the CLI commands for featsel.
package cmd

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/featsel/config"
	"github.com/YuminosukeSato/featsel/pkg/log"
	"github.com/YuminosukeSato/featsel/telemetry"
)

// rootOptions is shared by every subcommand. cfg, registry and observer are
// set by the persistent pre-run hook.
type rootOptions struct {
	configPath  string
	logLevel    string
	logFormat   string
	metricsFile string

	cfg      *config.Config
	registry *prometheus.Registry
	observer *telemetry.PrometheusObserver
}

// NewRootCmd creates the root command for the featsel CLI.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "featsel",
		Short: "Feature selection for tabular regression data",
		Long: `featsel picks a subset of the columns of a CSV file that best explains
a numeric target column.

Engines:
  forward    greedy forward selection
  rfe        recursive feature elimination
  anneal     simulated annealing over column masks
  variance   drop columns whose variance is below a threshold

Settings are read from built-in defaults, then --config, then FEATSEL_*
environment variables, then command-line flags.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return opts.flushMetrics()
		},
	}
	cmd.SetVersionTemplate("featsel version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML configuration file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "Log format: console, json")
	cmd.PersistentFlags().StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the run")

	cmd.AddCommand(newForwardCmd(opts))
	cmd.AddCommand(newRFECmd(opts))
	cmd.AddCommand(newAnnealCmd(opts))
	cmd.AddCommand(newVarianceCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// setup loads the configuration, applies the logging flags and prepares the
// metrics registry.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = o.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := log.SetupLogger(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format); err != nil {
		return err
	}

	o.registry = prometheus.NewRegistry()
	o.observer, err = telemetry.NewPrometheusObserver(o.registry)
	if err != nil {
		return err
	}
	o.cfg = cfg
	return nil
}

func (o *rootOptions) flushMetrics() error {
	if o.metricsFile == "" || o.registry == nil {
		return nil
	}
	if err := telemetry.WriteTextfile(o.metricsFile, o.registry); err != nil {
		return err
	}
	log.GetLogger().Debug("metrics written", "path", o.metricsFile)
	return nil
}
