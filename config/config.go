// Package config loads the featsel CLI configuration.
//
// Precedence, lowest to highest:
//
//  1. Built-in defaults (Default)
//  2. A YAML file passed with --config
//  3. FEATSEL_* environment variables
//  4. Command-line flags (applied by the command)
package config

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/caarlos0/env/v10"
	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/featsel/pkg/errors"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "FEATSEL_"

// Config is the complete CLI configuration. Environment variables have no
// envDefault so that unset variables leave file values alone.
type Config struct {
	Log       LogConfig       `yaml:"log" envPrefix:"LOG_"`
	Scorer    string          `yaml:"scorer" env:"SCORER"`
	CacheSize int             `yaml:"cache_size" env:"CACHE_SIZE"`
	Forward   ForwardConfig   `yaml:"forward" envPrefix:"FORWARD_"`
	RFE       RFEConfig       `yaml:"rfe" envPrefix:"RFE_"`
	Annealing AnnealingConfig `yaml:"annealing" envPrefix:"ANNEALING_"`
	Variance  VarianceConfig  `yaml:"variance" envPrefix:"VARIANCE_"`
}

// LogConfig controls the zerolog backend.
type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
}

// ForwardConfig holds forward selection parameters.
type ForwardConfig struct {
	MinFeatures  int     `yaml:"min_features" env:"MIN_FEATURES"`
	MaxFeatures  int     `yaml:"max_features" env:"MAX_FEATURES"`
	Threshold    float64 `yaml:"threshold" env:"THRESHOLD"`
	StoppingRule string  `yaml:"stopping_rule" env:"STOPPING_RULE"`
}

// RFEConfig holds recursive feature elimination parameters.
type RFEConfig struct {
	NFeatures   int    `yaml:"n_features" env:"N_FEATURES"`
	Scorer      string `yaml:"scorer" env:"SCORER"`
	Standardize bool   `yaml:"standardize" env:"STANDARDIZE"`
}

// AnnealingConfig holds simulated annealing parameters. A negative Seed
// means a fresh time-based seed per run.
type AnnealingConfig struct {
	ControlRate float64 `yaml:"control_rate" env:"CONTROL_RATE"`
	Iterations  int     `yaml:"iterations" env:"ITERATIONS"`
	Seed        int64   `yaml:"seed" env:"SEED"`
}

// VarianceConfig holds variance thresholding parameters.
type VarianceConfig struct {
	Threshold float64 `yaml:"threshold" env:"THRESHOLD"`
}

// Scorer names accepted by Config.Scorer and RFEConfig.Scorer.
const (
	ScorerRSS        = "rss"
	ScorerMSE        = "mse"
	ScorerOneMinusR2 = "r2"

	WeakestAbsCoefficient = "abs_coef"
	WeakestCoefficient    = "coef"

	StoppingRelative = "relative"
	StoppingIncrease = "increase"
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log:    LogConfig{Level: "warn", Format: "console"},
		Scorer: ScorerRSS,
		Forward: ForwardConfig{
			MinFeatures:  1,
			MaxFeatures:  10,
			Threshold:    0.05,
			StoppingRule: StoppingRelative,
		},
		RFE: RFEConfig{
			NFeatures:   5,
			Scorer:      WeakestAbsCoefficient,
			Standardize: true,
		},
		Annealing: AnnealingConfig{
			ControlRate: 1,
			Iterations:  200,
			Seed:        -1,
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (if
// path is not empty) and the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadYAML overlays the fields present in the file; absent fields keep
// their current values.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read config file %s", path)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrapf(err, "failed to parse config file %s", path)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return errors.Wrap(err, "failed to parse environment")
	}
	return nil
}

// Validate checks every section and returns a ConfigurationError for the
// first invalid value.
func (c *Config) Validate() error {
	const op = "config.Validate"

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return errors.NewConfigurationError(op, "log.level", c.Log.Level, "must be one of debug, info, warn, error")
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		return errors.NewConfigurationError(op, "log.format", c.Log.Format, "must be json or console")
	}

	switch c.Scorer {
	case ScorerRSS, ScorerMSE, ScorerOneMinusR2:
	default:
		return errors.NewConfigurationError(op, "scorer", c.Scorer, "must be one of rss, mse, r2")
	}
	if c.CacheSize < 0 {
		return errors.NewConfigurationError(op, "cache_size", c.CacheSize, "must be non-negative")
	}

	if c.Forward.MinFeatures < 1 {
		return errors.NewConfigurationError(op, "forward.min_features", c.Forward.MinFeatures, "must be positive")
	}
	if c.Forward.MaxFeatures < c.Forward.MinFeatures {
		return errors.NewConfigurationError(op, "forward.max_features", c.Forward.MaxFeatures, "must be greater or equal to min_features")
	}
	if c.Forward.Threshold < 0 || c.Forward.Threshold >= 1 {
		return errors.NewConfigurationError(op, "forward.threshold", c.Forward.Threshold, "must be in [0, 1)")
	}
	switch c.Forward.StoppingRule {
	case StoppingRelative, StoppingIncrease:
	default:
		return errors.NewConfigurationError(op, "forward.stopping_rule", c.Forward.StoppingRule, "must be relative or increase")
	}

	if c.RFE.NFeatures < 1 {
		return errors.NewConfigurationError(op, "rfe.n_features", c.RFE.NFeatures, "must be positive")
	}
	switch c.RFE.Scorer {
	case WeakestAbsCoefficient, WeakestCoefficient:
	default:
		return errors.NewConfigurationError(op, "rfe.scorer", c.RFE.Scorer, "must be abs_coef or coef")
	}

	if !(c.Annealing.ControlRate > 0) {
		return errors.NewConfigurationError(op, "annealing.control_rate", c.Annealing.ControlRate, "must be positive")
	}
	if c.Annealing.Iterations < 0 {
		return errors.NewConfigurationError(op, "annealing.iterations", c.Annealing.Iterations, "must be non-negative")
	}
	if c.Annealing.Seed < -1 {
		return errors.NewConfigurationError(op, "annealing.seed", c.Annealing.Seed, "must be -1 (random) or a non-negative seed")
	}

	if c.Variance.Threshold < 0 {
		return errors.NewConfigurationError(op, "variance.threshold", c.Variance.Threshold, "must be non-negative")
	}
	return nil
}

// WriteYAML writes the configuration to path.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write config file %s", path)
	}
	return nil
}
