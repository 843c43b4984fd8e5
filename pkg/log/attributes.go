// Package log defines standard attribute keys for feature-selection runs.
//
// The keys follow a hierarchical naming convention (e.g. "data.samples",
// "selection.round") so records from different engines can be filtered and
// compared in the same log stream.

package log

// Search context
const (
	// EngineKey identifies the search engine emitting the record.
	// Standard values: EngineForward, EngineRFE, EngineAnnealing, EngineVariance.
	EngineKey = "selection.engine"

	// ComponentKey identifies which package is logging.
	// Examples: "selection", "scoring", "cmd"
	ComponentKey = "ml.component"

	// OperationKey specifies the estimator-style operation being performed.
	// Standard values: "fit", "transform", "fit_transform", "score"
	OperationKey = "ml.operation"
)

// Data shape
const (
	// SamplesKey indicates the number of samples (rows) in the table.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) in the table.
	FeaturesKey = "data.features"
)

// Search progress
const (
	// RoundKey records the forward-selection round or elimination step.
	RoundKey = "selection.round"

	// IterationKey records the annealing iteration.
	IterationKey = "selection.iteration"

	// FeatureKey records the feature accepted or eliminated in a step.
	FeatureKey = "selection.feature"

	// ScoreKey records the scorer value of the current step (lower is better).
	ScoreKey = "selection.score"

	// AcceptedKey records whether an annealing move was accepted.
	AcceptedKey = "selection.accepted"

	// AcceptProbabilityKey records the annealing acceptance probability of a worse move.
	AcceptProbabilityKey = "selection.accept_probability"

	// SelectedKey records the number of selected features.
	SelectedKey = "selection.selected"

	// EvaluationsKey records how many times the scorer was invoked.
	EvaluationsKey = "selection.evaluations"

	// CacheHitsKey records how many scorer results were served from the score cache.
	CacheHitsKey = "selection.cache_hits"

	// StopReasonKey records why a search stopped.
	StopReasonKey = "selection.stop_reason"

	// DurationMsKey records the execution time of a search in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

// Configuration
const (
	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"

	// ThresholdKey records a variance or improvement threshold.
	ThresholdKey = "config.threshold"
)

// Error context
const (
	// ErrorKey holds the error value of an Error record.
	ErrorKey = "error"

	// ErrorTypeKey categorizes the type of error encountered.
	ErrorTypeKey = "error.type"

	// StacktraceKey contains stack trace information extracted from cockroachdb/errors.
	StacktraceKey = "error.stacktrace"
)

// Standard attribute values.
const (
	EngineForward   = "forward_selection"
	EngineRFE       = "recursive_feature_elimination"
	EngineAnnealing = "simulated_annealing"
	EngineVariance  = "variance_thresholding"

	OperationFit          = "fit"
	OperationTransform    = "transform"
	OperationFitTransform = "fit_transform"
	OperationScore        = "score"
)
