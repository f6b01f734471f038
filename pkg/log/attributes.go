// Package log defines standard attribute keys for scorecard operations.
//
// This file contains predefined attribute keys that provide consistency across
// all logging operations in ScoreGo. Using these standard keys enables better
// log analysis, monitoring, and debugging of binning and scoring workflows.
//
// The attributes are organized into categories:
//   - Model and Operation Context
//   - Data Shape and Characteristics
//   - Binning and Dictionary Context
//   - Transformation and Scoring Context
//   - Pipeline Context
//   - Performance Metrics
//   - Error Context
//
// These keys follow a hierarchical naming convention (e.g., "feature.name",
// "data.rows") to enable structured log analysis and filtering.

package log

// Model and Operation Context
// These attributes identify the component and operation being performed.
const (
	// ModelNameKey identifies the estimator or artifact type.
	// Examples: "Encoder", "Scorecard"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "transform", "fit_transform", "build", "apply", "score"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "woe", "scorecard", "pipeline", "report"
	ComponentKey = "ml.component"
)

// Data Shape and Characteristics
// These attributes describe the structure and properties of data being processed.
const (
	// RowsKey indicates the number of rows (observations) in the dataset.
	RowsKey = "data.rows"

	// FeaturesKey indicates the number of feature columns in the dataset.
	FeaturesKey = "data.features"

	// EventsKey indicates the number of target events (target == 1).
	EventsKey = "data.events"

	// EventRateKey records the overall event rate of the dataset.
	// Range [0.0, 1.0].
	EventRateKey = "data.event_rate"
)

// Binning and Dictionary Context
// These attributes describe a single feature's binning results.
const (
	// FeatureKey identifies the feature being binned or transformed.
	FeatureKey = "feature.name"

	// DistinctKey records the number of distinct values observed for a
	// discrete feature. Compared against the cardinality limit.
	DistinctKey = "feature.distinct"

	// BinsKey indicates the number of bins in a feature's bin table.
	BinsKey = "bins.count"

	// IVKey records the total Information Value of a feature.
	IVKey = "metrics.iv"

	// StrengthKey records the IV strength classification.
	// Examples: "weak", "medium", "strong", "suspicious"
	StrengthKey = "metrics.iv_strength"
)

// Transformation and Scoring Context
// These attributes describe lookup and scaling operations and their results.
const (
	// DroppedKey indicates the number of rows dropped by the production
	// outlier policy during a transform.
	DroppedKey = "rows.dropped"

	// ScoreMinKey and ScoreMaxKey record the advisory score range of a
	// scorecard. Scores outside the range are reported, never clamped.
	ScoreMinKey = "score.min"
	ScoreMaxKey = "score.max"

	// FactorKey records the scaling factor (PDO / ln 2).
	FactorKey = "score.factor"

	// OffsetKey records the scaling offset.
	OffsetKey = "score.offset"

	// AdditivityGapKey records the maximum observed gap between a row's
	// summed bin points and its scaled model score.
	AdditivityGapKey = "score.additivity_gap"
)

// Pipeline Context
// These attributes identify pipeline runs and their steps.
const (
	// RunIDKey provides a unique identifier for one pipeline run.
	RunIDKey = "pipeline.run_id"

	// StepKey records the name of the pipeline step being executed.
	StepKey = "pipeline.step"

	// StepIndexKey records the zero-based position of the step in the run.
	StepIndexKey = "pipeline.step_index"
)

// Performance Metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

// Error and Warning Context
// These attributes provide additional context for error and warning messages.
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	// Examples: "CARDINALITY_EXCEEDED", "UNSEEN_VALUE"
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	// Examples: "CardinalityError", "PartitionError"
	ErrorTypeKey = "error.type"

	// StacktraceKey contains stack trace information for debugging.
	// Automatically populated by the error logging handler.
	StacktraceKey = "error.stacktrace"
)

// Standard attribute value constants for common operations.
// Using these constants ensures consistency across the codebase.
const (
	// Standard operations
	OperationFit          = "fit"
	OperationTransform    = "transform"
	OperationFitTransform = "fit_transform"
	OperationBuild        = "build"
	OperationApply        = "apply"
	OperationScore        = "score"

	// Standard error codes
	ErrorNotFitted              = "NOT_FITTED"
	ErrorDimensionMismatch      = "DIMENSION_MISMATCH"
	ErrorEmptyInput             = "EMPTY_INPUT"
	ErrorInvalidTarget          = "INVALID_TARGET"
	ErrorCardinalityExceeded    = "CARDINALITY_EXCEEDED"
	ErrorNonExhaustivePartition = "NON_EXHAUSTIVE_PARTITION"
	ErrorUnseenValue            = "UNSEEN_VALUE"
	ErrorMissingCoefficient     = "MISSING_COEFFICIENT"
)
