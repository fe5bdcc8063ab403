// Package log defines standard attribute keys for estimation runs.
//
// Keys follow a hierarchical naming convention (e.g. "data.samples",
// "training.iteration") so JSON output can be filtered consistently.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the estimator or transformer.
	// Examples: "LeastSquaresGD", "LogisticRegression", "StandardScaler"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is logging.
	// Examples: "linear", "preprocessing", "dataset"
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of the pipeline.
	PhaseKey = "ml.phase"
)

// Data Shape and Characteristics
const (
	// SamplesKey is the number of rows in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of columns in the dataset.
	FeaturesKey = "data.features"

	// BatchSizeKey is the minibatch size used by stochastic routines.
	BatchSizeKey = "data.batch_size"

	// RowsKeptKey and ColumnsKeptKey report what survived a cleaning pass.
	RowsKeptKey    = "data.rows_kept"
	ColumnsKeptKey = "data.columns_kept"
)

// Training progress and metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// LossKey records the loss at a checkpoint or at the end of training.
	LossKey = "metrics.loss"

	// AccuracyKey records classification accuracy.
	AccuracyKey = "metrics.accuracy"

	// RMSEKey records the root mean squared error on held-out data.
	RMSEKey = "metrics.rmse"

	// IterationKey records the current iteration number.
	IterationKey = "training.iteration"

	// StateKey records the terminal state of an iterative optimizer.
	// Values: "running", "converged", "max_iters_reached"
	StateKey = "training.state"

	// ClampedKey counts entries pulled to a boundary by a stability clamp.
	ClampedKey = "numeric.clamped"
)

// Hyperparameters
const (
	// LearningRateKey records the step size gamma.
	LearningRateKey = "hyperparams.learning_rate"

	// RegularizationKey records lambda.
	RegularizationKey = "hyperparams.regularization"

	// MaxItersKey records the iteration cap.
	MaxItersKey = "hyperparams.max_iters"

	// DegreeKey records the polynomial expansion degree.
	DegreeKey = "hyperparams.degree"
)

// Error Context
const (
	// ErrorKey holds the error value passed to Logger.Error.
	ErrorKey = "error"

	// StacktraceKey contains the stack trace extracted from a cockroachdb error.
	StacktraceKey = "error.stacktrace"
)

// Standard attribute values.
const (
	OperationFit       = "fit"
	OperationPredict   = "predict"
	OperationTransform = "transform"
	OperationScore     = "score"
	OperationLoad      = "load"

	PhaseTraining      = "training"
	PhaseInference     = "inference"
	PhasePreprocessing = "preprocessing"
)
