package linear

import (
	"math/rand/v2"
	"time"

	"github.com/YuminosukeSato/linfit/pkg/errors"
	"github.com/YuminosukeSato/linfit/pkg/log"
)

// Default hyperparameters shared by the iterative optimizers.
const (
	DefaultReportInterval = 50
	DefaultTolerance      = 1e-20
	DefaultBatchSize      = 2
)

// Checkpoint is the loss observed at a reporting iteration.
// Checkpoints are taken before the weight update of that iteration.
type Checkpoint struct {
	Iteration int
	Loss      float64
}

// Option configures a solver or optimizer call.
type Option func(*config)

type config struct {
	logger         log.Logger
	rng            *rand.Rand
	reportInterval int
	tolerance      float64
	batchSize      int
	onCheckpoint   func(Checkpoint)
}

// WithLogger sets the logger used for progress output. Pass
// log.NewNopLogger() to silence a call.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithRand sets the random generator used to shuffle minibatches.
// A fixed-seed generator makes LeastSquaresSGD reproducible.
func WithRand(rng *rand.Rand) Option {
	return func(c *config) {
		c.rng = rng
	}
}

// WithReportInterval sets how many iterations pass between checkpoints.
func WithReportInterval(every int) Option {
	return func(c *config) {
		c.reportInterval = every
	}
}

// WithTolerance sets the early-stopping threshold on the absolute change
// between consecutive checkpoint losses (LogisticRegression only).
func WithTolerance(tol float64) Option {
	return func(c *config) {
		c.tolerance = tol
	}
}

// WithBatchSize sets the minibatch size of LeastSquaresSGD.
func WithBatchSize(size int) Option {
	return func(c *config) {
		c.batchSize = size
	}
}

// WithCheckpoint registers fn to receive every checkpoint in order.
func WithCheckpoint(fn func(Checkpoint)) Option {
	return func(c *config) {
		c.onCheckpoint = fn
	}
}

func newConfig(name string, opts []Option) (*config, error) {
	c := &config{
		reportInterval: DefaultReportInterval,
		tolerance:      DefaultTolerance,
		batchSize:      DefaultBatchSize,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.reportInterval <= 0 {
		return nil, errors.NewValidationError("report_interval", "must be positive", c.reportInterval)
	}
	if c.batchSize <= 0 {
		return nil, errors.NewValidationError("batch_size", "must be positive", c.batchSize)
	}
	if c.tolerance < 0 {
		return nil, errors.NewValidationError("tolerance", "must be non-negative", c.tolerance)
	}

	if c.logger == nil {
		c.logger = log.GetLoggerWithName("linear")
	}
	c.logger = c.logger.With(log.ModelNameKey, name)

	if c.rng == nil {
		seed := uint64(time.Now().UnixNano())
		c.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	return c, nil
}

// checkpoint reports the loss at iter. A non-finite loss is returned as a
// NumericalInstabilityError and is not passed to the callback.
func (c *config) checkpoint(iter int, loss float64, clamped int) error {
	if err := errors.CheckScalar("checkpoint_loss", loss, iter); err != nil {
		c.logger.Error("loss is not finite", err, log.IterationKey, iter)
		return err
	}
	c.logger.Info("checkpoint",
		log.IterationKey, iter,
		log.LossKey, loss,
	)
	if clamped > 0 {
		c.logger.Debug("clamped values to keep exp and log finite",
			log.IterationKey, iter,
			log.ClampedKey, clamped,
		)
	}
	if c.onCheckpoint != nil {
		c.onCheckpoint(Checkpoint{Iteration: iter, Loss: loss})
	}
	return nil
}
