package ftma

import (
	"github.com/vaultmesh/secureagg/pkg/adapters/logger"
	"github.com/vaultmesh/secureagg/pkg/adapters/metrics"
)

// defaultScale is used when a caller does not supply one.
const defaultScale = int64(1_000_000)

// config holds the coordinator's construction parameters and the optional
// ambient-stack adapters. The PRNG is seeded from a non-deterministic
// source unless Seed is supplied, which is the explicit reproducibility
// extension point the design calls for.
type config struct {
	numClients int
	threshold  int
	dimension  int
	scale      int64
	seed       *uint64
	logger     logger.Logger
	metrics    metrics.Recorder
}

// Option configures a Coordinator at construction time.
type Option func(*config)

// WithScale overrides the default scale factor (1_000_000) used to embed
// real-valued metrics into the field.
func WithScale(scale int64) Option {
	return func(c *config) { c.scale = scale }
}

// WithSeed pins the coordinator's internal PRNG to a deterministic seed,
// for reproducible tests; production callers should leave this unset so
// the seed is drawn from a cryptographically independent source per run.
func WithSeed(seed uint64) Option {
	return func(c *config) { c.seed = &seed }
}

// WithLogger attaches a structured logger; the default is a no-op.
func WithLogger(l logger.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithMetrics attaches a metrics recorder; the default is a no-op.
func WithMetrics(m metrics.Recorder) Option {
	return func(c *config) { c.metrics = m }
}
