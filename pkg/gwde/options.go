package gwde

import (
	"github.com/vaultmesh/secureagg/pkg/adapters/logger"
	"github.com/vaultmesh/secureagg/pkg/adapters/metrics"
)

type config struct {
	logger  logger.Logger
	metrics metrics.Recorder
}

// Option configures the optional ambient-stack adapters for Embed/Detect.
type Option func(*config)

// WithLogger attaches a structured logger; the default is a no-op.
func WithLogger(l logger.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithMetrics attaches a metrics recorder; the default is a no-op.
func WithMetrics(m metrics.Recorder) Option {
	return func(c *config) { c.metrics = m }
}

func newConfig(opts []Option) config {
	cfg := config{logger: logger.NoOp(), metrics: metrics.NoOp()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
