// Package metrics provides an adapter interface for instrumenting the
// ftma/gwde cores, following the same pattern as the logger adapter:
// applications implement Recorder with whatever metrics stack they use, or
// fall back to the no-op implementation.
package metrics

import (
	"context"
	"time"
)

// Standard metric names emitted by the coordinator and watermark cores.
const (
	FTMARegistrationsTotal       = "ftma.registrations.total"
	FTMAFinalizeTotal            = "ftma.finalize.total"
	FTMAFinalizeDurationSeconds  = "ftma.finalize.duration_seconds"
	FTMASharesReconstructedTotal = "ftma.shares_reconstructed.total"

	GWDEEmbedTotal  = "gwde.embed.total"
	GWDEDetectTotal = "gwde.detect.total"
	GWDEDetectScore = "gwde.detect.score"
)

// Recorder is the interface the cores use to report counters, gauges,
// histograms, and timers. All methods accept a context so implementations
// that propagate trace/correlation information can use it.
type Recorder interface {
	RecordCounter(ctx context.Context, name string, tags map[string]string)
	RecordGauge(ctx context.Context, name string, value float64, tags map[string]string)
	RecordHistogram(ctx context.Context, name string, value float64, tags map[string]string)
	RecordTimer(ctx context.Context, name string, duration time.Duration, tags map[string]string)
}

type noop struct{}

// NoOp returns a Recorder that does nothing, the default when no recorder
// is configured.
func NoOp() Recorder { return noop{} }

func (noop) RecordCounter(context.Context, string, map[string]string)              {}
func (noop) RecordGauge(context.Context, string, float64, map[string]string)       {}
func (noop) RecordHistogram(context.Context, string, float64, map[string]string)   {}
func (noop) RecordTimer(context.Context, string, time.Duration, map[string]string) {}
