package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder on top of client_golang. Counters,
// gauges, and histograms are created lazily per metric name so the set of
// tag label names used for a given metric must stay consistent across
// calls, matching Prometheus's own constraint on label cardinality.
type PrometheusRecorder struct {
	namespace  string
	registerer prometheus.Registerer
	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
	histograms map[string]*prometheus.HistogramVec
}

// NewPrometheusRecorder builds a Recorder that registers metrics under the
// given namespace with the provided registerer (use prometheus.DefaultRegisterer
// for the global registry).
func NewPrometheusRecorder(namespace string, registerer prometheus.Registerer) *PrometheusRecorder {
	return &PrometheusRecorder{
		namespace:  namespace,
		registerer: registerer,
		counters:   make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
		histograms: make(map[string]*prometheus.HistogramVec),
	}
}

func labelNames(tags map[string]string) []string {
	names := make([]string, 0, len(tags))
	for k := range tags {
		names = append(names, k)
	}
	return names
}

func (r *PrometheusRecorder) counterVec(name string, tags map[string]string) *prometheus.CounterVec {
	if cv, ok := r.counters[name]; ok {
		return cv
	}
	cv := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      sanitize(name),
		Help:      "secureagg counter " + name,
	}, labelNames(tags))
	_ = r.registerer.Register(cv)
	r.counters[name] = cv
	return cv
}

func (r *PrometheusRecorder) gaugeVec(name string, tags map[string]string) *prometheus.GaugeVec {
	if gv, ok := r.gauges[name]; ok {
		return gv
	}
	gv := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Name:      sanitize(name),
		Help:      "secureagg gauge " + name,
	}, labelNames(tags))
	_ = r.registerer.Register(gv)
	r.gauges[name] = gv
	return gv
}

func (r *PrometheusRecorder) histogramVec(name string, tags map[string]string) *prometheus.HistogramVec {
	if hv, ok := r.histograms[name]; ok {
		return hv
	}
	hv := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Name:      sanitize(name),
		Help:      "secureagg histogram " + name,
		Buckets:   prometheus.DefBuckets,
	}, labelNames(tags))
	_ = r.registerer.Register(hv)
	r.histograms[name] = hv
	return hv
}

func (r *PrometheusRecorder) RecordCounter(_ context.Context, name string, tags map[string]string) {
	r.counterVec(name, tags).With(tags).Inc()
}

func (r *PrometheusRecorder) RecordGauge(_ context.Context, name string, value float64, tags map[string]string) {
	r.gaugeVec(name, tags).With(tags).Set(value)
}

func (r *PrometheusRecorder) RecordHistogram(_ context.Context, name string, value float64, tags map[string]string) {
	r.histogramVec(name, tags).With(tags).Observe(value)
}

func (r *PrometheusRecorder) RecordTimer(ctx context.Context, name string, duration time.Duration, tags map[string]string) {
	r.RecordHistogram(ctx, name, duration.Seconds(), tags)
}

// sanitize replaces the dots used in the cores' metric-name constants with
// underscores, since Prometheus metric names may not contain dots.
func sanitize(name string) string {
	out := make([]byte, len(name))
	for i := 0; i < len(name); i++ {
		if name[i] == '.' {
			out[i] = '_'
		} else {
			out[i] = name[i]
		}
	}
	return string(out)
}
