package metrics

import (
	"mercator-hq/callisto/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// LogMetrics tracks the log drain.
type LogMetrics struct {
	lines     prometheus.Counter
	dropped   prometheus.Counter
	batchSize prometheus.Histogram
}

// NewLogMetrics creates and registers log drain metrics.
func NewLogMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *LogMetrics {
	lm := &LogMetrics{
		lines: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "log_lines_total",
			Help:      "Total log lines taken from the queue",
		}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "log_lines_dropped_total",
			Help:      "Total log lines the sink failed to write",
		}),
		batchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "log_batch_size",
			Help:      "Number of lines per drained batch",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8), // 1 to 16384
		}),
	}

	registry.MustRegister(lm.lines, lm.dropped, lm.batchSize)
	return lm
}
