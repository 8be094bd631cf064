package metrics

import (
	"mercator-hq/callisto/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// ConnectionMetrics tracks accepted sockets and the bytes they carry.
//
// Metrics:
//   - callisto_connections_accepted_total{endpoint}
//   - callisto_connections_active
//   - callisto_connections_closed_total{reason}
//   - callisto_accept_errors_total{endpoint}
//   - callisto_bytes_read_total, callisto_bytes_written_total
//   - callisto_responses_total{status}
type ConnectionMetrics struct {
	accepted     *prometheus.CounterVec
	active       prometheus.Gauge
	closed       *prometheus.CounterVec
	acceptErrors *prometheus.CounterVec
	bytesRead    prometheus.Counter
	bytesWritten prometheus.Counter
	responses    *prometheus.CounterVec
}

// NewConnectionMetrics creates and registers connection metrics.
func NewConnectionMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ConnectionMetrics {
	cm := &ConnectionMetrics{
		accepted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "connections_accepted_total",
				Help:      "Total number of accepted connections",
			},
			[]string{"endpoint"},
		),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "connections_active",
			Help:      "Number of connections currently being served",
		}),
		closed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "connections_closed_total",
				Help:      "Total number of closed connections by reason",
			},
			[]string{"reason"},
		),
		acceptErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "accept_errors_total",
				Help:      "Total number of failed accepts",
			},
			[]string{"endpoint"},
		),
		bytesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "bytes_read_total",
			Help:      "Total bytes received from peers",
		}),
		bytesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "bytes_written_total",
			Help:      "Total bytes sent to peers",
		}),
		responses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "responses_total",
				Help:      "Total responses sent by status code",
			},
			[]string{"status"},
		),
	}

	registry.MustRegister(
		cm.accepted,
		cm.active,
		cm.closed,
		cm.acceptErrors,
		cm.bytesRead,
		cm.bytesWritten,
		cm.responses,
	)
	return cm
}
