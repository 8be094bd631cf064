package metrics

import (
	"sync"

	"mercator-hq/callisto/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// otherLabel replaces label values once the cardinality limit is reached.
const otherLabel = "other"

// Collector owns every Callisto metric. It implements the connection
// observer used by the server and the observer used by the log drain, so a
// single instance is wired into both.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	connMetrics    *ConnectionMetrics
	logMetrics     *LogMetrics
	runtimeMetrics *RuntimeMetrics

	cardinalityLimiter *CardinalityLimiter
}

// NewCollector creates a collector registering its metrics on registry. A
// nil registry gets a fresh one.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}

	return &Collector{
		config:             cfg,
		registry:           registry,
		connMetrics:        NewConnectionMetrics(cfg, registry),
		logMetrics:         NewLogMetrics(cfg, registry),
		runtimeMetrics:     NewRuntimeMetrics(cfg, registry),
		cardinalityLimiter: NewCardinalityLimiter(1000),
	}
}

// ConnectionAccepted records an accepted socket on endpoint.
func (c *Collector) ConnectionAccepted(endpoint string) {
	c.connMetrics.accepted.WithLabelValues(endpoint).Inc()
	c.connMetrics.active.Inc()
}

// AcceptFailed records a failed accept on endpoint.
func (c *Collector) AcceptFailed(endpoint string) {
	c.connMetrics.acceptErrors.WithLabelValues(endpoint).Inc()
}

// ConnectionClosed records the end of a connection.
func (c *Collector) ConnectionClosed(reason string) {
	c.connMetrics.closed.WithLabelValues(reason).Inc()
	c.connMetrics.active.Dec()
}

// BytesRead records bytes received from a peer.
func (c *Collector) BytesRead(n int) {
	c.connMetrics.bytesRead.Add(float64(n))
}

// BytesWritten records bytes sent to a peer.
func (c *Collector) BytesWritten(n int) {
	c.connMetrics.bytesWritten.Add(float64(n))
}

// ResponseSent records a response by status code.
func (c *Collector) ResponseSent(status string) {
	if !c.cardinalityLimiter.Allow("status:" + status) {
		status = otherLabel
	}
	c.connMetrics.responses.WithLabelValues(status).Inc()
}

// BatchDrained records a batch of log lines written by the drain.
func (c *Collector) BatchDrained(size int) {
	c.logMetrics.lines.Add(float64(size))
	c.logMetrics.batchSize.Observe(float64(size))
}

// LineDropped records a log line the sink refused.
func (c *Collector) LineDropped() {
	c.logMetrics.dropped.Inc()
}

// TrackTasks exposes the live task count reported by active.
func (c *Collector) TrackTasks(active func() int64) {
	c.runtimeMetrics.trackTasks(c.registry, active)
}

// SetBuildInfo publishes the version and instance id of this process.
func (c *Collector) SetBuildInfo(version, instance string) {
	c.runtimeMetrics.buildInfo.Reset()
	c.runtimeMetrics.buildInfo.WithLabelValues(version, instance).Set(1)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter caps the number of distinct label sets a collector
// will create.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a limiter allowing maxCardinality label sets.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow reports whether labelSet is known or still fits under the limit.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	_, exists := cl.current[labelSet]
	cl.mu.RUnlock()
	if exists {
		return true
	}

	cl.mu.Lock()
	defer cl.mu.Unlock()

	if _, exists := cl.current[labelSet]; exists {
		return true
	}
	if len(cl.current) >= cl.maxCardinality {
		return false
	}
	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
