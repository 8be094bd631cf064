package metrics

import (
	"sync"

	"mercator-hq/callisto/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// RuntimeMetrics tracks the task runtime and identifies the process.
type RuntimeMetrics struct {
	namespace string
	buildInfo *prometheus.GaugeVec

	once sync.Once
}

// NewRuntimeMetrics creates and registers runtime metrics. The task gauge is
// registered later by trackTasks.
func NewRuntimeMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *RuntimeMetrics {
	rm := &RuntimeMetrics{
		namespace: cfg.Namespace,
		buildInfo: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Name:      "build_info",
				Help:      "Constant 1, labelled with the version and instance id",
			},
			[]string{"version", "instance"},
		),
	}
	registry.MustRegister(rm.buildInfo)
	return rm
}

func (rm *RuntimeMetrics) trackTasks(registry *prometheus.Registry, active func() int64) {
	rm.once.Do(func() {
		registry.MustRegister(prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace: rm.namespace,
				Name:      "runtime_tasks_active",
				Help:      "Number of live runtime tasks",
			},
			func() float64 { return float64(active()) },
		))
	})
}
