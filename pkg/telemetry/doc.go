// Package telemetry groups Callisto's observability packages.
//
// # Components
//
//   - logging: the ordered log queue, its single drain and the slog handler
//     that prefixes every line with its thread and connection
//   - metrics: Prometheus collectors fed by the server and the drain
//   - health: liveness, readiness and version endpoints
//
// # Usage
//
//	lc, err := logging.New(logging.Config{Level: "info", Format: "text"})
//	if err != nil {
//		return err
//	}
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//
//	// hand lc.Logger() and collector to the server, then on the main goroutine:
//	lc.NewDrain(os.Stdout, collector).Run()
//
// Only the logging pipeline is always on. Metrics and the health endpoints
// are served by the admin listener when telemetry.metrics.enabled is set.
package telemetry
