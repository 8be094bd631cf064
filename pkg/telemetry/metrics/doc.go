// Package metrics provides Prometheus metrics for Callisto.
//
// A Collector is passed to the server as its connection observer and to the
// log drain as its batch observer:
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	collector.TrackTasks(rt.Active)
//	collector.SetBuildInfo(version, instanceID)
//
//	srv := server.New(rt, server.Options{Observer: collector, ...})
//	drain := lc.NewDrain(sink, collector)
//
// Exposed on the admin listener:
//
//	callisto_connections_accepted_total{endpoint}
//	callisto_connections_active
//	callisto_connections_closed_total{reason="peer|error"}
//	callisto_accept_errors_total{endpoint}
//	callisto_bytes_read_total
//	callisto_bytes_written_total
//	callisto_responses_total{status}
//	callisto_log_lines_total
//	callisto_log_lines_dropped_total
//	callisto_log_batch_size
//	callisto_runtime_tasks_active
//	callisto_build_info{version,instance}
//
// Response status labels are capped by a CardinalityLimiter; values past
// the cap are counted as "other".
package metrics
