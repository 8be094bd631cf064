// Callisto is a small concurrent HTTP/1.x page server.
//
// It listens on one or more TCP endpoints, answers each request line with a
// generated page or an embedded resource, and writes one log line per event
// through a single ordered log queue:
//   - One lightweight task per connection, multiplexed over a fixed pool of
//     worker threads
//   - Connection ids unique across all endpoints
//   - Optional Prometheus metrics, health and readiness endpoints
//   - Optional page overrides with hot reload
//
// Usage:
//
//	# Start with the default endpoints (127.0.0.1:8888 and 127.0.0.1:7777)
//	callisto run
//
//	# Start with a configuration file
//	callisto run --config /etc/callisto/callisto.yaml
//
//	# Override endpoints and worker count
//	callisto run --listen 0.0.0.0:8080 --listen 0.0.0.0:8081 --workers 4
//
//	# Check a configuration file
//	callisto validate --config callisto.yaml
//
//	# Show version information
//	callisto version
package main

func main() {
	Execute()
}
