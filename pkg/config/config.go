package config

import "time"

// Config is the root configuration structure for Callisto.
type Config struct {
	// Server contains the endpoints to listen on and the worker pool size.
	Server ServerConfig `yaml:"server"`

	// Pages contains the optional page override directory.
	Pages PagesConfig `yaml:"pages"`

	// Telemetry contains logging, metrics and periodic stats configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains configuration for the TCP listeners.
type ServerConfig struct {
	// Endpoints is the list of addresses to listen on. Each gets its own
	// listener; all share one connection id sequence.
	// Default: 127.0.0.1:8888 and 127.0.0.1:7777
	Endpoints []EndpointConfig `yaml:"endpoints"`

	// Workers is the number of OS threads running connection tasks.
	// 0 selects the number of CPUs.
	// Default: 0
	Workers int `yaml:"workers"`

	// ShutdownTimeout bounds how long shutdown waits for listeners to stop.
	// Default: 5s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// EndpointConfig is one address/port pair.
type EndpointConfig struct {
	Address string `yaml:"address"`
	Port    int    `yaml:"port"`
}

// PagesConfig contains configuration for served pages.
type PagesConfig struct {
	// Dir is a directory whose files override the built-in pages.
	// Default: "" (built-in pages only)
	Dir string `yaml:"dir"`

	// Watch reloads Dir when its files change. Requires Dir.
	// Default: false
	Watch bool `yaml:"watch"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics and admin endpoint configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Stats contains the periodic stats report configuration.
	Stats StatsConfig `yaml:"stats"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log line format.
	// Options: "text", "json"
	// Default: "text"
	Format string `yaml:"format"`

	// Output is where log lines are written: "stdout", "stderr" or a file
	// path opened for append.
	// Default: "stdout"
	Output string `yaml:"output"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled starts the admin HTTP listener serving metrics and health.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the admin listener address.
	// Default: "127.0.0.1:9464"
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "callisto"
	Namespace string `yaml:"namespace"`
}

// StatsConfig contains configuration for the periodic stats log line.
type StatsConfig struct {
	// Schedule is a cron expression or descriptor ("@every 1m").
	// Empty disables the report.
	// Default: ""
	Schedule string `yaml:"schedule"`
}
