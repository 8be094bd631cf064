package config

import "time"

// ConfigBuilder provides a fluent API for building Config instances in tests.
// It starts with default values and allows selective overrides.
type ConfigBuilder struct {
	cfg Config
}

// NewTestConfig creates a valid ConfigBuilder with every default applied.
func NewTestConfig() *ConfigBuilder {
	var cfg Config
	ApplyDefaults(&cfg)
	return &ConfigBuilder{cfg: cfg}
}

// Build returns the built Config instance.
func (b *ConfigBuilder) Build() *Config {
	return &b.cfg
}

// WithEndpoints replaces the listener endpoints.
func (b *ConfigBuilder) WithEndpoints(eps ...EndpointConfig) *ConfigBuilder {
	b.cfg.Server.Endpoints = eps
	return b
}

// WithWorkers sets the worker pool size.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Server.Workers = n
	return b
}

// WithShutdownTimeout sets the shutdown timeout.
func (b *ConfigBuilder) WithShutdownTimeout(d time.Duration) *ConfigBuilder {
	b.cfg.Server.ShutdownTimeout = d
	return b
}

// WithLogLevel sets the logging level.
func (b *ConfigBuilder) WithLogLevel(level string) *ConfigBuilder {
	b.cfg.Telemetry.Logging.Level = level
	return b
}

// WithLogFormat sets the logging format.
func (b *ConfigBuilder) WithLogFormat(format string) *ConfigBuilder {
	b.cfg.Telemetry.Logging.Format = format
	return b
}

// WithMetrics enables the admin listener on addr.
func (b *ConfigBuilder) WithMetrics(addr string) *ConfigBuilder {
	b.cfg.Telemetry.Metrics.Enabled = true
	b.cfg.Telemetry.Metrics.ListenAddress = addr
	return b
}

// WithStatsSchedule sets the stats report schedule.
func (b *ConfigBuilder) WithStatsSchedule(schedule string) *ConfigBuilder {
	b.cfg.Telemetry.Stats.Schedule = schedule
	return b
}

// WithPages sets the page override directory and watch flag.
func (b *ConfigBuilder) WithPages(dir string, watch bool) *ConfigBuilder {
	b.cfg.Pages.Dir = dir
	b.cfg.Pages.Watch = watch
	return b
}
