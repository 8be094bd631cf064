package config

import "time"

// Default values for configuration fields.
const (
	// Server defaults
	DefaultEndpointAddress = "127.0.0.1"
	DefaultPrimaryPort     = 8888
	DefaultSecondaryPort   = 7777
	DefaultShutdownTimeout = 5 * time.Second

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultLogOutput = "stdout"

	// Metrics defaults
	DefaultMetricsListenAddress = "127.0.0.1:9464"
	DefaultMetricsPath          = "/metrics"
	DefaultMetricsNamespace     = "callisto"
)

// DefaultEndpoints returns the endpoints used when none are configured.
func DefaultEndpoints() []EndpointConfig {
	return []EndpointConfig{
		{Address: DefaultEndpointAddress, Port: DefaultPrimaryPort},
		{Address: DefaultEndpointAddress, Port: DefaultSecondaryPort},
	}
}

// ApplyDefaults fills every unset field of cfg with its default value.
func ApplyDefaults(cfg *Config) {
	// Server defaults
	if len(cfg.Server.Endpoints) == 0 {
		cfg.Server.Endpoints = DefaultEndpoints()
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	// Logging defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}
	if cfg.Telemetry.Logging.Output == "" {
		cfg.Telemetry.Logging.Output = DefaultLogOutput
	}

	// Metrics defaults
	if cfg.Telemetry.Metrics.ListenAddress == "" {
		cfg.Telemetry.Metrics.ListenAddress = DefaultMetricsListenAddress
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}
