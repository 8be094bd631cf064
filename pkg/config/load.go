package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at path, applies defaults
// and validates the result. An empty path yields the defaults.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration like LoadConfig and then
// applies CALLISTO_SECTION_FIELD environment variables, which take
// precedence over the file.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides. Values that do
// not parse are ignored.
func applyEnvOverrides(cfg *Config) {
	// Server overrides
	if val := os.Getenv("CALLISTO_SERVER_ENDPOINTS"); val != "" {
		if eps, err := ParseEndpoints(val); err == nil {
			cfg.Server.Endpoints = eps
		}
	}
	if val := os.Getenv("CALLISTO_SERVER_WORKERS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Server.Workers = i
		}
	}
	if val := os.Getenv("CALLISTO_SERVER_SHUTDOWN_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ShutdownTimeout = d
		}
	}

	// Pages overrides
	if val := os.Getenv("CALLISTO_PAGES_DIR"); val != "" {
		cfg.Pages.Dir = val
	}
	if val := os.Getenv("CALLISTO_PAGES_WATCH"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Pages.Watch = b
		}
	}

	// Telemetry overrides
	if val := os.Getenv("CALLISTO_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("CALLISTO_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("CALLISTO_TELEMETRY_LOGGING_OUTPUT"); val != "" {
		cfg.Telemetry.Logging.Output = val
	}
	if val := os.Getenv("CALLISTO_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("CALLISTO_TELEMETRY_METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Telemetry.Metrics.ListenAddress = val
	}
	if val := os.Getenv("CALLISTO_TELEMETRY_STATS_SCHEDULE"); val != "" {
		cfg.Telemetry.Stats.Schedule = val
	}
}

// ParseEndpoints parses a comma separated "host:port" list.
func ParseEndpoints(s string) ([]EndpointConfig, error) {
	var eps []EndpointConfig
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		ep, err := ParseEndpoint(part)
		if err != nil {
			return nil, err
		}
		eps = append(eps, ep)
	}
	if len(eps) == 0 {
		return nil, fmt.Errorf("no endpoints in %q", s)
	}
	return eps, nil
}

// ParseEndpoint parses a single "host:port".
func ParseEndpoint(s string) (EndpointConfig, error) {
	host, port, err := net.SplitHostPort(s)
	if err != nil {
		return EndpointConfig{}, fmt.Errorf("invalid endpoint %q: %w", s, err)
	}
	p, err := strconv.Atoi(port)
	if err != nil {
		return EndpointConfig{}, fmt.Errorf("invalid port in endpoint %q: %w", s, err)
	}
	return EndpointConfig{Address: host, Port: p}, nil
}
