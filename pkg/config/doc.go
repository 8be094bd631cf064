// Package config provides configuration management for Callisto.
//
// Configuration is read from a YAML file, completed with defaults,
// overridden from the environment and validated:
//
//	cfg, err := config.LoadConfigWithEnvOverrides("callisto.yaml")
//
// An empty path skips the file and starts from the defaults.
//
// # Environment Variable Overrides
//
// Variables follow the convention CALLISTO_SECTION_FIELD:
//
//   - CALLISTO_SERVER_ENDPOINTS overrides server.endpoints ("host:port,host:port")
//   - CALLISTO_SERVER_WORKERS overrides server.workers
//   - CALLISTO_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// Values that fail to parse are ignored.
//
// # Validation
//
// Validate collects every failed rule into a ValidationError whose entries
// name the offending field by its dotted YAML path.
//
// # Singleton
//
// Initialize stores the loaded configuration for process-wide access through
// GetConfig. Tests should pass explicit *Config values instead.
package config
