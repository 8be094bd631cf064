package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "server.workers").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate checks the whole configuration and returns a ValidationError
// holding every failed rule, or nil.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateServer(&cfg.Server)...)
	errs = append(errs, validatePages(&cfg.Pages)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

// validateServer validates listener configuration.
func validateServer(cfg *ServerConfig) []FieldError {
	var errs []FieldError

	if len(cfg.Endpoints) == 0 {
		errs = append(errs, FieldError{
			Field:   "server.endpoints",
			Message: "at least one endpoint must be configured",
		})
	}

	seen := make(map[string]bool, len(cfg.Endpoints))
	for i, ep := range cfg.Endpoints {
		field := fmt.Sprintf("server.endpoints[%d]", i)
		if ep.Address == "" {
			errs = append(errs, FieldError{Field: field + ".address", Message: "address is required"})
		}
		if ep.Port < 0 || ep.Port > 65535 {
			errs = append(errs, FieldError{
				Field:   field + ".port",
				Message: fmt.Sprintf("port %d out of range 0-65535", ep.Port),
			})
		}

		key := net.JoinHostPort(ep.Address, strconv.Itoa(ep.Port))
		if ep.Port != 0 && seen[key] {
			errs = append(errs, FieldError{Field: field, Message: fmt.Sprintf("duplicate endpoint %s", key)})
		}
		seen[key] = true
	}

	if cfg.Workers < 0 {
		errs = append(errs, FieldError{
			Field:   "server.workers",
			Message: "workers must be non-negative",
		})
	}
	if cfg.ShutdownTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "server.shutdown_timeout",
			Message: "shutdown timeout must be non-negative",
		})
	}

	return errs
}

// validatePages validates page override configuration.
func validatePages(cfg *PagesConfig) []FieldError {
	if cfg.Watch && cfg.Dir == "" {
		return []FieldError{{
			Field:   "pages.watch",
			Message: "watch requires pages.dir",
		}}
	}
	return nil
}

// validateTelemetry validates logging, metrics and stats configuration.
func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	switch strings.ToLower(cfg.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("invalid log level %q (must be debug, info, warn, or error)", cfg.Logging.Level),
		})
	}

	switch strings.ToLower(cfg.Logging.Format) {
	case "text", "json":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("invalid log format %q (must be text or json)", cfg.Logging.Format),
		})
	}

	if cfg.Logging.Output == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.output",
			Message: "output is required",
		})
	}

	if cfg.Metrics.Enabled {
		if _, _, err := net.SplitHostPort(cfg.Metrics.ListenAddress); err != nil {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.listen_address",
				Message: fmt.Sprintf("invalid listen address %q: %v", cfg.Metrics.ListenAddress, err),
			})
		}
		if !strings.HasPrefix(cfg.Metrics.Path, "/") {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.path",
				Message: "metrics path must start with /",
			})
		}
	}

	if cfg.Stats.Schedule != "" {
		if _, err := cron.ParseStandard(cfg.Stats.Schedule); err != nil {
			errs = append(errs, FieldError{
				Field:   "telemetry.stats.schedule",
				Message: fmt.Sprintf("invalid cron schedule %q: %v", cfg.Stats.Schedule, err),
			})
		}
	}

	return errs
}
