package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"mercator-hq/callisto/pkg/cli"
	"mercator-hq/callisto/pkg/config"
)

var validateFlags struct {
	format string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Load a configuration file, apply defaults and CALLISTO_* environment
overrides, and check the result.

Examples:
  # Validate the default file (or the built-in defaults if it is absent)
  callisto validate

  # Validate a specific file and print the result as JSON
  callisto validate --config /etc/callisto/callisto.yaml --format json`,
	RunE: validateConfig,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateFlags.format, "format", "text", "output format: text, json")
}

// validationSummary is what validate prints for a good configuration.
type validationSummary struct {
	Source    string   `json:"source"`
	Endpoints []string `json:"endpoints"`
	Workers   int      `json:"workers"`
	Metrics   bool     `json:"metrics"`
	PagesDir  string   `json:"pages_dir,omitempty"`
	Stats     string   `json:"stats_schedule,omitempty"`
}

func (s validationSummary) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "✓ Configuration valid (%s)\n", s.Source)
	fmt.Fprintf(&b, "  endpoints: %s\n", strings.Join(s.Endpoints, ", "))
	if s.Workers == 0 {
		b.WriteString("  workers:   one per CPU\n")
	} else {
		fmt.Fprintf(&b, "  workers:   %d\n", s.Workers)
	}
	fmt.Fprintf(&b, "  metrics:   %t\n", s.Metrics)
	if s.PagesDir != "" {
		fmt.Fprintf(&b, "  pages:     %s\n", s.PagesDir)
	}
	if s.Stats != "" {
		fmt.Fprintf(&b, "  stats:     %s\n", s.Stats)
	}
	return b.String()
}

func validateConfig(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(validateFlags.format)
	if err != nil {
		return err
	}

	path := configPath(cmd)
	cfg, err := config.LoadConfigWithEnvOverrides(path)
	if err != nil {
		return cli.NewConfigError(path, err)
	}

	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), summarize(path, cfg))
}

func summarize(path string, cfg *config.Config) validationSummary {
	source := path
	if source == "" {
		source = "built-in defaults"
	}

	eps := make([]string, 0, len(cfg.Server.Endpoints))
	for _, ep := range endpoints(cfg) {
		eps = append(eps, ep.String())
	}

	return validationSummary{
		Source:    source,
		Endpoints: eps,
		Workers:   cfg.Server.Workers,
		Metrics:   cfg.Telemetry.Metrics.Enabled,
		PagesDir:  cfg.Pages.Dir,
		Stats:     cfg.Telemetry.Stats.Schedule,
	}
}
