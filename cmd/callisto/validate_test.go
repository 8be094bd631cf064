package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mercator-hq/callisto/pkg/cli"
	"mercator-hq/callisto/pkg/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "callisto.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

// runValidate runs the validate command against path with the given format.
func runValidate(t *testing.T, path, format string) (string, error) {
	t.Helper()

	origFile := cfgFile
	t.Cleanup(func() {
		cfgFile = origFile
		validateFlags.format = "text"
		_ = rootCmd.PersistentFlags().Set("config", defaultConfigFile)
		rootCmd.PersistentFlags().Lookup("config").Changed = false
		validateCmd.SetOut(nil)
	})

	if err := rootCmd.PersistentFlags().Set("config", path); err != nil {
		t.Fatalf("failed to set --config: %v", err)
	}
	validateFlags.format = format

	var out bytes.Buffer
	validateCmd.SetOut(&out)
	err := validateConfig(validateCmd, nil)
	return out.String(), err
}

func TestValidateCommand_ValidFile(t *testing.T) {
	path := writeConfig(t, `
server:
  endpoints:
    - {address: 127.0.0.1, port: 9001}
  workers: 3
telemetry:
  stats:
    schedule: "@every 1m"
`)

	out, err := runValidate(t, path, "text")
	if err != nil {
		t.Fatalf("validate error = %v", err)
	}
	for _, want := range []string{
		"✓ Configuration valid (" + path + ")",
		"endpoints: 127.0.0.1:9001",
		"workers:   3",
		"stats:     @every 1m",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output %q", want, out)
		}
	}
}

func TestValidateCommand_InvalidFile(t *testing.T) {
	path := writeConfig(t, `
server:
  endpoints:
    - {address: 127.0.0.1, port: 70000}
`)

	_, err := runValidate(t, path, "text")
	var cfgErr *cli.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if cfgErr.Path != path {
		t.Errorf("Path = %q, want %q", cfgErr.Path, path)
	}

	var verr config.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("expected wrapped ValidationError, got %v", err)
	}
}

func TestValidateCommand_MissingExplicitFile(t *testing.T) {
	_, err := runValidate(t, filepath.Join(t.TempDir(), "absent.yaml"), "text")
	if err == nil {
		t.Error("expected error for a missing explicit config file")
	}
}

func TestSummarize_Defaults(t *testing.T) {
	s := summarize("", config.Default())

	if s.Source != "built-in defaults" {
		t.Errorf("Source = %q", s.Source)
	}
	want := []string{"127.0.0.1:8888", "127.0.0.1:7777"}
	if len(s.Endpoints) != len(want) {
		t.Fatalf("Endpoints = %v, want %v", s.Endpoints, want)
	}
	for i := range want {
		if s.Endpoints[i] != want[i] {
			t.Errorf("Endpoints[%d] = %q, want %q", i, s.Endpoints[i], want[i])
		}
	}
	if !strings.Contains(s.Text(), "workers:   one per CPU") {
		t.Errorf("unexpected text %q", s.Text())
	}
}
