package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
)

const defaultConfigFile = "callisto.yaml"

var (
	// Global flags
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "callisto",
	Short: "Callisto - concurrent HTTP/1.x page server",
	Long: `Callisto serves generated HTML pages and embedded images over raw TCP.

Every configured endpoint gets its own listener; every accepted connection
gets its own task. Tasks share a fixed pool of worker threads and log through
one ordered queue written by a single drain.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", defaultConfigFile, "config file path")
}

// configPath returns the file to load. A missing default file means the
// built-in defaults apply; an explicitly named file must exist.
func configPath(cmd *cobra.Command) string {
	if cmd.Root().PersistentFlags().Changed("config") {
		return cfgFile
	}
	if _, err := os.Stat(cfgFile); errors.Is(err, fs.ErrNotExist) {
		return ""
	}
	return cfgFile
}
