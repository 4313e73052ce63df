// Package main is the entry point for the page composer. The serve command
// runs the JSON API; the other commands drive the same engine from a
// terminal.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"pagecomposer/internal/config"
)

// Version is set via ldflags at build time
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "composer",
	Short: "Compose landing pages from components and templates",
	Long: `Composer builds landing pages out of typed components, loads and
synthesizes templates, and writes pages as content blocks to the store.`,
	Example: `  # Run the API server
  composer serve

  # Synthesize a template from a prompt
  composer synthesize "Mother's Day sale, pink palette" --business-type florist

  # Write a built-in template onto a stored page
  composer apply black-friday 6f1c1c9e-0000-4000-8000-000000000000`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), Version)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(synthesizeCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(hashTokenCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the configuration and installs the structured logger:
// text in development, JSON everywhere else.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var handler slog.Handler
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))

	return cfg, nil
}
