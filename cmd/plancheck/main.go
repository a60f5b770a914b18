// Package main provides the plancheck binary: an HTTP service, a one-shot
// plan evaluator, and an artifact exporter for floor-plan compliance checks.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "plancheck",
		Short: "Residential floor-plan compliance toolkit",
		Long: `Plancheck evaluates residential floor plans against seven ordered
regulatory layers: licensing exemption, engineering exemption, foundation,
room minimums, energy code, local zoning, and survey & setbacks.

It serves a plan-editing HTTP API, evaluates plan documents from the command
line, and exports JSON, SVG, and CSV artifacts.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(serveCmd(&logLevel))
	cmd.AddCommand(evaluateCmd())
	cmd.AddCommand(exportCmd())
	return cmd
}

func newLogger(level string) *slog.Logger {
	parsed := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		parsed = slog.LevelDebug
	case "warn":
		parsed = slog.LevelWarn
	case "error":
		parsed = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parsed}))
}
