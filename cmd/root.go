package cmd

import (
	"fmt"
	"os"

	"feedme/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "feedme",
	Short: "Reading-list ingestion service",
	Long: `feedme pulls the unread reading list page by page, parses the Atom feed
and reconciles the entries into a local store.

It runs as a scheduled service with an HTTP API (start) or as one-off
commands (sync, entries).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding with the debug config for readable CLI output.
		l, logErr := logger.New(&logger.Config{Level: "debug", Format: "console"})
		if logErr != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		l.Error("command failed", zap.Error(err))
		_ = l.Sync()
		os.Exit(1)
	}
}
