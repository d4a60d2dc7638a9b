// Package main is the entry point for the songrec service and CLI.
package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd runs the HTTP server when no subcommand is given.
var rootCmd = &cobra.Command{
	Use:   "songrec",
	Short: "Song recommendation lookup service",
	Long: `songrec loads a tabular song dataset into memory and answers
artist/genre recommendation queries over HTTP.

Configuration is read from config/<ENV>.yaml (ENV defaults to "local").`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
