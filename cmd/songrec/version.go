package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/songrec/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of songrec",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "songrec %s (commit %s, built %s)\n",
			version.Version, version.Commit, version.Date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
