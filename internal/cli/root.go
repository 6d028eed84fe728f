// Package cli implements the hubdeck command-line interface.
//
// The root command starts the dashboard; subcommands manage the snapshot
// cache and print version information.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Global flags
var debugFlag bool

// rootCmd starts the dashboard when invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "hubdeck",
	Short: "GitHub account dashboard for your terminal",
	Long: `hubdeck is a terminal dashboard that shows a GitHub account overview
(profile, repositories, recent activity, API rate limit) side by side
with local system metrics, refreshed in the background.

Configuration is read from the environment:

  GITHUB_USER             GitHub username to monitor (required)
  GITHUB_TOKEN            Bearer token for higher rate limits (optional)
  HUBDECK_REFRESH_SECS    GitHub refresh interval in seconds (default 60)
  HUBDECK_REDUCED_MOTION  "true" or "1" disables animations

Examples:
  GITHUB_USER=octocat hubdeck
  hubdeck cache clear
  hubdeck version`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")
}

// Execute runs the CLI. Errors are printed once, here.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
