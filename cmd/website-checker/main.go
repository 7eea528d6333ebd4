// Package main is the entry point for the website-checker CLI.
//
// The checker can be used either as a library (SDK) or as a standalone
// binary. This CLI provides the standalone binary approach.
//
// Usage:
//
//	website-checker check --file sites.txt      # Check URLs from a file
//	website-checker check https://example.com   # Check URLs from arguments
//	website-checker validate -c config.yaml     # Validate configuration
//	website-checker version                     # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "website-checker",
	Short: "A concurrent website reachability checker",
	Long: `website-checker probes a list of HTTP(S) endpoints concurrently,
reporting reachability and latency for each one.

URLs are dispatched across a bounded worker pool with per-request
timeouts and configurable retries. Each result is streamed to the
console as it completes, and the final report is written as JSON in
the original input order.

Quick start:
  1. Put one URL per line in a file (blank lines and # comments are skipped)
  2. Run: website-checker check --file sites.txt
  3. Inspect status.json

URLs can also be passed directly:
  website-checker check https://example.com https://api.example.com`,
	// No Run/RunE means this just shows help when called without subcommands
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this website-checker binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("website-checker %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	// Register subcommands with root
	rootCmd.AddCommand(versionCmd)
}
