package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ya3lm/Website-Status-Checker/config"
)

// validateCmd validates a config file without running a batch.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a website-checker configuration file without probing anything.

This command parses the YAML, expands environment variables, and validates
all fields. It's useful for CI/CD pipelines or pre-deployment checks.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  website-checker validate -c check.yaml
  website-checker validate --config /etc/website-checker/check.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	workers := "available parallelism"
	if cfg.Workers > 0 {
		workers = fmt.Sprintf("%d", cfg.Workers)
	}

	fmt.Printf("Config is valid!\n")
	fmt.Printf("  Workers: %s\n", workers)
	fmt.Printf("  Timeout: %s\n", cfg.Timeout.Duration())
	fmt.Printf("  Retries: %d\n", cfg.Retries)
	fmt.Printf("  Backoff: %s\n", cfg.Backoff.Duration())
	fmt.Printf("  Targets: %d\n", len(cfg.Targets))

	return nil
}
