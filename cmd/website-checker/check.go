package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	statuschecker "github.com/ya3lm/Website-Status-Checker"
	"github.com/ya3lm/Website-Status-Checker/config"
)

// newLogger creates a JSON logger for CLI use.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// checkCmd runs one batch over the given URLs.
var checkCmd = &cobra.Command{
	Use:   "check [URL ...]",
	Short: "Check the given URLs and write a JSON report",
	Long: `Check the reachability and latency of a list of URLs.

URLs are gathered, in order, from:
  1. positional arguments
  2. a plain-text file given with --file (one URL per line; blank
     lines and lines starting with # are skipped)
  3. the targets list of a YAML config given with --config

Each result is printed to stdout as it completes. When the whole batch
has finished, the aggregated report is written as JSON to --output in
the original input order. Per-URL failures never abort the batch; they
are recorded in the report with an error classification instead of a
status code.

Example:
  website-checker check https://example.com
  website-checker check --file sites.txt --workers 16 --retries 2
  website-checker check --config check.yaml --output report.json`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringP("file", "f", "", "path to a file with one URL per line")
	checkCmd.Flags().StringP("config", "c", "", "path to a YAML config file")
	checkCmd.Flags().IntP("workers", "w", 0, "number of concurrent workers (default: available parallelism)")
	checkCmd.Flags().DurationP("timeout", "t", config.DefaultTimeout, "per-attempt request timeout")
	checkCmd.Flags().IntP("retries", "r", 0, "additional attempts after a failure")
	checkCmd.Flags().Duration("backoff", config.DefaultBackoff, "delay between attempts for the same URL")
	checkCmd.Flags().Float64("rate-limit", 0, "max probe attempts per second, 0 for unlimited")
	checkCmd.Flags().String("method", "GET", "HTTP method to probe with (GET or HEAD)")
	checkCmd.Flags().StringP("output", "o", "status.json", "report file path, or - for stdout")
	checkCmd.Flags().BoolP("verbose", "v", false, "enable debug logging")
}

func runCheck(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := newLogger(verbose)

	urls := append([]string{}, args...)

	if file, _ := cmd.Flags().GetString("file"); file != "" {
		fromFile, err := readTargetsFile(file)
		if err != nil {
			return fmt.Errorf("failed to read URL file: %w", err)
		}
		urls = append(urls, fromFile...)
	}

	var cfg *config.Config
	if configFile, _ := cmd.Flags().GetString("config"); configFile != "" {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		urls = append(urls, cfg.Targets...)
	}

	if len(urls) == 0 {
		return fmt.Errorf("no URLs to check (pass URLs as arguments, or use --file / --config)")
	}

	opts, err := buildCheckerOptions(cmd, cfg)
	if err != nil {
		return err
	}
	opts = append(opts,
		statuschecker.WithLogger(logger),
		statuschecker.WithProgress(func(r statuschecker.Result) {
			fmt.Println(formatResult(r))
		}),
	)

	c, err := statuschecker.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create checker: %w", err)
	}

	// cancel in-flight probes on SIGINT/SIGTERM; the batch still drains
	// and reports every URL
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := c.Run(ctx, urls)
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	output, _ := cmd.Flags().GetString("output")
	if err := writeReport(report, output); err != nil {
		return err
	}
	return nil
}

// buildCheckerOptions merges config-file settings with command-line flags.
// Flags explicitly set on the command line take precedence over the config.
func buildCheckerOptions(cmd *cobra.Command, cfg *config.Config) ([]statuschecker.Option, error) {
	var opts []statuschecker.Option
	if cfg != nil {
		opts = config.BuildOptions(cfg)
	}

	flags := cmd.Flags()
	useFlag := func(name string) bool {
		// without a config file the flag defaults stand in for the config
		return cfg == nil || flags.Changed(name)
	}

	if useFlag("workers") {
		if n, _ := flags.GetInt("workers"); n > 0 || flags.Changed("workers") {
			opts = append(opts, statuschecker.WithWorkers(n))
		}
	}
	if useFlag("timeout") {
		d, _ := flags.GetDuration("timeout")
		opts = append(opts, statuschecker.WithTimeout(d))
	}
	if useFlag("retries") {
		n, _ := flags.GetInt("retries")
		opts = append(opts, statuschecker.WithRetries(n))
	}
	if useFlag("backoff") {
		d, _ := flags.GetDuration("backoff")
		opts = append(opts, statuschecker.WithBackoff(d))
	}
	if useFlag("rate-limit") {
		if perSecond, _ := flags.GetFloat64("rate-limit"); perSecond > 0 {
			opts = append(opts, statuschecker.WithRateLimit(perSecond))
		}
	}
	if useFlag("method") {
		method, _ := flags.GetString("method")
		opts = append(opts, statuschecker.WithMethod(strings.ToUpper(method)))
	}

	return opts, nil
}

// readTargetsFile reads one URL per line, skipping blank lines and
// # comments.
func readTargetsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return urls, nil
}

// formatResult renders one result as a human-readable console line.
func formatResult(r statuschecker.Result) string {
	if code, ok := r.Status.Code(); ok {
		return fmt.Sprintf("%s - HTTP %d in %dms", r.URL, code, r.ResponseTime.Milliseconds())
	}
	failure, _ := r.Status.Failure()
	return fmt.Sprintf("%s - ERROR: %s in %dms", r.URL, failure, r.ResponseTime.Milliseconds())
}

// writeReport writes the JSON report to path, or stdout when path is "-".
func writeReport(report *statuschecker.Report, path string) error {
	if path == "-" {
		return report.WriteJSON(os.Stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	if err := report.WriteJSON(f); err != nil {
		return err
	}
	fmt.Printf("Results written to %s\n", path)
	return nil
}
