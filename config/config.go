// Package config provides YAML configuration parsing for the website
// status checker.
//
// This package enables running batches from a configuration file, as an
// alternative to passing URLs and flags on the command line.
//
// Example configuration:
//
//	workers: 8
//	timeout: 5s
//	retries: 2
//	backoff: 100ms
//
//	targets:
//	  - https://example.com
//	  - https://api.example.com/health
//	  - ${STAGING_URL:-https://staging.example.com}/health
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied by [Parse] when the file omits a field.
const (
	DefaultTimeout = 5 * time.Second
	DefaultBackoff = 100 * time.Millisecond
)

// Config is the root configuration structure for a batch run.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// Workers is the number of concurrent workers. Zero means use the
	// host's available parallelism.
	Workers int `yaml:"workers"`

	// Timeout is the hard deadline for each probe attempt.
	// Accepts duration strings like "5s", "500ms". Defaults to 5s.
	Timeout Duration `yaml:"timeout"`

	// Retries is the number of additional attempts after a failed probe.
	// Defaults to 0.
	Retries int `yaml:"retries"`

	// Backoff is the fixed delay between attempts for one target.
	// Defaults to 100ms.
	Backoff Duration `yaml:"backoff"`

	// RateLimit caps probe attempts per second across all workers.
	// Zero means no limit.
	RateLimit float64 `yaml:"rate_limit"`

	// Method is the HTTP method used for probes (GET or HEAD).
	// Defaults to GET.
	Method string `yaml:"method"`

	// Targets is the ordered list of URLs to check. Order is preserved
	// in the final report. Values support environment variable
	// substitution: ${VAR} or ${VAR:-default}.
	Targets []string `yaml:"targets"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		// already have an error, skip processing
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
//
// Environment variables in target URLs are expanded before validation.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Defaults are applied for Timeout (5s) and Backoff (100ms); a zero worker
// count is left as-is and means "use available parallelism".
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = Duration(DefaultTimeout)
	}
	if cfg.Backoff == 0 {
		cfg.Backoff = Duration(DefaultBackoff)
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// expandAndValidate expands environment variables and validates the config.
func (c *Config) expandAndValidate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers cannot be negative, got %d", c.Workers)
	}
	if c.Timeout.Duration() <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout.Duration())
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries cannot be negative, got %d", c.Retries)
	}
	if c.Backoff.Duration() < 0 {
		return fmt.Errorf("backoff cannot be negative, got %s", c.Backoff.Duration())
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate_limit cannot be negative, got %v", c.RateLimit)
	}
	if c.Method != "" && c.Method != "GET" && c.Method != "HEAD" {
		return fmt.Errorf("method must be GET or HEAD, got %q", c.Method)
	}

	for i, target := range c.Targets {
		if target == "" {
			return fmt.Errorf("targets[%d]: url is required", i)
		}

		expanded, err := expandEnvVars(target)
		if err != nil {
			return fmt.Errorf("targets[%d]: %w", i, err)
		}
		c.Targets[i] = expanded

		parsedURL, err := url.Parse(expanded)
		if err != nil {
			return fmt.Errorf("targets[%d]: invalid url: %w", i, err)
		}
		if parsedURL.Scheme == "" {
			return fmt.Errorf("targets[%d] (%s): url must have a scheme (http:// or https://)", i, expanded)
		}
		if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			return fmt.Errorf("targets[%d] (%s): url scheme must be http or https, got %q", i, expanded, parsedURL.Scheme)
		}
	}

	if len(c.Targets) == 0 {
		return errors.New("at least one target must be defined")
	}

	return nil
}
