package config

import (
	statuschecker "github.com/ya3lm/Website-Status-Checker"
)

// BuildOptions converts parsed configuration into SDK checker options.
//
// Zero-valued fields that mean "use the default" (workers, rate limit,
// method) produce no option, so the SDK's own defaults apply.
func BuildOptions(cfg *Config) []statuschecker.Option {
	opts := []statuschecker.Option{
		statuschecker.WithTimeout(cfg.Timeout.Duration()),
		statuschecker.WithRetries(cfg.Retries),
		statuschecker.WithBackoff(cfg.Backoff.Duration()),
	}

	if cfg.Workers > 0 {
		opts = append(opts, statuschecker.WithWorkers(cfg.Workers))
	}
	if cfg.RateLimit > 0 {
		opts = append(opts, statuschecker.WithRateLimit(cfg.RateLimit))
	}
	if cfg.Method != "" {
		opts = append(opts, statuschecker.WithMethod(cfg.Method))
	}

	return opts
}
