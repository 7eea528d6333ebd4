package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	statuschecker "github.com/ya3lm/Website-Status-Checker"
)

func main() {
	// start mock server (see mock_server.go)
	go StartMockSiteServer(":9999")
	time.Sleep(100 * time.Millisecond)

	urls := []string{
		"http://localhost:9999/ok",
		"http://localhost:9999/notfound",
		"http://localhost:9999/error",
		"http://localhost:9999/slow",
		"http://localhost:9999/flaky",
		"http://localhost:1", // nothing listens here
	}

	c, err := statuschecker.New(
		statuschecker.WithWorkers(4),
		statuschecker.WithTimeout(time.Second),
		statuschecker.WithRetries(2),
		statuschecker.WithBackoff(200*time.Millisecond),
		statuschecker.WithProgress(func(r statuschecker.Result) {
			fmt.Printf("  %s -> %s in %dms (%d attempt(s))\n",
				r.URL, r.Status, r.ResponseTime.Milliseconds(), r.Attempts)
		}),
	)
	if err != nil {
		slog.Error("failed to create checker", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("checking %d URLs...\n", len(urls))
	report, err := c.Run(ctx, urls)
	if err != nil {
		slog.Error("batch failed", "error", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("final report (input order):")
	if err := report.WriteJSON(os.Stdout); err != nil {
		slog.Error("failed to write report", "error", err)
		os.Exit(1)
	}
}
