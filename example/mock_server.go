package main

import (
	"log/slog"
	"math/rand"
	"net/http"
	"sync"
	"time"
)

// StartMockSiteServer runs a mock site with a few routes of differing
// behavior, for demoing the checker without touching real hosts:
//
//	/ok       - 200 with 50-150ms latency
//	/notfound - 404
//	/error    - 503
//	/slow     - 200 after 3 seconds (trips short timeouts)
//	/flaky    - 503 twice out of every three requests (exercises retries)
//
// Call this in a goroutine before running the batch.
func StartMockSiteServer(addr string) {
	mux := http.NewServeMux()

	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Duration(50+rand.Intn(100)) * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("/notfound", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	mux.HandleFunc("/error", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(3 * time.Second)
		w.WriteHeader(http.StatusOK)
	})

	var (
		mu    sync.Mutex
		flaky int
	)
	mux.HandleFunc("/flaky", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		flaky++
		hit := flaky
		mu.Unlock()
		if hit%3 != 0 {
			// hang past the probe deadline to simulate a transient stall
			time.Sleep(3 * time.Second)
		}
		w.WriteHeader(http.StatusOK)
		slog.Info("flaky endpoint hit", "count", hit)
	})

	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("mock server error", "error", err)
	}
}
