// Command probe posts a stream of simulated location updates to a running
// nearby server and reports round-trip latency.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
)

func main() {
	opts := options{}
	pflag.StringVar(&opts.URL, "url", "http://127.0.0.1:5000/nearest", "endpoint that accepts proximity queries")
	pflag.IntVar(&opts.Count, "count", 50, "number of location updates to send")
	pflag.Float64Var(&opts.Radius, "radius", 150, "query radius in meters")
	pflag.IntVar(&opts.Every, "every", 10, "print a progress line every N updates, 0 disables")
	pflag.DurationVar(&opts.Timeout, "timeout", 5*time.Second, "per-request timeout")
	pflag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := newProber(&http.Client{Timeout: opts.Timeout}, opts, logger)
	summary, err := p.Run(ctx)
	if err != nil {
		logger.Error("Probe aborted", "error", err)
		os.Exit(1)
	}

	fmt.Fprintln(os.Stdout, summary)
	if summary.Samples == 0 {
		os.Exit(1)
	}
}
