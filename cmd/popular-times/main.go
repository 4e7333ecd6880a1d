package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/UnknownOlympus/agora/internal/app"
	"github.com/UnknownOlympus/agora/internal/config"
	"github.com/UnknownOlympus/agora/internal/report"
)

// main writes the popular-times report of venues near the configured location code.
func main() {
	// Cancel in-flight provider requests on Ctrl+C.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()
	logger := app.SetupLogger(cfg.Env)

	logger.InfoContext(ctx, "Generating report", "kind", report.KindPopularTimes, "code", cfg.PlusCode, "radius", cfg.Radius)

	if _, err := app.Run(ctx, cfg, logger, report.KindPopularTimes); err != nil {
		logger.ErrorContext(ctx, "Report failed", "kind", report.KindPopularTimes, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
