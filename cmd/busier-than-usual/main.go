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

// main writes the busier-than-usual report of venues near the configured location code.
func main() {
	// Cancel in-flight provider requests on Ctrl+C.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()
	logger := app.SetupLogger(cfg.Env)

	logger.InfoContext(ctx, "Generating report", "kind", report.KindBusierThanUsual, "code", cfg.PlusCode, "radius", cfg.Radius)

	if _, err := app.Run(ctx, cfg, logger, report.KindBusierThanUsual); err != nil {
		logger.ErrorContext(ctx, "Report failed", "kind", report.KindBusierThanUsual, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
