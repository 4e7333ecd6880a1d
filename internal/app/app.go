package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/agora/internal/config"
	"github.com/UnknownOlympus/agora/internal/geocoding"
	"github.com/UnknownOlympus/agora/internal/metrics"
	"github.com/UnknownOlympus/agora/internal/places"
	"github.com/UnknownOlympus/agora/internal/ranking"
	"github.com/UnknownOlympus/agora/internal/report"
	"github.com/UnknownOlympus/agora/internal/repository"
	"github.com/UnknownOlympus/agora/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/afero"
)

// Run wires the report service from cfg, builds one report of the given kind and returns its path.
// The metrics textfile is written even when the run fails.
func Run(ctx context.Context, cfg *config.Config, log *slog.Logger, kind report.Kind) (string, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	appMetrics := metrics.NewMetrics(reg)

	defer func() {
		if err := metrics.WriteTextfile(cfg.MetricsFile, reg); err != nil {
			log.ErrorContext(ctx, "Failed to write metrics", "error", err)
		}
	}()

	geoProvider, err := geocoding.NewProvider(geocoding.ProviderConfig{
		Type:      geocoding.ProviderType(cfg.ProviderType),
		APIKey:    cfg.APIKey,
		BaseURL:   cfg.GeocodeURL,
		Timeout:   cfg.HTTPTimeout,
		RateLimit: cfg.RateLimit,
		Logger:    log,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create geocoding provider: %w", err)
	}
	log.InfoContext(ctx, "Geocoding provider initialized", "type", cfg.ProviderType)

	placesClient := places.NewClient(cfg.PlacesURL, cfg.APIKey, cfg.HTTPTimeout, cfg.RateLimit, log)

	ranker := &ranking.Ranker{
		MinRating:  cfg.MinRating,
		MaxRating:  ranking.DefaultMaxRating,
		MinReviews: cfg.MinReviews,
	}

	writer := report.NewWriter(afero.NewOsFs(), cfg.ReportDir, time.Now)

	var archive repository.Interface
	if cfg.Database.Enabled() {
		repo, closeDB, errDB := openArchive(ctx, cfg.Database, log)
		if errDB != nil {
			return "", errDB
		}
		defer closeDB()
		archive = repo
	}

	svc := service.NewReportService(log, geoProvider, placesClient, ranker, writer, archive, appMetrics, time.Now)

	switch kind {
	case report.KindBusierThanUsual:
		return svc.CheckBusierThanUsual(ctx, cfg.PlusCode, cfg.Radius)
	case report.KindPopularTimes:
		return svc.GeneratePopularTimesReport(ctx, cfg.PlusCode, cfg.Radius)
	default:
		return "", fmt.Errorf("unsupported report kind: %s", kind)
	}
}

// openArchive connects to the archive database and makes sure its tables exist.
func openArchive(
	ctx context.Context,
	cfg config.PostgresConfig,
	log *slog.Logger,
) (*repository.Repository, func(), error) {
	pool, err := repository.NewDatabase(ctx, cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to archive database: %w", err)
	}

	repo := repository.NewRepository(pool, log)
	if err = repo.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to prepare archive schema: %w", err)
	}
	log.InfoContext(ctx, "Report archive enabled", "host", cfg.Host, "database", cfg.Name)

	return repo, pool.Close, nil
}
