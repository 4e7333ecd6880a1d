package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/UnknownOlympus/agora/internal/geocoding"
	"github.com/UnknownOlympus/agora/internal/metrics"
	"github.com/UnknownOlympus/agora/internal/models"
	"github.com/UnknownOlympus/agora/internal/ranking"
	"github.com/UnknownOlympus/agora/internal/report"
	"github.com/UnknownOlympus/agora/internal/repository"
)

// PlacesAPI is the nearby search and place details backend.
type PlacesAPI interface {
	NearbySearch(ctx context.Context, center models.Coordinates, radius int, keywords []string) ([]models.Place, error)
	Details(ctx context.Context, placeID string, fields ...string) (*models.PlaceDetails, error)
}

// ReportWriter stores an encoded report and returns its path.
type ReportWriter interface {
	Write(kind report.Kind, entries any) (string, error)
}

// ReportService builds venue reports: it resolves the location code, searches for venues,
// ranks them and fetches their popularity details one by one.
type ReportService struct {
	log      *slog.Logger         // Logger for logging service activities
	geocoder geocoding.Provider   // Resolves location codes to coordinates
	places   PlacesAPI            // Nearby search and place details
	ranker   *ranking.Ranker      // Filters and orders venues
	writer   ReportWriter         // Stores the finished report
	archive  repository.Interface // Optional report archive, nil disables it
	metrics  *metrics.Metrics     // Metrics for tracking provider usage
	now      func() time.Time     // Clock for weekday/hour lookups
	out      io.Writer            // Console for user-facing messages
}

// NewReportService creates a new instance of ReportService.
// A nil archive disables archiving, a nil clock falls back to time.Now.
func NewReportService(
	log *slog.Logger,
	geocoder geocoding.Provider,
	places PlacesAPI,
	ranker *ranking.Ranker,
	writer ReportWriter,
	archive repository.Interface,
	metrics *metrics.Metrics,
	now func() time.Time,
) *ReportService {
	if now == nil {
		now = time.Now
	}

	return &ReportService{
		log:      log,
		geocoder: geocoder,
		places:   places,
		ranker:   ranker,
		writer:   writer,
		archive:  archive,
		metrics:  metrics,
		now:      now,
		out:      os.Stdout,
	}
}

// SetOutput replaces the console user-facing messages are printed to.
func (rs *ReportService) SetOutput(out io.Writer) {
	rs.out = out
}

// FindPlacesNearby resolves the location code and searches for venues matching keywords within radius meters.
// An unresolvable code yields an empty result without searching.
func (rs *ReportService) FindPlacesNearby(
	ctx context.Context,
	code string,
	radius int,
	keywords []string,
) ([]models.Place, error) {
	start := time.Now()
	coords, err := rs.geocoder.Geocode(ctx, code)
	rs.observe("geocode", start, err)

	if errors.Is(err, geocoding.ErrUnresolvable) {
		rs.log.WarnContext(ctx, "Location code is unresolvable", "code", code, "error", err)
		fmt.Fprintln(rs.out, "Error: Invalid Plus Code")
		return []models.Place{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to geocode location code: %w", err)
	}

	start = time.Now()
	found, err := rs.places.NearbySearch(ctx, *coords, radius, keywords)
	rs.observe("nearbysearch", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to search nearby places: %w", err)
	}

	for _, place := range found {
		rs.log.DebugContext(ctx, "Found place", "place", place.PlaceID, "name", place.Name,
			"distance_m", int(place.DistanceMeters))
	}

	return found, nil
}

// details fetches place details and records the request.
func (rs *ReportService) details(ctx context.Context, placeID string, fields ...string) (*models.PlaceDetails, error) {
	start := time.Now()
	details, err := rs.places.Details(ctx, placeID, fields...)
	rs.observe("details", start, err)
	rs.metrics.PlacesChecked.Inc()

	if err != nil {
		return nil, fmt.Errorf("failed to fetch details of place %s: %w", placeID, err)
	}

	return details, nil
}

func (rs *ReportService) observe(endpoint string, start time.Time, err error) {
	rs.metrics.RequestSeconds.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	status := "success"
	if err != nil && !errors.Is(err, geocoding.ErrUnresolvable) {
		status = "failure"
	}
	rs.metrics.ProviderRequests.WithLabelValues(endpoint, status).Inc()
}

// writeReport stores the entries, updates the metrics and archives the report when an archive is configured.
func writeReport[T any](
	ctx context.Context,
	rs *ReportService,
	kind report.Kind,
	code string,
	entries []T,
	name func(T) string,
) (string, error) {
	path, err := rs.writer.Write(kind, entries)
	if err != nil {
		return "", fmt.Errorf("failed to write %s report: %w", kind, err)
	}

	rs.metrics.ReportEntries.WithLabelValues(string(kind)).Add(float64(len(entries)))
	rs.metrics.LastRunTimestamp.WithLabelValues(string(kind)).SetToCurrentTime()
	rs.log.InfoContext(ctx, "Report written", "kind", kind, "path", path, "entries", len(entries))

	if rs.archive == nil {
		return path, nil
	}

	run := models.ReportRun{
		Kind:      string(kind),
		PlusCode:  code,
		FileName:  path,
		CreatedAt: rs.now(),
		Entries:   make([]models.ArchivedEntry, 0, len(entries)),
	}
	for _, entry := range entries {
		payload, errMarshal := json.Marshal(entry)
		if errMarshal != nil {
			rs.log.ErrorContext(ctx, "Failed to encode report entry for archive", "error", errMarshal)
			return path, nil
		}
		run.Entries = append(run.Entries, models.ArchivedEntry{Name: name(entry), Payload: payload})
	}

	if err = rs.archive.SaveReport(ctx, run); err != nil {
		rs.log.ErrorContext(ctx, "Failed to archive report", "kind", kind, "error", err)
	}

	return path, nil
}
