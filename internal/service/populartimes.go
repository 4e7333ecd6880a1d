package service

import (
	"context"

	"github.com/UnknownOlympus/agora/internal/models"
	"github.com/UnknownOlympus/agora/internal/places"
	"github.com/UnknownOlympus/agora/internal/report"
)

const (
	maxPopularTimesPlaces = 250
	topDaysCount          = 3
)

// GeneratePopularTimesReport writes the popular-times profile of the first 250 ranked venues around code,
// each with its three busiest weekdays. It returns the report path.
func (rs *ReportService) GeneratePopularTimesReport(ctx context.Context, code string, radius int) (string, error) {
	found, err := rs.FindPlacesNearby(ctx, code, radius, places.PopularTimesKeywords)
	if err != nil {
		return "", err
	}
	ranked := rs.ranker.Rank(found)
	ranked = ranked[:min(maxPopularTimesPlaces, len(ranked))]

	rs.log.InfoContext(ctx, "Fetching popular times", "found", len(found), "processing", len(ranked))

	entries := make([]models.PopularTimesEntry, 0, len(ranked))
	for _, place := range ranked {
		details, errDetails := rs.details(ctx, place.PlaceID, places.FieldPopularTimes)
		if errDetails != nil {
			return "", errDetails
		}

		entries = append(entries, models.PopularTimesEntry{
			Name:         place.Name,
			Rating:       place.Rating,
			Reviews:      place.UserRatingsTotal,
			PopularTimes: details.PopularTimes,
			TopDays:      details.PopularTimes.TopDays(topDaysCount),
		})
	}

	return writeReport(ctx, rs, report.KindPopularTimes, code, entries, func(e models.PopularTimesEntry) string {
		return e.Name
	})
}
