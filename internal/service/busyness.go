package service

import (
	"context"

	"github.com/UnknownOlympus/agora/internal/models"
	"github.com/UnknownOlympus/agora/internal/places"
	"github.com/UnknownOlympus/agora/internal/report"
)

// Scan limits of the busier-than-usual report.
const (
	busyBatchSize    = 25
	maxBusyPlaces    = 20
	maxPlacesToCheck = 200
)

// CheckBusierThanUsual writes a report of the ranked venues around code that are busier now than usual.
// Ranked venues are checked in batches of 25 until 20 busy venues are found, 200 venues have been
// checked or the ranking is exhausted. It returns the report path.
func (rs *ReportService) CheckBusierThanUsual(ctx context.Context, code string, radius int) (string, error) {
	found, err := rs.FindPlacesNearby(ctx, code, radius, places.NightlifeKeywords)
	if err != nil {
		return "", err
	}
	ranked := rs.ranker.Rank(found)

	rs.log.InfoContext(ctx, "Checking ranked places for busyness", "found", len(found), "ranked", len(ranked))

	busy := make([]models.BusyEntry, 0, maxBusyPlaces)
	checked := 0

scan:
	for checked < maxPlacesToCheck && checked < len(ranked) {
		batch := ranked[checked:min(checked+busyBatchSize, len(ranked))]
		rs.log.DebugContext(ctx, "Processing batch", "offset", checked, "size", len(batch))

		for _, place := range batch {
			checked++

			entry, ok, errCheck := rs.checkBusyness(ctx, place)
			if errCheck != nil {
				return "", errCheck
			}
			if ok {
				busy = append(busy, entry)
			}
			if len(busy) >= maxBusyPlaces {
				break scan
			}
		}
	}

	rs.log.InfoContext(ctx, "Busyness scan finished", "checked", checked, "busy", len(busy))

	return writeReport(ctx, rs, report.KindBusierThanUsual, code, busy, func(e models.BusyEntry) string {
		return e.Name
	})
}

// checkBusyness reports whether the place is currently busier than its historical value for this weekday and hour.
func (rs *ReportService) checkBusyness(ctx context.Context, place models.Place) (models.BusyEntry, bool, error) {
	details, err := rs.details(ctx, place.PlaceID, places.FieldPopularTimes, places.FieldCurrentPopularity)
	if err != nil {
		return models.BusyEntry{}, false, err
	}

	if details.CurrentPopularity == nil || len(details.PopularTimes) == 0 {
		return models.BusyEntry{}, false, nil
	}

	now := rs.now()
	current := *details.CurrentPopularity
	expected := details.PopularTimes.Hour(models.WeekdayIndex(now.Weekday()), now.Hour())
	if current <= expected {
		return models.BusyEntry{}, false, nil
	}

	rs.log.DebugContext(ctx, "Place is busier than usual",
		"place", place.PlaceID, "current", current, "expected", expected)

	return models.BusyEntry{
		Name:               place.Name,
		Rating:             place.Rating,
		Reviews:            place.UserRatingsTotal,
		CurrentPopularity:  current,
		ExpectedPopularity: expected,
	}, true, nil
}
