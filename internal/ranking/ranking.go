package ranking

import (
	"slices"

	"github.com/UnknownOlympus/agora/internal/models"
)

// Default thresholds for venue ranking.
const (
	DefaultMinRating  = 3.5
	DefaultMaxRating  = 5.0
	DefaultMinReviews = 100
)

// Ranker filters venues by rating and review volume and orders them by normalized rating.
type Ranker struct {
	MinRating  float64 // Inclusive lower rating bound, also the bottom of the score range.
	MaxRating  float64 // Top of the score range.
	MinReviews int     // Inclusive lower bound on the number of reviews.
}

// NewRanker returns a Ranker with the default thresholds.
func NewRanker() *Ranker {
	return &Ranker{MinRating: DefaultMinRating, MaxRating: DefaultMaxRating, MinReviews: DefaultMinReviews}
}

// Normalize maps value from [minValue, maxValue] onto [0, 1]. An empty range yields 0.
func Normalize(value, minValue, maxValue float64) float64 {
	if maxValue > minValue {
		return (value - minValue) / (maxValue - minValue)
	}

	return 0
}

// Score returns the normalized rating of a place.
func (r *Ranker) Score(place models.Place) float64 {
	return Normalize(place.RatingValue(), r.MinRating, r.MaxRating)
}

// Qualifies reports whether a place passes the rating and review thresholds.
func (r *Ranker) Qualifies(place models.Place) bool {
	return place.RatingValue() >= r.MinRating && place.UserRatingsTotal >= r.MinReviews
}

// Rank returns the qualifying places with Score set, sorted by score descending.
// Places with equal scores keep their input order.
func (r *Ranker) Rank(places []models.Place) []models.Place {
	ranked := make([]models.Place, 0, len(places))
	for _, place := range places {
		if !r.Qualifies(place) {
			continue
		}
		place.Score = r.Score(place)
		ranked = append(ranked, place)
	}

	slices.SortStableFunc(ranked, func(a, b models.Place) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})

	return ranked
}
