package models

import (
	"encoding/json"
)

// Place is a venue returned by the nearby search endpoint.
type Place struct {
	PlaceID          string      `json:"place_id"`
	Name             string      `json:"name"`
	Rating           json.Number `json:"rating"`             // Rating keeps the provider literal, e.g. "4.0".
	UserRatingsTotal int         `json:"user_ratings_total"` // Number of reviews.
	Geometry         Geometry    `json:"geometry"`

	Score          float64 `json:"-"` // Score is the normalized rating, filled in by the ranker.
	DistanceMeters float64 `json:"-"` // DistanceMeters from the search center.
}

// Geometry holds the venue location as returned by the provider.
type Geometry struct {
	Location Location `json:"location"`
}

// Location is a provider lat/lng pair.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RatingValue returns the rating as a float. A missing or malformed rating reads as 0.
func (p Place) RatingValue() float64 {
	value, err := p.Rating.Float64()
	if err != nil {
		return 0
	}

	return value
}

// Coordinates returns the venue location.
func (p Place) Coordinates() Coordinates {
	return Coordinates{Latitude: p.Geometry.Location.Lat, Longitude: p.Geometry.Location.Lng}
}

// PlaceDetails is the subset of the place details result used by the reports.
type PlaceDetails struct {
	CurrentPopularity *int         `json:"current_popularity"`
	PopularTimes      PopularTimes `json:"populartimes"`
}
