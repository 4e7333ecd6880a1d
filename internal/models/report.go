package models

import "encoding/json"

// BusyEntry is a venue that is busier right now than it usually is at this hour.
type BusyEntry struct {
	Name               string      `json:"name"`
	Rating             json.Number `json:"rating"`
	Reviews            int         `json:"reviews"`
	CurrentPopularity  int         `json:"current_popularity"`
	ExpectedPopularity int         `json:"expected_popularity"`
}

// PopularTimesEntry is a venue together with its weekly popularity profile.
type PopularTimesEntry struct {
	Name         string       `json:"name"`
	Rating       json.Number  `json:"rating"`
	Reviews      int          `json:"reviews"`
	PopularTimes PopularTimes `json:"popular_times"`
	TopDays      []DayProfile `json:"top_days"`
}
