package places

// NightlifeKeywords is the venue keyword set of the busier-than-usual report.
var NightlifeKeywords = []string{
	"bar", "club", "pub", "cabaret", "nightlife", "lounge", "karaoke", "brewery", "speakeasy",
	"music", "food", "arcade", "park", "street_fair", "beer", "dance", "party",
}

// PopularTimesKeywords is the venue keyword set of the popular-times report.
// It adds restaurants and strip clubs and drops dance and party venues.
var PopularTimesKeywords = []string{
	"bar", "club", "restaurant", "pub", "cabaret", "nightlife", "lounge", "karaoke", "brewery", "speakeasy",
	"strip_club", "music", "food", "arcade", "park", "street_fair", "beer",
}

// Place details fields.
const (
	FieldPopularTimes      = "populartimes"
	FieldCurrentPopularity = "current_popularity"
)

// DefaultRadius is the nearby search radius in meters.
const DefaultRadius = 6999
