package geocoding

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/UnknownOlympus/agora/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleAPIClient is the part of maps.Client used for geocoding.
type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// GoogleProvider resolves Plus Codes through the Google Maps Geocoding API, which accepts
// both global and compound codes as addresses.
type GoogleProvider struct {
	client GoogleAPIClient
	log    *slog.Logger
}

// ErrEmptyResponse is returned when the Google Maps API responds with an empty result.
var ErrEmptyResponse = fmt.Errorf("%w: get empty response from Google Maps API", ErrUnresolvable)

func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// Geocode resolves a location code with the Google Maps Geocoding API.
// The result whose plus code matches the requested one wins, otherwise the first result is used.
// An empty result set is reported as ErrEmptyResponse and a rejected request (bad key, invalid code)
// as ErrUnresolvable. Only transport failures are returned as regular errors.
func (gp *GoogleProvider) Geocode(ctx context.Context, code string) (*models.Coordinates, error) {
	gp.log.DebugContext(ctx, "Geocoding using Google Maps", "code", code)

	results, err := gp.client.Geocode(ctx, &maps.GeocodingRequest{Address: code})
	if isStatusError(err) {
		gp.log.WarnContext(ctx, "Google Maps rejected the request", "code", code, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUnresolvable, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to geocode location code: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrEmptyResponse
	}

	best := results[0]
	for _, result := range results {
		if matchesPlusCode(result.PlusCode, code) {
			best = result
			break
		}
	}
	if best.PartialMatch {
		gp.log.WarnContext(ctx, "Google Maps returned a partial match", "code", code, "address", best.FormattedAddress)
	}

	loc := best.Geometry.Location
	gp.log.InfoContext(ctx, "Google Maps found result", "code", code, "lat", loc.Lat, "lon", loc.Lng)

	return &models.Coordinates{Longitude: loc.Lng, Latitude: loc.Lat}, nil
}

// isStatusError reports whether err is a non-OK API status such as REQUEST_DENIED or INVALID_REQUEST.
// The maps client formats those as "maps: <STATUS> - <message>", transport errors never carry the prefix.
func isStatusError(err error) bool {
	return err != nil && strings.HasPrefix(err.Error(), "maps: ")
}

// matchesPlusCode compares code with the global code and with the code part of the compound code
// ("6Q V943+6Q Warsaw" style answers keep the short code first).
func matchesPlusCode(pc maps.AddressPlusCode, code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return false
	}
	if strings.EqualFold(pc.GlobalCode, code) {
		return true
	}
	short, _, _ := strings.Cut(pc.CompoundCode, " ")

	return short != "" && strings.EqualFold(short, code)
}
