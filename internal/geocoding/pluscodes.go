package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/UnknownOlympus/agora/internal/models"
	"golang.org/x/time/rate"
)

// PlusCodesBaseURL -- Plus Codes API base URL.
const PlusCodesBaseURL = "https://plus.codes/api"

// PlusCodesProvider resolves Plus Codes with the plus.codes lookup API.
type PlusCodesProvider struct {
	client  HTTPClient    // HTTP client for making requests
	baseURL string        // Base URL for the Plus Codes API
	apiKey  string        // API key, passed through even when empty
	log     *slog.Logger  // Logger for logging operations
	limiter *rate.Limiter // Rate limiter
}

// plusCodesResponse keeps only the fields needed for a lookup.
type plusCodesResponse struct {
	Geometry *struct {
		Location *struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

// NewPlusCodesProvider creates a new Plus Codes provider.
// A zero timeout leaves requests without a deadline, a zero rate limit disables throttling.
func NewPlusCodesProvider(baseURL, apiKey string, timeout time.Duration, rateLimit int, log *slog.Logger) *PlusCodesProvider {
	if baseURL == "" {
		baseURL = PlusCodesBaseURL
	}

	return &PlusCodesProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		apiKey:  apiKey,
		log:     log,
		limiter: newLimiter(rateLimit),
	}
}

// NewPlusCodesProviderWithClient allows injecting custom HTTP client.
func NewPlusCodesProviderWithClient(
	client HTTPClient,
	baseURL string,
	apiKey string,
	limiter *rate.Limiter,
	log *slog.Logger,
) *PlusCodesProvider {
	if baseURL == "" {
		baseURL = PlusCodesBaseURL
	}

	return &PlusCodesProvider{
		client:  client,
		baseURL: baseURL,
		apiKey:  apiKey,
		log:     log,
		limiter: limiter,
	}
}

// Geocode resolves a Plus Code into coordinates.
// A non-200 answer or a body without geometry.location yields ErrUnresolvable.
// Transport failures and undecodable bodies are returned as regular errors.
func (pp *PlusCodesProvider) Geocode(ctx context.Context, code string) (*models.Coordinates, error) {
	if err := pp.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	pp.log.DebugContext(ctx, "Geocoding using Plus Codes", "code", code)

	reqURL, err := url.Parse(pp.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("address", code)
	query.Set("key", pp.apiKey)
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := pp.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute geocoding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		pp.log.WarnContext(ctx, "Plus Codes API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("%w: plus codes API returned status %d", ErrUnresolvable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var result plusCodesResponse
	if err = json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode plus codes response: %w", err)
	}

	if result.Geometry == nil || result.Geometry.Location == nil {
		pp.log.DebugContext(ctx, "Plus Codes response has no location", "body", string(body))
		return nil, fmt.Errorf("%w: no geometry in response", ErrUnresolvable)
	}

	loc := result.Geometry.Location
	pp.log.InfoContext(ctx, "Plus Codes found result", "code", code, "lat", loc.Lat, "lon", loc.Lng)

	return &models.Coordinates{Latitude: loc.Lat, Longitude: loc.Lng}, nil
}

func newLimiter(rateLimit int) *rate.Limiter {
	if rateLimit <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}

	return rate.NewLimiter(rate.Limit(rateLimit), rateLimit)
}
