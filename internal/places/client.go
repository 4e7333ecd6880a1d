package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/UnknownOlympus/agora/internal/models"
	"github.com/paulmach/orb/geo"
	"golang.org/x/time/rate"
)

// BaseURL -- Google Places web service base URL.
const BaseURL = "https://maps.googleapis.com/maps/api/place"

// HTTPClient defines the interface for making HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the nearby search and place details endpoints.
type Client struct {
	client  HTTPClient    // HTTP client for making requests
	baseURL string        // Base URL of the Places API
	apiKey  string        // API key, passed through even when empty
	log     *slog.Logger  // Logger for logging operations
	limiter *rate.Limiter // Rate limiter
}

type nearbySearchResponse struct {
	Results []models.Place `json:"results"`
	Status  string         `json:"status"`
}

type detailsResponse struct {
	Result *models.PlaceDetails `json:"result"`
	Status string               `json:"status"`
}

// NewClient creates a Places client. A zero timeout leaves requests without a deadline,
// a zero rate limit disables throttling.
func NewClient(baseURL, apiKey string, timeout time.Duration, rateLimit int, log *slog.Logger) *Client {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if rateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(rateLimit), rateLimit)
	}

	return NewClientWithHTTP(&http.Client{Timeout: timeout}, baseURL, apiKey, limiter, log)
}

// NewClientWithHTTP allows injecting custom HTTP client.
func NewClientWithHTTP(client HTTPClient, baseURL, apiKey string, limiter *rate.Limiter, log *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}

	return &Client{
		client:  client,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		log:     log,
		limiter: limiter,
	}
}

// NearbySearch returns the single page of venues around center that match any of the keywords.
// A response without results yields an empty slice.
func (c *Client) NearbySearch(
	ctx context.Context,
	center models.Coordinates,
	radius int,
	keywords []string,
) ([]models.Place, error) {
	query := url.Values{}
	query.Set("location", formatCoordinate(center.Latitude)+","+formatCoordinate(center.Longitude))
	query.Set("radius", strconv.Itoa(radius))
	query.Set("keyword", strings.Join(keywords, "|"))
	query.Set("key", c.apiKey)

	var resp nearbySearchResponse
	if err := c.get(ctx, "nearbysearch", query, &resp); err != nil {
		return nil, err
	}

	if resp.Results == nil {
		c.log.DebugContext(ctx, "Nearby search returned no results", "status", resp.Status)
		return []models.Place{}, nil
	}

	for idx := range resp.Results {
		resp.Results[idx].DistanceMeters = geo.Distance(center.Point(), resp.Results[idx].Coordinates().Point())
	}

	c.log.InfoContext(ctx, "Nearby search finished", "results", len(resp.Results), "status", resp.Status)

	return resp.Results, nil
}

// Details fetches the requested fields of a place. Missing fields are left at their zero values.
func (c *Client) Details(ctx context.Context, placeID string, fields ...string) (*models.PlaceDetails, error) {
	query := url.Values{}
	query.Set("place_id", placeID)
	query.Set("fields", strings.Join(fields, ","))
	query.Set("key", c.apiKey)

	var resp detailsResponse
	if err := c.get(ctx, "details", query, &resp); err != nil {
		return nil, err
	}

	if resp.Result == nil {
		c.log.DebugContext(ctx, "Place details returned no result", "place_id", placeID, "status", resp.Status)
		return &models.PlaceDetails{}, nil
	}

	return resp.Result, nil
}

// get performs a GET against <base>/<endpoint>/json and decodes the body into out.
// Non-200 answers are logged and still decoded, the provider reports errors in the body.
func (c *Client) get(ctx context.Context, endpoint string, query url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit exceeded: %w", err)
	}

	reqURL := c.baseURL + "/" + endpoint + "/json?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute %s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response body: %w", endpoint, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.log.WarnContext(ctx, "Places API error", "endpoint", endpoint, "status", resp.StatusCode, "body", string(body))
	}

	if err = json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}

	return nil
}

func formatCoordinate(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
