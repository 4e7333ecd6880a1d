package places_test

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/UnknownOlympus/agora/internal/models"
	"github.com/UnknownOlympus/agora/internal/places"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// mockHTTPClient is a mock implementation of HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func respond(status int, body string) func(*http.Request) (*http.Response, error) {
	return func(_ *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: status,
			Body:       io.NopCloser(bytes.NewBufferString(body)),
		}, nil
	}
}

func newClient(doFunc func(req *http.Request) (*http.Response, error)) *places.Client {
	return places.NewClientWithHTTP(
		&mockHTTPClient{doFunc: doFunc}, "", "test-api-key", rate.NewLimiter(rate.Inf, 0), slog.Default(),
	)
}

func TestClient_NearbySearch(t *testing.T) {
	ctx := t.Context()
	center := models.Coordinates{Latitude: 52.2297, Longitude: 21.0122}

	t.Run("request parameters", func(t *testing.T) {
		client := newClient(func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, http.MethodGet, req.Method)
			assert.Equal(t, "maps.googleapis.com", req.URL.Host)
			assert.Equal(t, "/maps/api/place/nearbysearch/json", req.URL.Path)
			query := req.URL.Query()
			assert.Equal(t, "52.2297,21.0122", query.Get("location"))
			assert.Equal(t, "6999", query.Get("radius"))
			assert.Equal(t, strings.Join(places.NightlifeKeywords, "|"), query.Get("keyword"))
			assert.Equal(t, "test-api-key", query.Get("key"))

			return respond(http.StatusOK, `{"results":[
				{"place_id":"p1","name":"Jazz Bar","rating":4.0,"user_ratings_total":321,
				 "geometry":{"location":{"lat":52.2297,"lng":21.0222}}},
				{"place_id":"p2","name":"Park","user_ratings_total":12}
			],"status":"OK"}`)(req)
		})

		results, err := client.NearbySearch(ctx, center, places.DefaultRadius, places.NightlifeKeywords)

		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "p1", results[0].PlaceID)
		assert.Equal(t, "Jazz Bar", results[0].Name)
		assert.Equal(t, "4.0", results[0].Rating.String())
		assert.Equal(t, 321, results[0].UserRatingsTotal)
		assert.InDelta(t, 680, results[0].DistanceMeters, 10)
		assert.Zero(t, results[1].RatingValue())
	})

	t.Run("missing results yields empty slice", func(t *testing.T) {
		client := newClient(respond(http.StatusOK, `{"status":"REQUEST_DENIED"}`))

		results, err := client.NearbySearch(ctx, center, 100, places.PopularTimesKeywords)

		require.NoError(t, err)
		require.NotNil(t, results)
		assert.Empty(t, results)
	})

	t.Run("error status is decoded best-effort", func(t *testing.T) {
		client := newClient(respond(http.StatusTooManyRequests, `{"results":[],"status":"OVER_QUERY_LIMIT"}`))

		results, err := client.NearbySearch(ctx, center, 100, places.PopularTimesKeywords)

		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("transport failure", func(t *testing.T) {
		client := newClient(func(_ *http.Request) (*http.Response, error) {
			return nil, errors.New("connection reset")
		})

		results, err := client.NearbySearch(ctx, center, 100, places.NightlifeKeywords)

		require.Error(t, err)
		assert.Nil(t, results)
		assert.ErrorContains(t, err, "failed to execute nearbysearch request")
	})

	t.Run("invalid JSON response", func(t *testing.T) {
		client := newClient(respond(http.StatusBadGateway, `<html>bad gateway</html>`))

		_, err := client.NearbySearch(ctx, center, 100, places.NightlifeKeywords)

		require.Error(t, err)
		assert.ErrorContains(t, err, "failed to decode nearbysearch response")
	})
}

func TestClient_Details(t *testing.T) {
	ctx := t.Context()

	t.Run("busyness fields", func(t *testing.T) {
		client := newClient(func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "/maps/api/place/details/json", req.URL.Path)
			query := req.URL.Query()
			assert.Equal(t, "p1", query.Get("place_id"))
			assert.Equal(t, "populartimes,current_popularity", query.Get("fields"))
			assert.Equal(t, "test-api-key", query.Get("key"))

			return respond(http.StatusOK, `{"result":{"current_popularity":80,"populartimes":{"0":[1,2,3]}}}`)(req)
		})

		details, err := client.Details(ctx, "p1", places.FieldPopularTimes, places.FieldCurrentPopularity)

		require.NoError(t, err)
		require.NotNil(t, details.CurrentPopularity)
		assert.Equal(t, 80, *details.CurrentPopularity)
		assert.Equal(t, models.PopularTimes{{Day: "0", Hours: []int{1, 2, 3}}}, details.PopularTimes)
	})

	t.Run("missing result", func(t *testing.T) {
		client := newClient(respond(http.StatusOK, `{"status":"NOT_FOUND"}`))

		details, err := client.Details(ctx, "p1", places.FieldPopularTimes)

		require.NoError(t, err)
		assert.Nil(t, details.CurrentPopularity)
		assert.Empty(t, details.PopularTimes)
	})

	t.Run("null current popularity", func(t *testing.T) {
		client := newClient(respond(http.StatusOK, `{"result":{"current_popularity":null}}`))

		details, err := client.Details(ctx, "p1", places.FieldCurrentPopularity)

		require.NoError(t, err)
		assert.Nil(t, details.CurrentPopularity)
	})

	t.Run("custom base URL", func(t *testing.T) {
		client := places.NewClientWithHTTP(&mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, "http://places.local/api/details/json", req.URL.Scheme+"://"+req.URL.Host+req.URL.Path)
				return respond(http.StatusOK, `{}`)(req)
			},
		}, "http://places.local/api/", "", rate.NewLimiter(rate.Inf, 0), slog.Default())

		_, err := client.Details(ctx, "p1", places.FieldPopularTimes)

		require.NoError(t, err)
	})

	t.Run("invalid JSON response", func(t *testing.T) {
		client := newClient(respond(http.StatusOK, `not json`))

		details, err := client.Details(ctx, "p1", places.FieldPopularTimes)

		require.Error(t, err)
		assert.Nil(t, details)
	})
}
