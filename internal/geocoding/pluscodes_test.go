package geocoding_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/UnknownOlympus/agora/internal/geocoding"
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

func TestPlusCodesProvider_Geocode(t *testing.T) {
	ctx := t.Context()
	logger := slog.Default()
	apiKey := "test-api-key"
	defaultRL := rate.NewLimiter(rate.Inf, 0)

	t.Run("successful geocoding", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				// Verify request parameters
				assert.Equal(t, http.MethodGet, req.Method)
				assert.Contains(t, req.URL.String(), geocoding.PlusCodesBaseURL)
				assert.Equal(t, "V943+6Q", req.URL.Query().Get("address"))
				assert.Equal(t, apiKey, req.URL.Query().Get("key"))

				return respond(http.StatusOK, `{"geometry":{"location":{"lat":52.2297,"lng":21.0122}}}`)(req)
			},
		}

		provider := geocoding.NewPlusCodesProviderWithClient(mockClient, "", apiKey, defaultRL, logger)
		coords, err := provider.Geocode(ctx, "V943+6Q")

		require.NoError(t, err)
		require.NotNil(t, coords)
		assert.InEpsilon(t, 52.2297, coords.Latitude, 0.0001)
		assert.InEpsilon(t, 21.0122, coords.Longitude, 0.0001)
	})

	t.Run("empty api key is passed through", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.True(t, req.URL.Query().Has("key"))
				assert.Empty(t, req.URL.Query().Get("key"))
				return respond(http.StatusForbidden, `denied`)(req)
			},
		}

		provider := geocoding.NewPlusCodesProviderWithClient(mockClient, "", "", defaultRL, logger)
		coords, err := provider.Geocode(ctx, "V943+6Q")

		assert.Nil(t, coords)
		require.ErrorIs(t, err, geocoding.ErrUnresolvable)
	})

	t.Run("non-200 status is unresolvable", func(t *testing.T) {
		mockClient := &mockHTTPClient{doFunc: respond(http.StatusInternalServerError, `oops`)}

		provider := geocoding.NewPlusCodesProviderWithClient(mockClient, "", apiKey, defaultRL, logger)
		coords, err := provider.Geocode(ctx, "V943+6Q")

		assert.Nil(t, coords)
		require.ErrorIs(t, err, geocoding.ErrUnresolvable)
		assert.ErrorContains(t, err, "status 500")
	})

	t.Run("missing geometry is unresolvable", func(t *testing.T) {
		mockClient := &mockHTTPClient{doFunc: respond(http.StatusOK, `{"status":"INVALID_REQUEST"}`)}

		provider := geocoding.NewPlusCodesProviderWithClient(mockClient, "", apiKey, defaultRL, logger)
		coords, err := provider.Geocode(ctx, "bogus")

		assert.Nil(t, coords)
		require.ErrorIs(t, err, geocoding.ErrUnresolvable)
	})

	t.Run("missing location is unresolvable", func(t *testing.T) {
		mockClient := &mockHTTPClient{doFunc: respond(http.StatusOK, `{"geometry":{"bounds":{}}}`)}

		provider := geocoding.NewPlusCodesProviderWithClient(mockClient, "", apiKey, defaultRL, logger)
		coords, err := provider.Geocode(ctx, "bogus")

		assert.Nil(t, coords)
		require.ErrorIs(t, err, geocoding.ErrUnresolvable)
	})

	t.Run("invalid JSON response", func(t *testing.T) {
		mockClient := &mockHTTPClient{doFunc: respond(http.StatusOK, `<html>`)}

		provider := geocoding.NewPlusCodesProviderWithClient(mockClient, "", apiKey, defaultRL, logger)
		coords, err := provider.Geocode(ctx, "V943+6Q")

		assert.Nil(t, coords)
		require.Error(t, err)
		require.NotErrorIs(t, err, geocoding.ErrUnresolvable)
		assert.ErrorContains(t, err, "failed to decode plus codes response")
	})

	t.Run("HTTP client returns error", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, errors.New("dial tcp: no such host")
			},
		}

		provider := geocoding.NewPlusCodesProviderWithClient(mockClient, "", apiKey, defaultRL, logger)
		coords, err := provider.Geocode(ctx, "V943+6Q")

		assert.Nil(t, coords)
		require.Error(t, err)
		require.NotErrorIs(t, err, geocoding.ErrUnresolvable)
		assert.ErrorContains(t, err, "failed to execute geocoding request")
	})

	t.Run("custom base URL", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, "geo.internal", req.URL.Host)
				assert.Equal(t, "/lookup", req.URL.Path)
				return respond(http.StatusOK, `{"geometry":{"location":{"lat":1.5,"lng":2.5}}}`)(req)
			},
		}

		provider := geocoding.NewPlusCodesProviderWithClient(mockClient, "http://geo.internal/lookup", apiKey, defaultRL, logger)
		coords, err := provider.Geocode(ctx, "V943+6Q")

		require.NoError(t, err)
		assert.InEpsilon(t, 1.5, coords.Latitude, 0.0001)
	})

	t.Run("rate limit exceeded", func(t *testing.T) {
		rateCtx, cancel := context.WithCancel(context.Background())
		cancel() // cancel immediately
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				t.Fatal("HTTP client should not be called when rate limit blocks")
				return &http.Response{}, nil
			},
		}

		limiter := rate.NewLimiter(rate.Every(time.Second), 1)

		provider := geocoding.NewPlusCodesProviderWithClient(mockClient, "", apiKey, limiter, logger)
		coords, err := provider.Geocode(rateCtx, "V943+6Q")

		require.Error(t, err)
		assert.Nil(t, coords)
		assert.ErrorContains(t, err, "rate limit exceeded")
	})
}
