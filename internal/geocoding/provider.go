package geocoding

import (
	"context"
	"errors"
	"net/http"

	"github.com/UnknownOlympus/agora/internal/models"
)

// Provider is an interface that defines a method for resolving a location code.
// The Geocode method takes a context and a location code (Plus Code) as input,
// and returns the corresponding coordinates and an error if any occurs.
type Provider interface {
	Geocode(ctx context.Context, code string) (*models.Coordinates, error)
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ErrUnresolvable is returned when the provider answered but could not resolve the location code.
// Callers treat it as "no location" rather than as a failure.
var ErrUnresolvable = errors.New("location code could not be resolved")
