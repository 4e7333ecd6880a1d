package mocks

import (
	"context"

	models "github.com/UnknownOlympus/agora/internal/models"
	mock "github.com/stretchr/testify/mock"
)

// PlacesAPI is a mock type for the service PlacesAPI type.
type PlacesAPI struct {
	mock.Mock
}

// NearbySearch provides a mock function with given fields: ctx, center, radius, keywords.
func (_m *PlacesAPI) NearbySearch(
	ctx context.Context,
	center models.Coordinates,
	radius int,
	keywords []string,
) ([]models.Place, error) {
	ret := _m.Called(ctx, center, radius, keywords)

	var r0 []models.Place
	if rf, ok := ret.Get(0).(func(context.Context, models.Coordinates, int, []string) []models.Place); ok {
		r0 = rf(ctx, center, radius, keywords)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Place)
	}

	return r0, ret.Error(1)
}

// Details provides a mock function with given fields: ctx, placeID, fields.
// The variadic fields are matched as a single []string argument.
func (_m *PlacesAPI) Details(ctx context.Context, placeID string, fields ...string) (*models.PlaceDetails, error) {
	ret := _m.Called(ctx, placeID, fields)

	var r0 *models.PlaceDetails
	if rf, ok := ret.Get(0).(func(context.Context, string, ...string) *models.PlaceDetails); ok {
		r0 = rf(ctx, placeID, fields...)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.PlaceDetails)
	}

	return r0, ret.Error(1)
}

// NewPlacesAPI creates a new instance of PlacesAPI. It also registers a testing interface on the mock
// and a cleanup function to assert the mocks expectations.
func NewPlacesAPI(t interface {
	mock.TestingT
	Cleanup(func())
}) *PlacesAPI {
	m := &PlacesAPI{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
