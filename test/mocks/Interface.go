package mocks

import (
	"context"

	models "github.com/UnknownOlympus/agora/internal/models"
	mock "github.com/stretchr/testify/mock"
)

// Interface is a mock type for the repository Interface type.
type Interface struct {
	mock.Mock
}

// SaveReport provides a mock function with given fields: ctx, run.
func (_m *Interface) SaveReport(ctx context.Context, run models.ReportRun) error {
	ret := _m.Called(ctx, run)

	if rf, ok := ret.Get(0).(func(context.Context, models.ReportRun) error); ok {
		return rf(ctx, run)
	}

	return ret.Error(0)
}

// NewInterface creates a new instance of Interface. It also registers a testing interface on the mock
// and a cleanup function to assert the mocks expectations.
func NewInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *Interface {
	m := &Interface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
