// Mocks follow mockery's expecter layout (see .mockery.yaml); regenerating replaces this file.

package mocks

import (
	context "context"

	domain "github.com/bnema/mst-orders/internal/domain"
	mock "github.com/stretchr/testify/mock"
)

// MockManifestRepository is a mock type for the ManifestRepository type
type MockManifestRepository struct {
	mock.Mock
}

type MockManifestRepository_Expecter struct {
	mock *mock.Mock
}

func (_m *MockManifestRepository) EXPECT() *MockManifestRepository_Expecter {
	return &MockManifestRepository_Expecter{mock: &_m.Mock}
}

// List provides a mock function with given fields: ctx
func (_m *MockManifestRepository) List(ctx context.Context) ([]domain.OrderEntry, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for List")
	}

	var r0 []domain.OrderEntry
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) ([]domain.OrderEntry, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) []domain.OrderEntry); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]domain.OrderEntry)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockManifestRepository_List_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'List'
type MockManifestRepository_List_Call struct {
	*mock.Call
}

// List is a helper method to define mock.On call
//   - ctx context.Context
func (_e *MockManifestRepository_Expecter) List(ctx interface{}) *MockManifestRepository_List_Call {
	return &MockManifestRepository_List_Call{Call: _e.mock.On("List", ctx)}
}

func (_c *MockManifestRepository_List_Call) Run(run func(ctx context.Context)) *MockManifestRepository_List_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context))
	})
	return _c
}

func (_c *MockManifestRepository_List_Call) Return(_a0 []domain.OrderEntry, _a1 error) *MockManifestRepository_List_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockManifestRepository_List_Call) RunAndReturn(run func(context.Context) ([]domain.OrderEntry, error)) *MockManifestRepository_List_Call {
	_c.Call.Return(run)
	return _c
}

// Record provides a mock function with given fields: ctx, entries
func (_m *MockManifestRepository) Record(ctx context.Context, entries []domain.OrderEntry) error {
	ret := _m.Called(ctx, entries)

	if len(ret) == 0 {
		panic("no return value specified for Record")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, []domain.OrderEntry) error); ok {
		r0 = rf(ctx, entries)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockManifestRepository_Record_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Record'
type MockManifestRepository_Record_Call struct {
	*mock.Call
}

// Record is a helper method to define mock.On call
//   - ctx context.Context
//   - entries []domain.OrderEntry
func (_e *MockManifestRepository_Expecter) Record(ctx interface{}, entries interface{}) *MockManifestRepository_Record_Call {
	return &MockManifestRepository_Record_Call{Call: _e.mock.On("Record", ctx, entries)}
}

func (_c *MockManifestRepository_Record_Call) Run(run func(ctx context.Context, entries []domain.OrderEntry)) *MockManifestRepository_Record_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].([]domain.OrderEntry))
	})
	return _c
}

func (_c *MockManifestRepository_Record_Call) Return(_a0 error) *MockManifestRepository_Record_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockManifestRepository_Record_Call) RunAndReturn(run func(context.Context, []domain.OrderEntry) error) *MockManifestRepository_Record_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockManifestRepository creates a new instance of MockManifestRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockManifestRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockManifestRepository {
	mock := &MockManifestRepository{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
