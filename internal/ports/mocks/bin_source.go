// Mocks follow mockery's expecter layout (see .mockery.yaml); regenerating replaces this file.

package mocks

import (
	context "context"

	domain "github.com/bnema/mst-orders/internal/domain"
	mock "github.com/stretchr/testify/mock"
)

// MockBinSource is a mock type for the BinSource type
type MockBinSource struct {
	mock.Mock
}

type MockBinSource_Expecter struct {
	mock *mock.Mock
}

func (_m *MockBinSource) EXPECT() *MockBinSource_Expecter {
	return &MockBinSource_Expecter{mock: &_m.Mock}
}

// LoadBins provides a mock function with given fields: ctx, path
func (_m *MockBinSource) LoadBins(ctx context.Context, path string) (domain.BinLabels, error) {
	ret := _m.Called(ctx, path)

	if len(ret) == 0 {
		panic("no return value specified for LoadBins")
	}

	var r0 domain.BinLabels
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (domain.BinLabels, error)); ok {
		return rf(ctx, path)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) domain.BinLabels); ok {
		r0 = rf(ctx, path)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(domain.BinLabels)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, path)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockBinSource_LoadBins_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'LoadBins'
type MockBinSource_LoadBins_Call struct {
	*mock.Call
}

// LoadBins is a helper method to define mock.On call
//   - ctx context.Context
//   - path string
func (_e *MockBinSource_Expecter) LoadBins(ctx interface{}, path interface{}) *MockBinSource_LoadBins_Call {
	return &MockBinSource_LoadBins_Call{Call: _e.mock.On("LoadBins", ctx, path)}
}

func (_c *MockBinSource_LoadBins_Call) Run(run func(ctx context.Context, path string)) *MockBinSource_LoadBins_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string))
	})
	return _c
}

func (_c *MockBinSource_LoadBins_Call) Return(_a0 domain.BinLabels, _a1 error) *MockBinSource_LoadBins_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockBinSource_LoadBins_Call) RunAndReturn(run func(context.Context, string) (domain.BinLabels, error)) *MockBinSource_LoadBins_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockBinSource creates a new instance of MockBinSource. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockBinSource(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockBinSource {
	mock := &MockBinSource{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
