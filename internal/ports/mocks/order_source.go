// Mocks follow mockery's expecter layout (see .mockery.yaml); regenerating replaces this file.

package mocks

import (
	context "context"

	domain "github.com/bnema/mst-orders/internal/domain"
	mock "github.com/stretchr/testify/mock"
)

// MockOrderSource is a mock type for the OrderSource type
type MockOrderSource struct {
	mock.Mock
}

type MockOrderSource_Expecter struct {
	mock *mock.Mock
}

func (_m *MockOrderSource) EXPECT() *MockOrderSource_Expecter {
	return &MockOrderSource_Expecter{mock: &_m.Mock}
}

// ReadOrder provides a mock function with given fields: ctx, path, expectedRows
func (_m *MockOrderSource) ReadOrder(ctx context.Context, path string, expectedRows int) ([]domain.WireRecord, error) {
	ret := _m.Called(ctx, path, expectedRows)

	if len(ret) == 0 {
		panic("no return value specified for ReadOrder")
	}

	var r0 []domain.WireRecord
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string, int) ([]domain.WireRecord, error)); ok {
		return rf(ctx, path, expectedRows)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string, int) []domain.WireRecord); ok {
		r0 = rf(ctx, path, expectedRows)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]domain.WireRecord)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string, int) error); ok {
		r1 = rf(ctx, path, expectedRows)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockOrderSource_ReadOrder_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'ReadOrder'
type MockOrderSource_ReadOrder_Call struct {
	*mock.Call
}

// ReadOrder is a helper method to define mock.On call
//   - ctx context.Context
//   - path string
//   - expectedRows int
func (_e *MockOrderSource_Expecter) ReadOrder(ctx interface{}, path interface{}, expectedRows interface{}) *MockOrderSource_ReadOrder_Call {
	return &MockOrderSource_ReadOrder_Call{Call: _e.mock.On("ReadOrder", ctx, path, expectedRows)}
}

func (_c *MockOrderSource_ReadOrder_Call) Run(run func(ctx context.Context, path string, expectedRows int)) *MockOrderSource_ReadOrder_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string), args[2].(int))
	})
	return _c
}

func (_c *MockOrderSource_ReadOrder_Call) Return(_a0 []domain.WireRecord, _a1 error) *MockOrderSource_ReadOrder_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockOrderSource_ReadOrder_Call) RunAndReturn(run func(context.Context, string, int) ([]domain.WireRecord, error)) *MockOrderSource_ReadOrder_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockOrderSource creates a new instance of MockOrderSource. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockOrderSource(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockOrderSource {
	mock := &MockOrderSource{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
