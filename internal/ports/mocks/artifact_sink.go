// Mocks follow mockery's expecter layout (see .mockery.yaml); regenerating replaces this file.

package mocks

import (
	context "context"

	ports "github.com/bnema/mst-orders/internal/ports"
	mock "github.com/stretchr/testify/mock"
)

// MockArtifactSink is a mock type for the ArtifactSink type
type MockArtifactSink struct {
	mock.Mock
}

type MockArtifactSink_Expecter struct {
	mock *mock.Mock
}

func (_m *MockArtifactSink) EXPECT() *MockArtifactSink_Expecter {
	return &MockArtifactSink_Expecter{mock: &_m.Mock}
}

// Commit provides a mock function with given fields: ctx, artifacts
func (_m *MockArtifactSink) Commit(ctx context.Context, artifacts []ports.Artifact) error {
	ret := _m.Called(ctx, artifacts)

	if len(ret) == 0 {
		panic("no return value specified for Commit")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, []ports.Artifact) error); ok {
		r0 = rf(ctx, artifacts)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockArtifactSink_Commit_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Commit'
type MockArtifactSink_Commit_Call struct {
	*mock.Call
}

// Commit is a helper method to define mock.On call
//   - ctx context.Context
//   - artifacts []ports.Artifact
func (_e *MockArtifactSink_Expecter) Commit(ctx interface{}, artifacts interface{}) *MockArtifactSink_Commit_Call {
	return &MockArtifactSink_Commit_Call{Call: _e.mock.On("Commit", ctx, artifacts)}
}

func (_c *MockArtifactSink_Commit_Call) Run(run func(ctx context.Context, artifacts []ports.Artifact)) *MockArtifactSink_Commit_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].([]ports.Artifact))
	})
	return _c
}

func (_c *MockArtifactSink_Commit_Call) Return(_a0 error) *MockArtifactSink_Commit_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockArtifactSink_Commit_Call) RunAndReturn(run func(context.Context, []ports.Artifact) error) *MockArtifactSink_Commit_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockArtifactSink creates a new instance of MockArtifactSink. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockArtifactSink(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockArtifactSink {
	mock := &MockArtifactSink{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
