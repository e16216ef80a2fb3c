package platform

import (
	"context"

	"github.com/cristianoliveira/alonix-notify/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockPlatform is a testify mock of Platform for tests that need to script
// individual failures.
//
//	m := new(MockPlatform)
//	m.On("Schedule", mock.Anything, mock.Anything, Trigger{Seconds: 5}).Return("", errBoom)
type MockPlatform struct {
	mock.Mock
}

func (m *MockPlatform) IsPhysicalDevice() bool {
	return m.Called().Bool(0)
}

func (m *MockPlatform) RequestPermissions(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockPlatform) GetToken(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockPlatform) CreateChannel(ctx context.Context, ch domain.Channel) error {
	return m.Called(ctx, ch).Error(0)
}

func (m *MockPlatform) Present(ctx context.Context, content Content, how Presentation) error {
	return m.Called(ctx, content, how).Error(0)
}

func (m *MockPlatform) Schedule(ctx context.Context, content Content, trigger Trigger) (string, error) {
	args := m.Called(ctx, content, trigger)
	return args.String(0), args.Error(1)
}

func (m *MockPlatform) Cancel(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPlatform) CancelAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockPlatform) DismissAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockPlatform) SetBadge(ctx context.Context, count int) error {
	return m.Called(ctx, count).Error(0)
}

func (m *MockPlatform) Vibrate(ctx context.Context, pattern []int) error {
	return m.Called(ctx, pattern).Error(0)
}

var (
	_ Platform = (*Console)(nil)
	_ Platform = (*Recorder)(nil)
	_ Platform = (*MockPlatform)(nil)
)
