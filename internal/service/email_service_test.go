package service_test

import (
	"context"
	"testing"

	"github.com/haiquanvn/aquamon/internal/api"
	"github.com/haiquanvn/aquamon/internal/model"
	"github.com/haiquanvn/aquamon/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockEmailAPI is a mock implementation of service.EmailAPI
type MockEmailAPI struct {
	mock.Mock
}

func (m *MockEmailAPI) EmailSubscriptions(ctx context.Context, limit, offset int) ([]model.EmailSubscription, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.EmailSubscription), args.Error(1)
}

func (m *MockEmailAPI) Subscribers(ctx context.Context, areaID int64) ([]model.EmailSubscription, error) {
	args := m.Called(ctx, areaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.EmailSubscription), args.Error(1)
}

func (m *MockEmailAPI) CreateEmailSubscription(ctx context.Context, in api.EmailSubscriptionInput) (*model.EmailSubscription, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EmailSubscription), args.Error(1)
}

func (m *MockEmailAPI) UpdateEmailSubscription(ctx context.Context, id int64, in api.EmailSubscriptionInput) (*model.EmailSubscription, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EmailSubscription), args.Error(1)
}

func (m *MockEmailAPI) DeleteEmailSubscription(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEmailAPI) SendManualEmail(ctx context.Context, in api.ManualEmailInput) error {
	args := m.Called(ctx, in)
	return args.Error(0)
}

func (m *MockEmailAPI) SendTestEmail(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func TestCreateSubscriptionValidation(t *testing.T) {
	ctx := context.Background()
	mockAPI := new(MockEmailAPI)
	emailService := service.NewEmailService(mockAPI)

	_, err := emailService.Create(ctx, api.EmailSubscriptionInput{Email: "bad", AreaID: 1})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = emailService.Create(ctx, api.EmailSubscriptionInput{Email: "a@b.com"})
	assert.ErrorIs(t, err, service.ErrValidation, "a subscription needs an area")

	mockAPI.AssertNotCalled(t, "CreateEmailSubscription", mock.Anything, mock.Anything)

	in := api.EmailSubscriptionInput{Email: "a@b.com", AreaID: 1, IsActive: true}
	mockAPI.On("CreateEmailSubscription", ctx, in).
		Return(&model.EmailSubscription{ID: 2, Email: in.Email, AreaID: 1, IsActive: true}, nil)

	created, err := emailService.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, int64(2), created.ID)

	mockAPI.AssertExpectations(t)
}

func TestSendManualValidation(t *testing.T) {
	ctx := context.Background()
	mockAPI := new(MockEmailAPI)
	emailService := service.NewEmailService(mockAPI)

	err := emailService.SendManual(ctx, api.ManualEmailInput{AreaID: 1, Subject: "s"})
	assert.ErrorIs(t, err, service.ErrValidation, "content is required")
	mockAPI.AssertNotCalled(t, "SendManualEmail", mock.Anything, mock.Anything)

	in := api.ManualEmailInput{AreaID: 1, Subject: "Water quality alert", Content: "Poor outlook this week"}
	mockAPI.On("SendManualEmail", ctx, in).Return(nil)
	require.NoError(t, emailService.SendManual(ctx, in))

	mockAPI.AssertExpectations(t)
}

func TestSendTestValidatesEmail(t *testing.T) {
	ctx := context.Background()
	mockAPI := new(MockEmailAPI)
	emailService := service.NewEmailService(mockAPI)

	assert.ErrorIs(t, emailService.SendTest(ctx, "nope"), service.ErrValidation)
	mockAPI.AssertNotCalled(t, "SendTestEmail", mock.Anything, mock.Anything)

	mockAPI.On("SendTestEmail", ctx, "ops@example.com").Return(nil)
	require.NoError(t, emailService.SendTest(ctx, "ops@example.com"))
	mockAPI.AssertExpectations(t)
}
