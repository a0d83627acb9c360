package service

import (
	"context"
	"fmt"

	"github.com/haiquanvn/aquamon/internal/api"
	"github.com/haiquanvn/aquamon/internal/model"
)

// EmailAPI is the slice of the API client the subscription-management
// workflows need.
type EmailAPI interface {
	EmailSubscriptions(ctx context.Context, limit, offset int) ([]model.EmailSubscription, error)
	Subscribers(ctx context.Context, areaID int64) ([]model.EmailSubscription, error)
	CreateEmailSubscription(ctx context.Context, in api.EmailSubscriptionInput) (*model.EmailSubscription, error)
	UpdateEmailSubscription(ctx context.Context, id int64, in api.EmailSubscriptionInput) (*model.EmailSubscription, error)
	DeleteEmailSubscription(ctx context.Context, id int64) error
	SendManualEmail(ctx context.Context, in api.ManualEmailInput) error
	SendTestEmail(ctx context.Context, email string) error
}

// EmailService owns the admin subscription-management workflows. The
// citizen-facing path is RegistrationFlow; this one skips the OTP.
type EmailService struct {
	api EmailAPI
}

// NewEmailService creates an EmailService over the given API.
func NewEmailService(emailAPI EmailAPI) *EmailService {
	return &EmailService{api: emailAPI}
}

// Page fetches one offset/limit page of subscriptions.
func (s *EmailService) Page(ctx context.Context, limit, offset int) ([]model.EmailSubscription, error) {
	return s.api.EmailSubscriptions(ctx, limit, offset)
}

// Subscribers lists one area's subscriptions.
func (s *EmailService) Subscribers(ctx context.Context, areaID int64) ([]model.EmailSubscription, error) {
	return s.api.Subscribers(ctx, areaID)
}

// Create validates and adds a subscription directly.
func (s *EmailService) Create(ctx context.Context, in api.EmailSubscriptionInput) (*model.EmailSubscription, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	return s.api.CreateEmailSubscription(ctx, in)
}

// Update validates and replaces a subscription with the full payload.
func (s *EmailService) Update(ctx context.Context, id int64, in api.EmailSubscriptionInput) (*model.EmailSubscription, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	return s.api.UpdateEmailSubscription(ctx, id, in)
}

// Delete removes a subscription.
func (s *EmailService) Delete(ctx context.Context, id int64) error {
	return s.api.DeleteEmailSubscription(ctx, id)
}

// SendManual validates and pushes a manual notification to an area's
// subscribers.
func (s *EmailService) SendManual(ctx context.Context, in api.ManualEmailInput) error {
	if err := validateStruct(in); err != nil {
		return err
	}
	return s.api.SendManualEmail(ctx, in)
}

// SendTest asks the server for a delivery-check email.
func (s *EmailService) SendTest(ctx context.Context, email string) error {
	if !validEmail(email) {
		return fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	return s.api.SendTestEmail(ctx, email)
}
