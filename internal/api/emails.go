package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/haiquanvn/aquamon/internal/model"
)

// EmailSubscriptionInput is the create/update payload for a subscription.
type EmailSubscriptionInput struct {
	Email    string `json:"email" validate:"required,email"`
	AreaID   int64  `json:"area_id" validate:"required"`
	IsActive bool   `json:"is_active"`
}

// ManualEmailInput is the payload for sending a prediction email by hand to
// an area's subscribers.
type ManualEmailInput struct {
	AreaID  int64  `json:"area_id" validate:"required"`
	Subject string `json:"subject" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// SendOTP asks the server to email a one-time code for subscribing to an
// area. Public: citizens register before having any account.
func (c *Client) SendOTP(ctx context.Context, email string, areaID int64) error {
	body := map[string]any{"email": email, "area_id": areaID}
	return c.doJSON(ctx, http.MethodPost, "/emails/send-otp", body, nil, requestOpts{})
}

// VerifyOTP confirms the one-time code. Public.
func (c *Client) VerifyOTP(ctx context.Context, email, code string, areaID int64) error {
	body := map[string]any{"email": email, "otp_code": code, "area_id": areaID}
	return c.doJSON(ctx, http.MethodPost, "/emails/verify-otp", body, nil, requestOpts{})
}

// Subscribers lists the subscriptions of one area.
func (c *Client) Subscribers(ctx context.Context, areaID int64) ([]model.EmailSubscription, error) {
	var out struct {
		Subscribers []model.EmailSubscription `json:"subscribers"`
	}
	path := fmt.Sprintf("/emails/area/%d/subscribers", areaID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out, requestOpts{authed: true}); err != nil {
		return nil, err
	}
	return out.Subscribers, nil
}

// EmailSubscriptions fetches one offset/limit page of subscriptions.
func (c *Client) EmailSubscriptions(ctx context.Context, limit, offset int) ([]model.EmailSubscription, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))

	var out struct {
		Emails []model.EmailSubscription `json:"emails"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/emails?"+params.Encode(), nil, &out, requestOpts{authed: true}); err != nil {
		return nil, err
	}
	return out.Emails, nil
}

// CreateEmailSubscription subscribes an address to an area directly, without
// the OTP flow. Administrative use only.
func (c *Client) CreateEmailSubscription(ctx context.Context, in EmailSubscriptionInput) (*model.EmailSubscription, error) {
	var out model.EmailSubscription
	if err := c.doJSON(ctx, http.MethodPost, "/emails/subscribe", in, &out, requestOpts{authed: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateEmailSubscription replaces a subscription with the full payload.
func (c *Client) UpdateEmailSubscription(ctx context.Context, id int64, in EmailSubscriptionInput) (*model.EmailSubscription, error) {
	var out model.EmailSubscription
	path := fmt.Sprintf("/emails/%d", id)
	if err := c.doJSON(ctx, http.MethodPut, path, in, &out, requestOpts{authed: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteEmailSubscription removes a subscription.
func (c *Client) DeleteEmailSubscription(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/emails/%d", id)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, requestOpts{authed: true})
}

// SendManualEmail pushes a manual notification to an area's subscribers.
func (c *Client) SendManualEmail(ctx context.Context, in ManualEmailInput) error {
	return c.doJSON(ctx, http.MethodPost, "/emails/send-manual", in, nil, requestOpts{authed: true})
}

// SendTestEmail asks the server to send a delivery-check email.
func (c *Client) SendTestEmail(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.doJSON(ctx, http.MethodPost, "/emails/test", body, nil, requestOpts{authed: true})
}
