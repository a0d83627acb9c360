package service

import (
	"context"
	"fmt"

	"github.com/haiquanvn/aquamon/internal/metrics"
)

// RegistrationState is the position in the OTP email-registration flow.
type RegistrationState int

const (
	StateEnterEmail RegistrationState = iota
	StateOTPSent
	StateVerified
)

// String returns the state name for logs and prompts.
func (s RegistrationState) String() string {
	switch s {
	case StateEnterEmail:
		return "enter-email"
	case StateOTPSent:
		return "otp-sent"
	case StateVerified:
		return "verified"
	}
	return fmt.Sprintf("RegistrationState(%d)", int(s))
}

// OTPAPI is the slice of the API client the registration flow needs. Both
// endpoints are public.
type OTPAPI interface {
	SendOTP(ctx context.Context, email string, areaID int64) error
	VerifyOTP(ctx context.Context, email, code string, areaID int64) error
}

// RegistrationFlow drives the subscribe-by-email flow for one area:
// enter-email, otp-sent, verified. Every transition is a single round trip
// and happens only after the server confirmed it. Code expiry, if any, is
// the server's business and shows up here as a failed verify.
type RegistrationFlow struct {
	api    OTPAPI
	areaID int64
	email  string
	state  RegistrationState
}

// NewRegistrationFlow starts a flow for subscribing to the given area.
func NewRegistrationFlow(otpAPI OTPAPI, areaID int64) *RegistrationFlow {
	return &RegistrationFlow{
		api:    otpAPI,
		areaID: areaID,
		state:  StateEnterEmail,
	}
}

// State returns the current flow state.
func (f *RegistrationFlow) State() RegistrationState {
	return f.state
}

// Email returns the address the code was sent to, empty before SendOTP.
func (f *RegistrationFlow) Email() string {
	return f.email
}

// SendOTP validates the address and asks the server to mail a code. An
// invalid address never issues a network call.
func (f *RegistrationFlow) SendOTP(ctx context.Context, email string) error {
	if f.state != StateEnterEmail {
		return fmt.Errorf("%w: code already sent, use Resend", ErrValidation)
	}
	if !validEmail(email) {
		return fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	if err := f.api.SendOTP(ctx, email, f.areaID); err != nil {
		return err
	}
	f.email = email
	f.state = StateOTPSent
	return nil
}

// VerifyOTP confirms the 6-digit code and completes the subscription.
func (f *RegistrationFlow) VerifyOTP(ctx context.Context, code string) error {
	if f.state != StateOTPSent {
		return fmt.Errorf("%w: no code pending", ErrValidation)
	}
	if len(code) != 6 {
		return fmt.Errorf("%w: the code has 6 digits", ErrValidation)
	}
	if err := f.api.VerifyOTP(ctx, f.email, code, f.areaID); err != nil {
		return err
	}
	f.state = StateVerified
	metrics.OTPVerifications.Inc()
	return nil
}

// Resend asks for a fresh code for the same address; the flow stays in
// otp-sent and any previously entered code is obsolete.
func (f *RegistrationFlow) Resend(ctx context.Context) error {
	if f.state != StateOTPSent {
		return fmt.Errorf("%w: no code pending", ErrValidation)
	}
	return f.api.SendOTP(ctx, f.email, f.areaID)
}

// Reset starts over for registering another address.
func (f *RegistrationFlow) Reset() {
	f.email = ""
	f.state = StateEnterEmail
}
