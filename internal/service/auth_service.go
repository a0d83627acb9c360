package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/haiquanvn/aquamon/internal/api"
	"github.com/haiquanvn/aquamon/internal/metrics"
	"github.com/haiquanvn/aquamon/internal/model"
	"github.com/haiquanvn/aquamon/internal/session"
)

// AuthAPI is the slice of the API client the auth workflows need.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*api.LoginResponse, error)
	ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error
	UpdateUser(ctx context.Context, id int64, in api.UserInput) (*model.User, error)
}

// AuthService owns login, logout and the account self-service operations.
type AuthService struct {
	api   AuthAPI
	store session.Store
}

// NewAuthService creates an AuthService over the given API and session store.
func NewAuthService(authAPI AuthAPI, store session.Store) *AuthService {
	return &AuthService{
		api:   authAPI,
		store: store,
	}
}

// Login authenticates and persists the session. The role comes from the
// login response body; the token payload is decoded unverified only to fill
// in display fields, and a decode failure degrades the profile instead of
// blocking the login.
func (s *AuthService) Login(ctx context.Context, email, password string) (*session.Profile, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, &api.Error{StatusCode: 0, Message: "login failed"}
	}

	if err := s.store.SetToken(ctx, resp.Token); err != nil {
		return nil, fmt.Errorf("persisting token: %w", err)
	}

	role := resp.Role
	if role == "" {
		role = "user"
	}

	profile := &session.Profile{
		Email: email,
		Role:  role,
	}
	if claims, err := decodeTokenClaims(resp.Token); err != nil {
		// Missing display fields are acceptable; the server stays authoritative.
		slog.Error("failed to decode token payload", slog.Any("err", err))
	} else {
		profile.ID = claims.id
		profile.Username = claims.username
		profile.Province = claims.province
		profile.District = claims.district
	}
	if profile.Username == "" {
		profile.Username = localPart(email)
	}

	if err := s.store.SetProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("persisting profile: %w", err)
	}

	metrics.Logins.Inc()
	slog.Info("login succeeded", slog.String("role", role), slog.Int64("user_id", profile.ID))
	return profile, nil
}

// Logout clears the token and profile together.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.store.Clear(ctx)
}

// Profile returns the persisted profile, nil when logged out.
func (s *AuthService) Profile(ctx context.Context) (*session.Profile, error) {
	return s.store.Profile(ctx)
}

// ChangePassword validates locally and delegates to the server.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return fmt.Errorf("%w: both passwords are required", ErrValidation)
	}
	if len(newPassword) < 6 {
		return fmt.Errorf("%w: new password must be at least 6 characters", ErrValidation)
	}
	return s.api.ChangePassword(ctx, userID, oldPassword, newPassword)
}

// UpdateProfile sends the full validated payload and refreshes the cached
// profile fields on success.
func (s *AuthService) UpdateProfile(ctx context.Context, in api.UserInput) (*model.User, error) {
	profile, err := s.store.Profile(ctx)
	if err != nil || profile == nil {
		return nil, fmt.Errorf("%w: not logged in", ErrValidation)
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	updated, err := s.api.UpdateUser(ctx, profile.ID, in)
	if err != nil {
		return nil, err
	}

	profile.Username = updated.Username
	profile.Email = updated.Email
	if err := s.store.SetProfile(ctx, profile); err != nil {
		slog.Error("failed to refresh cached profile", slog.Any("err", err))
	}
	return updated, nil
}

type tokenClaims struct {
	id       int64
	username string
	province string
	district *string
}

// decodeTokenClaims reads the token payload without verifying the
// signature. The fields are display hints only.
func decodeTokenClaims(token string) (*tokenClaims, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type %T", parsed.Claims)
	}

	out := &tokenClaims{}
	if id, ok := claims["id"].(float64); ok {
		out.id = int64(id)
	}
	if username, ok := claims["username"].(string); ok {
		out.username = username
	}
	if province, ok := claims["province"].(string); ok {
		out.province = province
	}
	if district, ok := claims["district"].(string); ok {
		out.district = &district
	}
	return out, nil
}

func localPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
