package service

import (
	"context"
	"fmt"

	"github.com/haiquanvn/aquamon/internal/api"
	"github.com/haiquanvn/aquamon/internal/model"
)

// UserAPI is the slice of the API client the user-management workflows need.
type UserAPI interface {
	Users(ctx context.Context) ([]model.User, error)
	User(ctx context.Context, id int64) (*model.User, error)
	PaginatedUsers(ctx context.Context, q api.PaginatedUsersQuery) (*api.PaginatedUsersResponse, error)
	CreateUser(ctx context.Context, in api.UserInput) (*model.User, error)
	UpdateUser(ctx context.Context, id int64, in api.UserInput) (*model.User, error)
	DeleteUser(ctx context.Context, id int64) error
	ActivateUser(ctx context.Context, id int64) error
	DeactivateUser(ctx context.Context, id int64) error
}

// UserService owns the admin/manager user-management workflows.
type UserService struct {
	api UserAPI
}

// NewUserService creates a UserService over the given API.
func NewUserService(userAPI UserAPI) *UserService {
	return &UserService{api: userAPI}
}

// List fetches all user accounts.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.api.Users(ctx)
}

// Page fetches one offset/limit page of users.
func (s *UserService) Page(ctx context.Context, q api.PaginatedUsersQuery) (*api.PaginatedUsersResponse, error) {
	return s.api.PaginatedUsers(ctx, q)
}

// Get fetches one user account.
func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	return s.api.User(ctx, id)
}

// Create validates and creates an account. A password is mandatory here,
// unlike on update.
func (s *UserService) Create(ctx context.Context, in api.UserInput) (*model.User, error) {
	if in.Password == "" {
		return nil, fmt.Errorf("%w: a password is required", ErrValidation)
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	return s.api.CreateUser(ctx, in)
}

// Update validates and replaces an account with the full payload.
func (s *UserService) Update(ctx context.Context, id int64, in api.UserInput) (*model.User, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	return s.api.UpdateUser(ctx, id, in)
}

// Delete removes an account.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.api.DeleteUser(ctx, id)
}

// SetActive flips an account between active and inactive.
func (s *UserService) SetActive(ctx context.Context, id int64, active bool) error {
	if active {
		return s.api.ActivateUser(ctx, id)
	}
	return s.api.DeactivateUser(ctx, id)
}
