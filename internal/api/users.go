package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/haiquanvn/aquamon/internal/model"
)

// UserInput is the create/update payload for a user account. Password is
// only sent on create; updates always carry the full remaining payload.
type UserInput struct {
	Username  string  `json:"username" validate:"required"`
	LoginName string  `json:"login_name"`
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password,omitempty" validate:"omitempty,min=6"`
	Phone     string  `json:"phone"`
	Address   string  `json:"address"`
	Role      string  `json:"role" validate:"required"`
	Province  string  `json:"province"`
	District  *string `json:"district"`
}

// PaginatedUsersQuery narrows the paginated user listing. Search, role and
// province are applied server-side for this endpoint only.
type PaginatedUsersQuery struct {
	Search   string
	Role     string
	Province string
	Limit    int
	Offset   int
}

// PaginatedUsersResponse is one page of users.
type PaginatedUsersResponse struct {
	Users []model.User `json:"users"`
	Total int          `json:"total"`
}

// Users lists all user accounts.
func (c *Client) Users(ctx context.Context) ([]model.User, error) {
	var out struct {
		Users []model.User `json:"users"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/auth", nil, &out, requestOpts{authed: true}); err != nil {
		return nil, err
	}
	return out.Users, nil
}

// User fetches one user account by id.
func (c *Client) User(ctx context.Context, id int64) (*model.User, error) {
	var out model.User
	path := fmt.Sprintf("/auth/user/%d", id)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out, requestOpts{authed: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

// PaginatedUsers fetches one offset/limit page of users.
func (c *Client) PaginatedUsers(ctx context.Context, q PaginatedUsersQuery) (*PaginatedUsersResponse, error) {
	params := url.Values{}
	params.Set("search", q.Search)
	params.Set("role", q.Role)
	params.Set("province", q.Province)
	params.Set("limit", strconv.Itoa(q.Limit))
	params.Set("offset", strconv.Itoa(q.Offset))

	var out PaginatedUsersResponse
	path := "/auth/paginated?" + params.Encode()
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out, requestOpts{authed: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateUser creates a user account.
func (c *Client) CreateUser(ctx context.Context, in UserInput) (*model.User, error) {
	var out model.User
	if err := c.doJSON(ctx, http.MethodPost, "/auth/create-user", in, &out, requestOpts{authed: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser replaces a user account with the full payload.
func (c *Client) UpdateUser(ctx context.Context, id int64, in UserInput) (*model.User, error) {
	var out model.User
	path := fmt.Sprintf("/auth/update/%d", id)
	if err := c.doJSON(ctx, http.MethodPost, path, in, &out, requestOpts{authed: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser deletes a user account; the server decides whether that is a
// hard or soft delete.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/auth/delete/%d", id)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, requestOpts{authed: true})
}

// ActivateUser re-enables a deactivated account.
func (c *Client) ActivateUser(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/auth/activate/%d", id)
	return c.doJSON(ctx, http.MethodPatch, path, nil, nil, requestOpts{authed: true})
}

// DeactivateUser disables an account.
func (c *Client) DeactivateUser(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/auth/deactivate/%d", id)
	return c.doJSON(ctx, http.MethodPatch, path, nil, nil, requestOpts{authed: true})
}
