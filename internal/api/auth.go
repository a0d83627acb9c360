package api

import (
	"context"
	"fmt"
	"net/http"
)

// LoginResponse is the body of a successful login. The role is authoritative
// here, not in the token payload.
type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// Login authenticates against the public login endpoint.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var out LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", body, &out, requestOpts{}); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword changes the password of the given user.
func (c *Client) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	body := map[string]string{"oldPassword": oldPassword, "newPassword": newPassword}
	path := fmt.Sprintf("/auth/change-password/%d", userID)
	return c.doJSON(ctx, http.MethodPost, path, body, nil, requestOpts{authed: true})
}
