// Package session holds the device-local login state: the auth token and
// the decoded user profile. Both survive restarts and are cleared together
// on logout. Read failures are logged and reported as absence so callers
// only ever have to deal with empty values.
package session

import "context"

// Profile is the locally cached user profile built at login time. The
// fields decoded from the token are display hints; the server remains the
// authority on what the user may actually do.
type Profile struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Role     string  `json:"role"`
	Province string  `json:"province"`
	District *string `json:"district"`
}

// IsProvincialManager reports whether the profile belongs to a manager with
// province-wide scope (district is null upstream).
func (p *Profile) IsProvincialManager() bool {
	return p != nil && p.Role == "manager" && p.District == nil
}

// Store is the session persistence contract. Implementations must treat a
// missing value as ("", nil) or (nil, nil), never as an error the caller has
// to branch on.
type Store interface {
	SetToken(ctx context.Context, token string) error
	Token(ctx context.Context) (string, error)
	SetProfile(ctx context.Context, profile *Profile) error
	Profile(ctx context.Context) (*Profile, error)
	// Clear removes the token and the profile together.
	Clear(ctx context.Context) error
}
