package model

// Role is the server-assigned role carried in the login response body.
// Any value outside the known set is treated as a citizen.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleExpert  Role = "expert"
)

// Status represents a user account status.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// ManagerLevel distinguishes the two manager tiers. There is no separate
// role for them upstream; the tier is derived entirely from the nullable
// district field.
type ManagerLevel string

const (
	ManagerLevelNone       ManagerLevel = ""
	ManagerLevelProvincial ManagerLevel = "provincial"
	ManagerLevelDistrict   ManagerLevel = "district"
)

// User represents a user account as returned by the remote API.
type User struct {
	ID        int64   `json:"id"`
	Username  string  `json:"username"`
	LoginName string  `json:"login_name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Address   string  `json:"address"`
	Role      Role    `json:"role"`
	Province  string  `json:"province"`
	District  *string `json:"district"`
	Status    Status  `json:"status"`
}

// ManagerLevel derives the manager tier: a manager with no district manages
// the whole province, a manager with a district manages only that district.
// Non-managers have no level.
func (u User) ManagerLevel() ManagerLevel {
	if u.Role != RoleManager {
		return ManagerLevelNone
	}
	if u.District == nil {
		return ManagerLevelProvincial
	}
	return ManagerLevelDistrict
}

// IsActive reports whether the account is active.
func (u User) IsActive() bool {
	return u.Status == StatusActive
}
