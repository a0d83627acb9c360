package model

// EmailSubscription represents a notification subscription tying an email
// address to a farming area.
type EmailSubscription struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	AreaID    int64  `json:"area_id"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}
