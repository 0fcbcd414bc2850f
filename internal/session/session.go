package session

import (
	"time"

	"ctlfx/console/internal/models"
)

// Session is the console-side record of an authenticated staff member:
// the upstream bearer token plus the identity returned at login. It is
// the only state the console persists.
type Session struct {
	ID        string          `json:"id"`
	Token     string          `json:"token"`
	Identity  models.Identity `json:"identity"`
	CreatedAt time.Time       `json:"createdAt"`
	ExpiresAt time.Time       `json:"expiresAt"`
}

func (s Session) Expired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}
