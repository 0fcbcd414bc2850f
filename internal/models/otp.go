package models

import "time"

// Otp is a one-time-password verification record. Consumed only ever
// flips false to true upstream.
type Otp struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	Email     string    `json:"email"`
	CodeHash  string    `json:"codeHash"`
	ExpiresAt time.Time `json:"expiresAt"`
	Consumed  bool      `json:"consumed"`
	Attempts  int       `json:"attempts"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Expired is display-only; expiry is authoritative upstream.
func (o Otp) Expired(now time.Time) bool {
	return o.ExpiresAt.Before(now)
}
