package models

import "time"

// Identity is the authenticated staff member returned by the upstream
// login endpoint. It is cached with the session and never re-fetched.
type Identity struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// User is a platform account managed through the console. Soft-deleted
// users stay listable; IsDeleted gates which row actions apply.
type User struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name"`
	Amount    float64   `json:"amount"`
	IsDeleted bool      `json:"isDeleted"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Profile is the optional one-to-one extension of a User. Absence is a
// valid state, not an error.
type Profile struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	Phone     *string   `json:"phone"`
	Address   *string   `json:"address"`
	IDCard    *string   `json:"idCard"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
