package upstream

import (
	"context"
	"fmt"
	"net/http"

	"ctlfx/console/internal/models"
)

type UserInput struct {
	Email     string  `json:"email"`
	Password  string  `json:"password,omitempty"`
	Name      *string `json:"name,omitempty"`
	Amount    float64 `json:"amount"`
	IsDeleted bool    `json:"isDeleted"`
}

func (c *Client) Users(ctx context.Context, q ListQuery) (Collection[models.User], error) {
	env, err := c.do(ctx, http.MethodGet, "/user", q.values(), nil)
	if err != nil {
		return Collection[models.User]{Items: []models.User{}}, err
	}
	return collect[models.User](env, "users"), nil
}

// UserByID returns nil when the user does not exist or the call fails;
// callers treat absence as a state, not an error.
func (c *Client) UserByID(ctx context.Context, id int) *models.User {
	env, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/user/%d", id), nil, nil)
	if err != nil {
		return nil
	}
	return entity[models.User](env, "user")
}

func (c *Client) CreateUser(ctx context.Context, in UserInput) (*models.User, error) {
	env, err := c.do(ctx, http.MethodPost, "/user", nil, in)
	if err != nil {
		return nil, err
	}
	if env.absent() {
		return nil, &Error{Kind: KindInvalidResponse, MessageField: "invalid server response"}
	}
	return entity[models.User](env, "user"), nil
}

func (c *Client) UpdateUser(ctx context.Context, id int, patch map[string]any) (*models.User, error) {
	env, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/user/%d", id), nil, patch)
	if err != nil {
		return nil, err
	}
	if env.absent() {
		return nil, &Error{Kind: KindInvalidResponse, MessageField: "invalid server response"}
	}
	return entity[models.User](env, "user"), nil
}

// RestoreUser clears the soft-delete flag. The upstream has no dedicated
// restore endpoint; this is a plain update.
func (c *Client) RestoreUser(ctx context.Context, id int) (*models.User, error) {
	return c.UpdateUser(ctx, id, map[string]any{"isDeleted": false})
}

func (c *Client) DeleteUser(ctx context.Context, id int) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/user/%d", id), nil, nil)
	return err
}

// AddUserPayment records a payment directly against a user account.
func (c *Client) AddUserPayment(ctx context.Context, userID int, in PaymentInput) (*models.Payment, error) {
	env, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/user/%d/payments", userID), nil, in)
	if err != nil {
		return nil, err
	}
	if env.absent() {
		return nil, &Error{Kind: KindInvalidResponse, MessageField: "invalid server response"}
	}
	return entity[models.Payment](env, "payment"), nil
}
