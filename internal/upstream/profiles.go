package upstream

import (
	"context"
	"fmt"
	"net/http"

	"ctlfx/console/internal/models"
)

type ProfileInput struct {
	UserID  int     `json:"userId"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	IDCard  *string `json:"idCard,omitempty"`
}

func (c *Client) Profiles(ctx context.Context) ([]models.Profile, error) {
	env, err := c.do(ctx, http.MethodGet, "/profile", nil, nil)
	if err != nil {
		return []models.Profile{}, err
	}
	return collect[models.Profile](env, "profiles").Items, nil
}

// ProfileByUser returns nil when the user has no profile yet or the
// call fails. "No profile" is a normal state for a user.
func (c *Client) ProfileByUser(ctx context.Context, userID int) *models.Profile {
	env, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/profile/user/%d", userID), nil, nil)
	if err != nil {
		return nil
	}
	return entity[models.Profile](env, "profile")
}

func (c *Client) CreateProfile(ctx context.Context, in ProfileInput) (*models.Profile, error) {
	env, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/profile/user/%d", in.UserID), nil, in)
	if err != nil {
		return nil, err
	}
	if env.absent() {
		return nil, &Error{Kind: KindInvalidResponse, MessageField: "invalid server response"}
	}
	return entity[models.Profile](env, "profile"), nil
}

func (c *Client) UpdateProfile(ctx context.Context, userID int, in ProfileInput) (*models.Profile, error) {
	env, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/profile/user/%d", userID), nil, in)
	if err != nil {
		return nil, err
	}
	if env.absent() {
		return nil, &Error{Kind: KindInvalidResponse, MessageField: "invalid server response"}
	}
	return entity[models.Profile](env, "profile"), nil
}

func (c *Client) DeleteProfile(ctx context.Context, userID int) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/profile/user/%d", userID), nil, nil)
	return err
}
