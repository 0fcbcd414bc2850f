package upstream

import (
	"context"
	"fmt"
	"net/http"

	"ctlfx/console/internal/models"
)

func (c *Client) Otps(ctx context.Context) ([]models.Otp, error) {
	env, err := c.do(ctx, http.MethodGet, "/auth/otps", nil, nil)
	if err != nil {
		return []models.Otp{}, err
	}
	return collect[models.Otp](env, "otps").Items, nil
}

func (c *Client) OtpsByUser(ctx context.Context, userID int) ([]models.Otp, error) {
	env, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/auth/otps/user/%d", userID), nil, nil)
	if err != nil {
		return []models.Otp{}, err
	}
	return collect[models.Otp](env, "otps").Items, nil
}

// OtpByID returns nil on any failure.
func (c *Client) OtpByID(ctx context.Context, id int) *models.Otp {
	env, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/auth/otps/%d", id), nil, nil)
	if err != nil {
		return nil
	}
	return entity[models.Otp](env, "otp")
}

// VerifyOtp submits a code on behalf of a user and returns the
// upstream's message.
func (c *Client) VerifyOtp(ctx context.Context, email, code string) (string, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/verify-otp", nil, map[string]string{
		"email": email,
		"code":  code,
	})
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

func (c *Client) ResendOtp(ctx context.Context, email string) (string, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/resend-otp", nil, map[string]string{"email": email})
	if err != nil {
		return "", err
	}
	return env.Message, nil
}
