package upstream

import (
	"context"
	"net/http"

	"ctlfx/console/internal/models"
)

type LoginResult struct {
	Token    string
	Identity models.Identity
}

// Login exchanges staff credentials for an upstream bearer token. The
// response must contain both a token and a user object; anything less
// fails without side effects.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/login", nil, map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return LoginResult{}, err
	}

	data, _ := env.Data.(map[string]any)
	token, _ := data["token"].(string)
	user := entity[models.Identity](env, "user")
	if token == "" || user == nil {
		return LoginResult{}, &Error{
			Kind:         KindInvalidResponse,
			MessageField: "invalid server response: missing token or user",
		}
	}

	return LoginResult{Token: token, Identity: *user}, nil
}
