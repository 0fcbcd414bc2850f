package upstream

import (
	"context"
	"net/http"

	"ctlfx/console/internal/models"
)

func (c *Client) Balance(ctx context.Context) (models.AccountBalance, error) {
	env, err := c.do(ctx, http.MethodGet, "/account/balance", nil, nil)
	if err != nil {
		return models.AccountBalance{}, err
	}

	var balance models.AccountBalance
	if env.Data != nil {
		if err := decodeValue(env.Data, &balance); err != nil {
			return models.AccountBalance{}, nil
		}
	}
	return balance, nil
}

// Summary is passed through untyped; the upstream shape varies by
// deployment.
func (c *Client) Summary(ctx context.Context) (map[string]any, error) {
	env, err := c.do(ctx, http.MethodGet, "/account/summary", nil, nil)
	if err != nil {
		return map[string]any{}, err
	}

	if m, ok := env.Data.(map[string]any); ok {
		return m, nil
	}
	return map[string]any{}, nil
}

// Transactions tolerates the transactions list arriving either at the
// top level of the envelope or as a bare array.
func (c *Client) Transactions(ctx context.Context, q ListQuery) (Collection[models.Transaction], error) {
	env, err := c.do(ctx, http.MethodGet, "/account/transactions", q.values(), nil)
	if err != nil {
		return Collection[models.Transaction]{Items: []models.Transaction{}}, err
	}

	col := Collection[models.Transaction]{Items: []models.Transaction{}}
	if env.Bare != nil {
		col.Items = decodeItems[models.Transaction](env.Bare)
		return col, nil
	}
	if list, ok := env.Fields["transactions"].([]any); ok {
		col.Items = decodeItems[models.Transaction](list)
		col.Total = weakInt(env.Fields["total"])
		return col, nil
	}
	return collect[models.Transaction](env, "transactions"), nil
}
