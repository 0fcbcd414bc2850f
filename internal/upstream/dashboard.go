package upstream

import (
	"context"
	"net/http"

	"ctlfx/console/internal/models"
)

// Stats returns the dashboard aggregate. A malformed payload degrades to
// zero counts so the dashboard always renders.
func (c *Client) Stats(ctx context.Context) (models.DashboardStats, error) {
	env, err := c.do(ctx, http.MethodGet, "/dashboard/stats", nil, nil)
	if err != nil {
		return models.DashboardStats{}, err
	}

	var stats models.DashboardStats
	if env.Data != nil {
		if err := decodeValue(env.Data, &stats); err != nil {
			return models.DashboardStats{}, nil
		}
	}
	return stats, nil
}
