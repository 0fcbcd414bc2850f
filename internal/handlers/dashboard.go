package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ctlfx/console/internal/upstream"
)

func (h HandlerSet) DashboardStats(c *gin.Context) {
	client, _, ok := h.bound(c)
	if !ok {
		return
	}

	stats, err := client.Stats(c.Request.Context())
	if err != nil {
		upstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

func (h HandlerSet) AccountBalance(c *gin.Context) {
	client, _, ok := h.bound(c)
	if !ok {
		return
	}

	balance, err := client.Balance(c.Request.Context())
	if err != nil {
		upstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, balance)
}

func (h HandlerSet) AccountSummary(c *gin.Context) {
	client, _, ok := h.bound(c)
	if !ok {
		return
	}

	summary, err := client.Summary(c.Request.Context())
	if err != nil {
		upstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

func (h HandlerSet) AccountTransactions(c *gin.Context) {
	client, _, ok := h.bound(c)
	if !ok {
		return
	}

	q := upstream.ListQuery{Search: c.Query("q"), Limit: 50}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 200 {
		q.Limit = v
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v >= 0 {
		q.Offset = v
	}

	col, err := client.Transactions(c.Request.Context(), q)
	if err != nil {
		upstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, col)
}
