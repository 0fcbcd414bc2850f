package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type healthResponse struct {
	Status      string `json:"status"`
	Sessions    string `json:"sessions"`
	Environment string `json:"environment"`
}

func (h HandlerSet) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	sessionStatus := "ok"
	if err := h.sessions.Ping(ctx); err != nil {
		sessionStatus = "error"
		h.log.Error().Err(err).Msg("session store ping failed")
	}

	c.JSON(http.StatusOK, healthResponse{
		Status:      "ok",
		Sessions:    sessionStatus,
		Environment: h.cfg.Environment,
	})
}
