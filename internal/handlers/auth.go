package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ctlfx/console/internal/middleware"
	"ctlfx/console/internal/upstream"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	signed, sess, err := h.sessions.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		upstreamLoginError(c, err)
		return
	}

	maxAge := int(sess.ExpiresAt.Sub(sess.CreatedAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, signed, maxAge, "/", "", h.cfg.Environment == "production", true)

	c.JSON(http.StatusOK, gin.H{
		"token": signed,
		"user":  sess.Identity,
	})
}

func (h HandlerSet) Logout(c *gin.Context) {
	tokenStr := ""
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil {
		tokenStr = cookie
	}
	if header := c.GetHeader("Authorization"); len(header) > 7 && header[:7] == "Bearer " {
		tokenStr = header[7:]
	}

	if tokenStr != "" {
		h.sessions.Logout(c.Request.Context(), tokenStr)
	}

	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.cfg.Environment == "production", true)
	c.Status(http.StatusNoContent)
}

func (h HandlerSet) Me(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated", "redirect": "/login"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": sess.Identity})
}

// upstreamLoginError keeps credential failures at 401 instead of the
// generic upstream mapping; nothing was persisted on any of these paths.
func upstreamLoginError(c *gin.Context, err error) {
	if upstream.KindOf(err) == upstream.KindNetwork {
		c.JSON(http.StatusBadGateway, gin.H{"error": upstream.Message(err)})
		return
	}
	c.JSON(http.StatusUnauthorized, gin.H{"error": upstream.Message(err)})
}
