package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"ctlfx/console/internal/config"
	"ctlfx/console/internal/middleware"
	"ctlfx/console/internal/session"
	"ctlfx/console/internal/upstream"
	"ctlfx/console/internal/view"
)

type HandlerSet struct {
	log      zerolog.Logger
	cfg      *config.AppConfig
	upstream *upstream.Client
	sessions *session.Manager
	views    *view.Registry
}

func NewHandlerSet(log zerolog.Logger, cfg *config.AppConfig, client *upstream.Client, sessions *session.Manager, views *view.Registry) HandlerSet {
	return HandlerSet{
		log:      log,
		cfg:      cfg,
		upstream: client,
		sessions: sessions,
		views:    views,
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	v1 := router.Group("/v1")

	auth := v1.Group("/auth")
	auth.POST("/login", h.Login)
	auth.POST("/logout", h.Logout)

	guarded := v1.Group("")
	guarded.Use(middleware.SessionAuth(h.sessions))

	guarded.GET("/auth/me", h.Me)
	guarded.GET("/dashboard/stats", h.DashboardStats)

	account := guarded.Group("/account")
	account.GET("/balance", h.AccountBalance)
	account.GET("/summary", h.AccountSummary)
	account.GET("/transactions", h.AccountTransactions)

	views := guarded.Group("/views")
	views.GET("/users", h.UsersView)
	views.POST("/users/search", h.UsersSearch)
	views.POST("/users/page", h.UsersPage)
	views.GET("/users/:id/payments", h.UserPaymentsView)
	views.GET("/payments", h.PaymentsView)
	views.POST("/payments/search", h.PaymentsSearch)
	views.POST("/payments/page", h.PaymentsPage)
	views.POST("/payments/filter", h.PaymentsFilter)
	views.GET("/otps", h.OtpsView)
	views.POST("/otps/search", h.OtpsSearch)
	views.POST("/otps/page", h.OtpsPage)
	views.GET("/user-picker", h.UserPicker)
	views.POST("/user-picker/search", h.UserPickerSearch)
	views.POST("/user-picker/more", h.UserPickerMore)

	users := guarded.Group("/users")
	users.GET("/:id", h.GetUser)
	users.POST("", h.CreateUser)
	users.PUT("/:id", h.UpdateUser)
	users.DELETE("/:id", h.DeleteUser)
	users.POST("/:id/restore", h.RestoreUser)
	users.POST("/:id/payments", h.AddUserPayment)
	users.GET("/:id/profile", h.GetUserProfile)
	users.PUT("/:id/profile", h.SaveUserProfile)
	users.DELETE("/:id/profile", h.DeleteUserProfile)
	users.GET("/:id/otps", h.UserOtps)

	payments := guarded.Group("/payments")
	payments.GET("/:id", h.GetPayment)
	payments.POST("", h.CreatePayment)
	payments.PUT("/:id", h.UpdatePayment)
	payments.PATCH("/:id/status", h.UpdatePaymentStatus)
	payments.DELETE("/:id", h.DeletePayment)

	otps := guarded.Group("/otps")
	otps.GET("/:id", h.GetOtp)
	otps.POST("/verify", h.VerifyOtp)
	otps.POST("/resend", h.ResendOtp)
}

// bound returns an upstream client carrying the request's session token.
// A 401 from any call made through it destroys the console session, so
// the next guarded request sends the browser back to login.
func (h HandlerSet) bound(c *gin.Context) (*upstream.Client, session.Session, bool) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated", "redirect": "/login"})
		return nil, session.Session{}, false
	}

	sessionID := sess.ID
	client := h.upstream.WithSession(sess.Token, func() {
		h.sessions.Destroy(context.Background(), sessionID)
	})
	return client, sess, true
}

func (h HandlerSet) viewSet(c *gin.Context) (*view.ViewSet, bool) {
	client, sess, ok := h.bound(c)
	if !ok {
		return nil, false
	}
	return h.views.For(sess.ID, client), true
}

// upstreamError maps a failed upstream call onto the console's response:
// auth failures redirect to login, everything else surfaces the shared
// display message.
func upstreamError(c *gin.Context, err error) {
	if upstream.KindOf(err) == upstream.KindAuth {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session_expired", "redirect": "/login"})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": upstream.Message(err)})
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
