package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ctlfx/console/internal/upstream"
)

type createUserRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=6"`
	Name     *string `json:"name"`
	Amount   float64 `json:"amount" binding:"omitempty,gte=0"`
}

type updateUserRequest struct {
	Email     *string  `json:"email" binding:"omitempty,email"`
	Password  *string  `json:"password" binding:"omitempty,min=6"`
	Name      *string  `json:"name"`
	Amount    *float64 `json:"amount" binding:"omitempty,gte=0"`
	IsDeleted *bool    `json:"isDeleted"`
}

func (h HandlerSet) GetUser(c *gin.Context) {
	client, _, ok := h.bound(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	user := client.UserByID(c.Request.Context(), id)
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h HandlerSet) CreateUser(c *gin.Context) {
	client, sess, ok := h.bound(c)
	if !ok {
		return
	}

	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vs := h.views.For(sess.ID, client)
	vs.Users.SetActionBusy(true)
	defer vs.Users.SetActionBusy(false)

	user, err := client.CreateUser(c.Request.Context(), upstream.UserInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Amount:   req.Amount,
	})
	if err != nil {
		upstreamError(c, err)
		return
	}

	// the table shows upstream truth, not a local merge
	_ = vs.Users.Refresh(c.Request.Context())
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func (h HandlerSet) UpdateUser(c *gin.Context) {
	client, sess, ok := h.bound(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := map[string]any{}
	if req.Email != nil {
		patch["email"] = *req.Email
	}
	if req.Password != nil {
		patch["password"] = *req.Password
	}
	if req.Name != nil {
		patch["name"] = *req.Name
	}
	if req.Amount != nil {
		patch["amount"] = *req.Amount
	}
	if req.IsDeleted != nil {
		patch["isDeleted"] = *req.IsDeleted
	}

	vs := h.views.For(sess.ID, client)
	vs.Users.SetActionBusy(true)
	defer vs.Users.SetActionBusy(false)

	user, err := client.UpdateUser(c.Request.Context(), id, patch)
	if err != nil {
		upstreamError(c, err)
		return
	}

	_ = vs.Users.Refresh(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h HandlerSet) DeleteUser(c *gin.Context) {
	client, sess, ok := h.bound(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	vs := h.views.For(sess.ID, client)
	vs.Users.SetActionBusy(true)
	defer vs.Users.SetActionBusy(false)

	if err := client.DeleteUser(c.Request.Context(), id); err != nil {
		upstreamError(c, err)
		return
	}

	_ = vs.Users.Refresh(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// RestoreUser clears the soft-delete flag through a plain update; the
// upstream exposes no dedicated restore call.
func (h HandlerSet) RestoreUser(c *gin.Context) {
	client, sess, ok := h.bound(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	vs := h.views.For(sess.ID, client)
	vs.Users.SetActionBusy(true)
	defer vs.Users.SetActionBusy(false)

	user, err := client.RestoreUser(c.Request.Context(), id)
	if err != nil {
		upstreamError(c, err)
		return
	}

	_ = vs.Users.Refresh(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h HandlerSet) AddUserPayment(c *gin.Context) {
	client, sess, ok := h.bound(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := req.input()
	in.UserID = id

	payment, err := client.AddUserPayment(c.Request.Context(), id, in)
	if err != nil {
		upstreamError(c, err)
		return
	}

	vs := h.views.For(sess.ID, client)
	_ = vs.UserPayments(id).Refresh(c.Request.Context())
	c.JSON(http.StatusCreated, gin.H{"payment": payment})
}
