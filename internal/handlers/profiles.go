package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ctlfx/console/internal/upstream"
)

type profileRequest struct {
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	IDCard  *string `json:"idCard"`
}

// GetUserProfile returns 200 with a null profile when none exists yet;
// absence is a state the detail page renders, not an error.
func (h HandlerSet) GetUserProfile(c *gin.Context) {
	client, _, ok := h.bound(c)
	if !ok {
		return
	}
	userID, ok := pathID(c)
	if !ok {
		return
	}

	profile := client.ProfileByUser(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// SaveUserProfile creates the profile on first save and updates it
// afterwards, mirroring the single edit form on the detail page.
func (h HandlerSet) SaveUserProfile(c *gin.Context) {
	client, _, ok := h.bound(c)
	if !ok {
		return
	}
	userID, ok := pathID(c)
	if !ok {
		return
	}

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := upstream.ProfileInput{
		UserID:  userID,
		Phone:   req.Phone,
		Address: req.Address,
		IDCard:  req.IDCard,
	}

	existing := client.ProfileByUser(c.Request.Context(), userID)

	var err error
	var profile any
	if existing != nil {
		profile, err = client.UpdateProfile(c.Request.Context(), userID, in)
	} else {
		profile, err = client.CreateProfile(c.Request.Context(), in)
	}
	if err != nil {
		upstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h HandlerSet) DeleteUserProfile(c *gin.Context) {
	client, _, ok := h.bound(c)
	if !ok {
		return
	}
	userID, ok := pathID(c)
	if !ok {
		return
	}

	if err := client.DeleteProfile(c.Request.Context(), userID); err != nil {
		upstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile deleted"})
}
