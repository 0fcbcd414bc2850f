package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type otpVerifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

type otpResendRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h HandlerSet) GetOtp(c *gin.Context) {
	client, _, ok := h.bound(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	otp := client.OtpByID(c.Request.Context(), id)
	if otp == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "otp not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"otp": otp})
}

func (h HandlerSet) UserOtps(c *gin.Context) {
	client, _, ok := h.bound(c)
	if !ok {
		return
	}
	userID, ok := pathID(c)
	if !ok {
		return
	}

	otps, err := client.OtpsByUser(c.Request.Context(), userID)
	if err != nil {
		upstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"otps": otps})
}

func (h HandlerSet) VerifyOtp(c *gin.Context) {
	client, _, ok := h.bound(c)
	if !ok {
		return
	}

	var req otpVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := client.VerifyOtp(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		upstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

func (h HandlerSet) ResendOtp(c *gin.Context) {
	client, _, ok := h.bound(c)
	if !ok {
		return
	}

	var req otpResendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := client.ResendOtp(c.Request.Context(), req.Email)
	if err != nil {
		upstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}
