package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ctlfx/console/internal/upstream"
)

type paymentRequest struct {
	UserID          int        `json:"userId" binding:"omitempty,min=1"`
	Amount          float64    `json:"amount" binding:"required,gt=0"`
	Type            string     `json:"type" binding:"required,oneof=deposit withdrawal refund"`
	Method          *string    `json:"method"`
	Status          string     `json:"status" binding:"required,oneof=pending completed failed"`
	ReferenceNumber *string    `json:"referenceNumber"`
	Description     *string    `json:"description"`
	TransactionDate *time.Time `json:"transactionDate"`
}

func (r paymentRequest) input() upstream.PaymentInput {
	return upstream.PaymentInput{
		UserID:          r.UserID,
		Amount:          r.Amount,
		Type:            r.Type,
		Method:          r.Method,
		Status:          r.Status,
		ReferenceNumber: r.ReferenceNumber,
		Description:     r.Description,
		TransactionDate: r.TransactionDate,
	}
}

type updatePaymentRequest struct {
	Amount          *float64   `json:"amount" binding:"omitempty,gt=0"`
	Type            *string    `json:"type" binding:"omitempty,oneof=deposit withdrawal refund"`
	Method          *string    `json:"method"`
	Status          *string    `json:"status" binding:"omitempty,oneof=pending completed failed"`
	ReferenceNumber *string    `json:"referenceNumber"`
	Description     *string    `json:"description"`
	TransactionDate *time.Time `json:"transactionDate"`
}

type paymentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending completed failed"`
}

func (h HandlerSet) GetPayment(c *gin.Context) {
	client, _, ok := h.bound(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	payment := client.PaymentByID(c.Request.Context(), id)
	if payment == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": payment})
}

func (h HandlerSet) CreatePayment(c *gin.Context) {
	client, sess, ok := h.bound(c)
	if !ok {
		return
	}

	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.UserID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	vs := h.views.For(sess.ID, client)
	vs.Payments.SetActionBusy(true)
	defer vs.Payments.SetActionBusy(false)

	payment, err := client.CreatePayment(c.Request.Context(), req.input())
	if err != nil {
		upstreamError(c, err)
		return
	}

	_ = vs.Payments.Refresh(c.Request.Context())
	c.JSON(http.StatusCreated, gin.H{"payment": payment})
}

func (h HandlerSet) UpdatePayment(c *gin.Context) {
	client, sess, ok := h.bound(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := map[string]any{}
	if req.Amount != nil {
		patch["amount"] = *req.Amount
	}
	if req.Type != nil {
		patch["type"] = *req.Type
	}
	if req.Method != nil {
		patch["method"] = *req.Method
	}
	if req.Status != nil {
		patch["status"] = *req.Status
	}
	if req.ReferenceNumber != nil {
		patch["referenceNumber"] = *req.ReferenceNumber
	}
	if req.Description != nil {
		patch["description"] = *req.Description
	}
	if req.TransactionDate != nil {
		patch["transactionDate"] = req.TransactionDate.Format(time.RFC3339)
	}

	vs := h.views.For(sess.ID, client)
	vs.Payments.SetActionBusy(true)
	defer vs.Payments.SetActionBusy(false)

	payment, err := client.UpdatePayment(c.Request.Context(), id, patch)
	if err != nil {
		upstreamError(c, err)
		return
	}

	_ = vs.Payments.Refresh(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"payment": payment})
}

func (h HandlerSet) UpdatePaymentStatus(c *gin.Context) {
	client, sess, ok := h.bound(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req paymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vs := h.views.For(sess.ID, client)
	vs.Payments.SetActionBusy(true)
	defer vs.Payments.SetActionBusy(false)

	payment, err := client.UpdatePaymentStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		upstreamError(c, err)
		return
	}

	_ = vs.Payments.Refresh(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"payment": payment})
}

func (h HandlerSet) DeletePayment(c *gin.Context) {
	client, sess, ok := h.bound(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	vs := h.views.For(sess.ID, client)
	vs.Payments.SetActionBusy(true)
	defer vs.Payments.SetActionBusy(false)

	if err := client.DeletePayment(c.Request.Context(), id); err != nil {
		upstreamError(c, err)
		return
	}

	// the current page may come back short; that is left to the next
	// page change, same as the table behaves
	_ = vs.Payments.Refresh(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "payment deleted"})
}
