package upstream

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"ctlfx/console/internal/models"
)

type PaymentInput struct {
	UserID          int        `json:"userId"`
	Amount          float64    `json:"amount"`
	Type            string     `json:"type"`
	Method          *string    `json:"method,omitempty"`
	Status          string     `json:"status"`
	ReferenceNumber *string    `json:"referenceNumber,omitempty"`
	Description     *string    `json:"description,omitempty"`
	TransactionDate *time.Time `json:"transactionDate,omitempty"`
}

func (c *Client) Payments(ctx context.Context, q ListQuery) (Collection[models.Payment], error) {
	env, err := c.do(ctx, http.MethodGet, "/payments", q.values(), nil)
	if err != nil {
		return Collection[models.Payment]{Items: []models.Payment{}}, err
	}
	return collect[models.Payment](env, "payments"), nil
}

func (c *Client) PaymentsByUser(ctx context.Context, userID int, q ListQuery) (Collection[models.Payment], error) {
	env, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/payments/user/%d", userID), q.values(), nil)
	if err != nil {
		return Collection[models.Payment]{Items: []models.Payment{}}, err
	}
	return collect[models.Payment](env, "payments"), nil
}

// PaymentByID returns nil on any failure; absence is a valid state.
func (c *Client) PaymentByID(ctx context.Context, id int) *models.Payment {
	env, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/payments/%d", id), nil, nil)
	if err != nil {
		return nil
	}
	return entity[models.Payment](env, "payment")
}

func (c *Client) CreatePayment(ctx context.Context, in PaymentInput) (*models.Payment, error) {
	env, err := c.do(ctx, http.MethodPost, "/payments", nil, in)
	if err != nil {
		return nil, err
	}
	if env.absent() {
		return nil, &Error{Kind: KindInvalidResponse, MessageField: "invalid server response"}
	}
	return entity[models.Payment](env, "payment"), nil
}

func (c *Client) UpdatePayment(ctx context.Context, id int, patch map[string]any) (*models.Payment, error) {
	env, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/payments/%d", id), nil, patch)
	if err != nil {
		return nil, err
	}
	if env.absent() {
		return nil, &Error{Kind: KindInvalidResponse, MessageField: "invalid server response"}
	}
	return entity[models.Payment](env, "payment"), nil
}

// UpdatePaymentStatus requests a status transition; the transition rules
// themselves live upstream.
func (c *Client) UpdatePaymentStatus(ctx context.Context, id int, status string) (*models.Payment, error) {
	env, err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/payments/%d/status", id), nil, map[string]string{"status": status})
	if err != nil {
		return nil, err
	}
	if env.absent() {
		return nil, &Error{Kind: KindInvalidResponse, MessageField: "invalid server response"}
	}
	return entity[models.Payment](env, "payment"), nil
}

func (c *Client) DeletePayment(ctx context.Context, id int) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/payments/%d", id), nil, nil)
	return err
}
