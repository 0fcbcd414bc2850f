package models

import "time"

type PaymentType string

const (
	PaymentTypeDeposit    PaymentType = "deposit"
	PaymentTypeWithdrawal PaymentType = "withdrawal"
	PaymentTypeRefund     PaymentType = "refund"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Payment is a money movement owned by the upstream backend. Status
// transitions happen upstream; the console only requests a new value.
type Payment struct {
	ID              int           `json:"id"`
	UserID          int           `json:"userId"`
	Amount          float64       `json:"amount"`
	Type            PaymentType   `json:"type"`
	Method          *string       `json:"method"`
	Status          PaymentStatus `json:"status"`
	ReferenceNumber *string       `json:"referenceNumber"`
	Description     *string       `json:"description"`
	TransactionDate time.Time     `json:"transactionDate"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}
