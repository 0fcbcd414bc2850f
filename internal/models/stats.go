package models

import "time"

// DashboardStats is a read-only aggregate snapshot from the upstream.
type DashboardStats struct {
	Users struct {
		Active  int `json:"active"`
		Deleted int `json:"deleted"`
	} `json:"users"`
	Financials struct {
		TotalDeposits    float64 `json:"totalDeposits"`
		TotalWithdrawals float64 `json:"totalWithdrawals"`
	} `json:"financials"`
	Pending struct {
		Deposits    int `json:"deposits"`
		Withdrawals int `json:"withdrawals"`
	} `json:"pending"`
}

type AccountBalance struct {
	Balance float64 `json:"balance"`
}

type Transaction struct {
	ID              int       `json:"id"`
	Amount          float64   `json:"amount"`
	Type            string    `json:"type"`
	Status          string    `json:"status"`
	Description     *string   `json:"description"`
	TransactionDate time.Time `json:"transactionDate"`
}
