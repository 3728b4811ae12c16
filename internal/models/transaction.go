package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a balance-affecting event
type TransactionType string

const (
	TransactionCreated    TransactionType = "created"
	TransactionDeposit    TransactionType = "deposit"
	TransactionWithdrawal TransactionType = "withdrawal"
)

// Transaction represents a financial transaction
type Transaction struct {
	ID           string          `json:"id"`
	Timestamp    time.Time       `json:"timestamp"`
	Type         TransactionType `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
}
