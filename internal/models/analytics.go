package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankStats represents aggregate figures over all accounts
type BankStats struct {
	TotalAccounts    int             `json:"total_accounts"`
	TotalBalance     decimal.Decimal `json:"total_balance"`
	SavingsAccounts  int             `json:"savings_accounts"`
	CheckingAccounts int             `json:"checking_accounts"`
	BusinessAccounts int             `json:"business_accounts"`
}

// CountFor returns the number of accounts of type t
func (s BankStats) CountFor(t AccountType) int {
	switch t {
	case Savings:
		return s.SavingsAccounts
	case Checking:
		return s.CheckingAccounts
	case Business:
		return s.BusinessAccounts
	}
	return 0
}

// TypeCount is one row of the account type breakdown
type TypeCount struct {
	Type  AccountType `json:"type"`
	Count int         `json:"count"`
}

// AccountSummary is an account without its history
type AccountSummary struct {
	AccountNumber string          `json:"account_number"`
	AccountHolder string          `json:"account_holder"`
	AccountType   AccountType     `json:"account_type"`
	Balance       decimal.Decimal `json:"balance"`
}

// Report represents the bank overview report
type Report struct {
	GeneratedAt       time.Time        `json:"generated_at"`
	Stats             BankStats        `json:"stats"`
	AverageBalance    decimal.Decimal  `json:"average_balance"`
	Breakdown         []TypeCount      `json:"breakdown"`
	TopAccounts       []AccountSummary `json:"top_accounts"`
	TotalTransactions int              `json:"total_transactions"`
}
