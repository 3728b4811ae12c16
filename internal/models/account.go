package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AccountType is the product kind of an account
type AccountType string

const (
	Savings  AccountType = "Savings"
	Checking AccountType = "Checking"
	Business AccountType = "Business"
)

// AccountTypes lists every supported account type in display order
var AccountTypes = []AccountType{Savings, Checking, Business}

// ErrInvalidAccountType is returned for account types outside AccountTypes
var ErrInvalidAccountType = errors.New("invalid account type")

// ParseAccountType resolves a case-insensitive account type name
func ParseAccountType(s string) (AccountType, error) {
	s = strings.TrimSpace(s)
	for _, t := range AccountTypes {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", ErrInvalidAccountType
}

// Valid reports whether t is one of AccountTypes
func (t AccountType) Valid() bool {
	for _, at := range AccountTypes {
		if t == at {
			return true
		}
	}
	return false
}

// Account represents a bank account
type Account struct {
	AccountNumber      string          `json:"account_number"`
	AccountHolder      string          `json:"account_holder"`
	Balance            decimal.Decimal `json:"balance"`
	AccountType        AccountType     `json:"account_type"`
	CreatedDate        time.Time       `json:"created_date"`
	TransactionHistory []Transaction   `json:"transaction_history"`
}

// Clone returns a copy that shares no mutable state with a
func (a *Account) Clone() *Account {
	cp := *a
	cp.TransactionHistory = make([]Transaction, len(a.TransactionHistory))
	copy(cp.TransactionHistory, a.TransactionHistory)
	return &cp
}

// LastTransaction returns the most recent transaction, if any
func (a *Account) LastTransaction() (Transaction, bool) {
	if len(a.TransactionHistory) == 0 {
		return Transaction{}, false
	}
	return a.TransactionHistory[len(a.TransactionHistory)-1], true
}
