package models

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAccountType(t *testing.T) {
	tests := []struct {
		in   string
		want AccountType
		err  error
	}{
		{"Savings", Savings, nil},
		{"checking", Checking, nil},
		{" BUSINESS ", Business, nil},
		{"Brokerage", "", ErrInvalidAccountType},
		{"", "", ErrInvalidAccountType},
	}
	for _, tt := range tests {
		got, err := ParseAccountType(tt.in)
		if !errors.Is(err, tt.err) {
			t.Fatalf("ParseAccountType(%q) err=%v want %v", tt.in, err, tt.err)
		}
		if got != tt.want {
			t.Fatalf("ParseAccountType(%q)=%q want %q", tt.in, got, tt.want)
		}
	}
}

func TestAccountTypeValid(t *testing.T) {
	if !Checking.Valid() {
		t.Fatal("Checking should be valid")
	}
	if AccountType("checking").Valid() {
		t.Fatal("lower-case literal is not a valid type")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	a := &Account{
		AccountNumber: "ACC1",
		Balance:       decimal.NewFromInt(10),
		TransactionHistory: []Transaction{
			{ID: "t1", Type: TransactionCreated, Amount: decimal.NewFromInt(10), BalanceAfter: decimal.NewFromInt(10)},
		},
	}
	cp := a.Clone()
	cp.Balance = decimal.Zero
	cp.TransactionHistory[0].Description = "changed"
	cp.TransactionHistory = append(cp.TransactionHistory, Transaction{ID: "t2"})

	if !a.Balance.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("original balance changed: %s", a.Balance)
	}
	if len(a.TransactionHistory) != 1 || a.TransactionHistory[0].Description != "" {
		t.Fatalf("original history changed: %+v", a.TransactionHistory)
	}
	last, ok := a.LastTransaction()
	if !ok || last.ID != "t1" {
		t.Fatalf("LastTransaction=%+v ok=%v", last, ok)
	}
}

func TestBankStatsCountFor(t *testing.T) {
	s := BankStats{SavingsAccounts: 2, CheckingAccounts: 1}
	if s.CountFor(Savings) != 2 || s.CountFor(Checking) != 1 || s.CountFor(Business) != 0 {
		t.Fatalf("unexpected counts: %+v", s)
	}
}
