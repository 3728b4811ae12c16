package service

import (
	"fmt"

	"github.com/Dan9191/bank-ledger/internal/models"
	"github.com/shopspring/decimal"
)

type sampleAccount struct {
	number  string
	holder  string
	balance int64
	typ     models.AccountType
}

var sampleAccounts = []sampleAccount{
	{"ACC001", "John Smith", 5000, models.Savings},
	{"ACC002", "Jane Doe", 3500, models.Checking},
	{"ACC003", "Bob Johnson", 10000, models.Business},
	{"ACC004", "Alice Williams", 2500, models.Savings},
}

// LoadSampleData seeds demo accounts and a few transactions on them
func (s *Service) LoadSampleData() error {
	for _, acc := range sampleAccounts {
		if _, err := s.CreateAccount(acc.number, acc.holder, decimal.NewFromInt(acc.balance), acc.typ); err != nil {
			return fmt.Errorf("failed to seed account %s: %w", acc.number, err)
		}
	}

	steps := []struct {
		number  string
		amount  int64
		deposit bool
	}{
		{"ACC001", 500, true},
		{"ACC001", 200, false},
		{"ACC002", 1000, true},
		{"ACC003", 500, false},
	}
	for _, st := range steps {
		var err error
		if st.deposit {
			_, err = s.Deposit(st.number, decimal.NewFromInt(st.amount))
		} else {
			_, err = s.Withdraw(st.number, decimal.NewFromInt(st.amount))
		}
		if err != nil {
			return fmt.Errorf("failed to seed transaction on %s: %w", st.number, err)
		}
	}

	s.log.Infof("Sample data loaded: %d accounts", len(sampleAccounts))
	return nil
}
