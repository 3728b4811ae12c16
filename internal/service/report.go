package service

import (
	"sort"

	"github.com/Dan9191/bank-ledger/internal/models"
	"github.com/shopspring/decimal"
)

// DefaultTopAccounts is the number of accounts listed in a report when the
// caller does not ask for a specific number
const DefaultTopAccounts = 5

// GenerateReport builds the bank overview from a single snapshot of the
// accounts, so every figure in it agrees with the others.
func (s *Service) GenerateReport(topN int) models.Report {
	if topN <= 0 {
		topN = DefaultTopAccounts
	}
	accounts := s.repo.ListAccounts()
	stats := computeStats(accounts)

	report := models.Report{
		GeneratedAt:    s.now(),
		Stats:          stats,
		AverageBalance: decimal.Zero,
		Breakdown:      []models.TypeCount{},
		TopAccounts:    []models.AccountSummary{},
	}
	if stats.TotalAccounts > 0 {
		report.AverageBalance = stats.TotalBalance.Div(decimal.NewFromInt(int64(stats.TotalAccounts))).Round(2)
	}
	for _, t := range models.AccountTypes {
		if n := stats.CountFor(t); n > 0 {
			report.Breakdown = append(report.Breakdown, models.TypeCount{Type: t, Count: n})
		}
	}

	ranked := make([]*models.Account, len(accounts))
	copy(ranked, accounts)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Balance.GreaterThan(ranked[j].Balance)
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	for _, a := range ranked {
		report.TopAccounts = append(report.TopAccounts, models.AccountSummary{
			AccountNumber: a.AccountNumber,
			AccountHolder: a.AccountHolder,
			AccountType:   a.AccountType,
			Balance:       a.Balance,
		})
	}

	for _, a := range accounts {
		report.TotalTransactions += len(a.TransactionHistory)
	}
	return report
}
