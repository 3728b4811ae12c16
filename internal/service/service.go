package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Dan9191/bank-ledger/internal/models"
	"github.com/Dan9191/bank-ledger/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	amountPlaces      = 2
	maxScale          = 8
	maxAmountExponent = 12
)

// MaxAmount is the largest amount accepted for a single deposit, withdrawal
// or initial balance
var MaxAmount = decimal.New(1, maxAmountExponent)

// Service handles ledger business logic
type Service struct {
	repo  *repository.Repository
	log   *logrus.Logger
	now   func() time.Time
	newID func() string
}

// NewService initializes a new service
func NewService(repo *repository.Repository, log *logrus.Logger) *Service {
	return &Service{
		repo:  repo,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// CreateAccount opens an account and records its initial balance as the
// first transaction. The initial balance may be zero but not negative.
func (s *Service) CreateAccount(number, holder string, initialBalance decimal.Decimal, accountType models.AccountType) (*models.Account, error) {
	if strings.TrimSpace(number) == "" {
		return nil, fmt.Errorf("%w: account number", ErrMissingField)
	}
	if strings.TrimSpace(holder) == "" {
		return nil, fmt.Errorf("%w: account holder", ErrMissingField)
	}
	if !accountType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAccountType, accountType)
	}
	if err := checkAmount(initialBalance); err != nil {
		return nil, err
	}
	if initialBalance.IsNegative() {
		return nil, fmt.Errorf("%w: initial balance cannot be negative", ErrInvalidAmount)
	}

	now := s.now()
	account := &models.Account{
		AccountNumber: number,
		AccountHolder: holder,
		Balance:       initialBalance,
		AccountType:   accountType,
		CreatedDate:   now,
	}
	s.appendTransaction(account, models.TransactionCreated, initialBalance,
		fmt.Sprintf("Account created with initial balance: $%s", initialBalance.StringFixed(2)), now)

	if err := s.repo.CreateAccount(account); err != nil {
		if errors.Is(err, repository.ErrAccountExists) {
			s.log.WithField("account", number).Warn("Account creation rejected: duplicate account number")
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAccount, number)
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.log.Infof("Account created: %s (%s, %s) with balance %s", number, holder, accountType, initialBalance.StringFixed(2))
	return account.Clone(), nil
}

// GetAccount returns a snapshot of the account
func (s *Service) GetAccount(number string) (*models.Account, error) {
	account, err := s.repo.FindAccount(number)
	if err != nil {
		return nil, s.translate(err, number)
	}
	return account, nil
}

// AccountCount returns the number of open accounts
func (s *Service) AccountCount() int {
	return s.repo.Count()
}

// GetAllAccounts returns snapshots of all accounts in creation order
func (s *Service) GetAllAccounts() []*models.Account {
	return s.repo.ListAccounts()
}

// SearchAccounts returns accounts whose number or holder contains term,
// ignoring case. An empty term matches every account.
func (s *Service) SearchAccounts(term string) []*models.Account {
	accounts := s.repo.ListAccounts()
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return accounts
	}
	out := make([]*models.Account, 0, len(accounts))
	for _, a := range accounts {
		if strings.Contains(strings.ToLower(a.AccountNumber), term) ||
			strings.Contains(strings.ToLower(a.AccountHolder), term) {
			out = append(out, a)
		}
	}
	return out
}

// DefaultRecentAccounts is the number of accounts NewestFirst keeps when
// no limit is given
const DefaultRecentAccounts = 5

// NewestFirst orders accounts by creation date, newest first, and keeps at
// most limit of them. Accounts created at the same instant keep the most
// recently inserted one first.
func NewestFirst(accounts []*models.Account, limit int) []*models.Account {
	if limit <= 0 {
		limit = DefaultRecentAccounts
	}
	out := make([]*models.Account, len(accounts))
	for i, a := range accounts {
		out[len(accounts)-1-i] = a
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedDate.After(out[j].CreatedDate)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// GetTransactions returns the account's transaction history, oldest first
func (s *Service) GetTransactions(number string) ([]models.Transaction, error) {
	account, err := s.GetAccount(number)
	if err != nil {
		return nil, err
	}
	return account.TransactionHistory, nil
}

// Deposit credits a positive amount to the account
func (s *Service) Deposit(number string, amount decimal.Decimal) (*models.Account, error) {
	if err := checkAmount(amount); err != nil {
		s.log.WithField("account", number).Warnf("Deposit rejected: %v", err)
		return nil, err
	}
	if !amount.IsPositive() {
		s.log.WithFields(logrus.Fields{"account": number, "amount": amount.String()}).Warn("Deposit rejected: non-positive amount")
		return nil, fmt.Errorf("%w: deposit must be greater than zero", ErrInvalidAmount)
	}

	account, err := s.repo.UpdateAccount(number, func(a *models.Account) error {
		a.Balance = a.Balance.Add(amount)
		s.appendTransaction(a, models.TransactionDeposit, amount,
			fmt.Sprintf("Deposited: $%s", amount.StringFixed(2)), s.now())
		return nil
	})
	if err != nil {
		return nil, s.translate(err, number)
	}

	s.log.Infof("Deposit to %s: %s, balance %s", number, amount.StringFixed(2), account.Balance.StringFixed(2))
	return account, nil
}

// Withdraw debits a positive amount from the account. The balance may reach
// zero but never goes below it.
func (s *Service) Withdraw(number string, amount decimal.Decimal) (*models.Account, error) {
	if err := checkAmount(amount); err != nil {
		s.log.WithField("account", number).Warnf("Withdrawal rejected: %v", err)
		return nil, err
	}
	if !amount.IsPositive() {
		s.log.WithFields(logrus.Fields{"account": number, "amount": amount.String()}).Warn("Withdrawal rejected: non-positive amount")
		return nil, fmt.Errorf("%w: withdrawal must be greater than zero", ErrInvalidAmount)
	}

	account, err := s.repo.UpdateAccount(number, func(a *models.Account) error {
		if amount.GreaterThan(a.Balance) {
			return fmt.Errorf("%w: balance %s, requested %s", ErrInsufficientFunds, a.Balance.StringFixed(2), amount.StringFixed(2))
		}
		a.Balance = a.Balance.Sub(amount)
		s.appendTransaction(a, models.TransactionWithdrawal, amount,
			fmt.Sprintf("Withdrawn: $%s", amount.StringFixed(2)), s.now())
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientFunds) {
			s.log.WithFields(logrus.Fields{"account": number, "amount": amount.String()}).Warn("Withdrawal rejected: insufficient funds")
			return nil, err
		}
		return nil, s.translate(err, number)
	}

	s.log.Infof("Withdrawal from %s: %s, balance %s", number, amount.StringFixed(2), account.Balance.StringFixed(2))
	return account, nil
}

// GetStats computes aggregate statistics over the current accounts
func (s *Service) GetStats() models.BankStats {
	return computeStats(s.repo.ListAccounts())
}

func computeStats(accounts []*models.Account) models.BankStats {
	stats := models.BankStats{TotalBalance: decimal.Zero}
	for _, a := range accounts {
		stats.TotalAccounts++
		stats.TotalBalance = stats.TotalBalance.Add(a.Balance)
		switch a.AccountType {
		case models.Savings:
			stats.SavingsAccounts++
		case models.Checking:
			stats.CheckingAccounts++
		case models.Business:
			stats.BusinessAccounts++
		}
	}
	return stats
}

// appendTransaction records an event using the account's current balance as
// the balance after it
func (s *Service) appendTransaction(a *models.Account, typ models.TransactionType, amount decimal.Decimal, description string, at time.Time) {
	a.TransactionHistory = append(a.TransactionHistory, models.Transaction{
		ID:           s.newID(),
		Timestamp:    at,
		Type:         typ,
		Amount:       amount,
		Description:  description,
		BalanceAfter: a.Balance,
	})
}

// checkAmount bounds the scale and magnitude of a money amount. The exponent
// check must run before any arithmetic on amount.
func checkAmount(amount decimal.Decimal) error {
	if exp := amount.Exponent(); exp < -maxScale || exp > maxAmountExponent {
		return fmt.Errorf("%w: amount out of range", ErrInvalidAmount)
	}
	if !amount.Round(amountPlaces).Equal(amount) {
		return fmt.Errorf("%w: at most %d decimal places allowed", ErrInvalidAmount, amountPlaces)
	}
	if amount.Abs().GreaterThan(MaxAmount) {
		return fmt.Errorf("%w: amount exceeds %s", ErrInvalidAmount, MaxAmount.StringFixed(amountPlaces))
	}
	return nil
}

func (s *Service) translate(err error, number string) error {
	if errors.Is(err, repository.ErrAccountNotFound) {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, number)
	}
	return err
}
