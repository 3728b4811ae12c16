package repository

import (
	"errors"
	"sync"

	"github.com/Dan9191/bank-ledger/internal/models"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountExists   = errors.New("account already exists")
)

// Repository provides in-memory account storage.
// All reads hand out copies; stored accounts are only changed under mu.
type Repository struct {
	mu       sync.RWMutex
	accounts map[string]*models.Account
	order    []string
}

// NewRepository initializes an empty repository
func NewRepository() *Repository {
	return &Repository{accounts: make(map[string]*models.Account)}
}

// CreateAccount stores a copy of account under its account number
func (r *Repository) CreateAccount(account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[account.AccountNumber]; ok {
		return ErrAccountExists
	}
	r.accounts[account.AccountNumber] = account.Clone()
	r.order = append(r.order, account.AccountNumber)
	return nil
}

// FindAccount retrieves an account by number
func (r *Repository) FindAccount(number string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.accounts[number]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return a.Clone(), nil
}

// ListAccounts returns all accounts in insertion order
func (r *Repository) ListAccounts() []*models.Account {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Account, 0, len(r.order))
	for _, number := range r.order {
		out = append(out, r.accounts[number].Clone())
	}
	return out
}

// UpdateAccount applies fn to a working copy of the account and commits the
// copy only when fn succeeds. The write lock is held for the whole call, so
// fn must not call back into the repository.
func (r *Repository) UpdateAccount(number string, fn func(*models.Account) error) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[number]
	if !ok {
		return nil, ErrAccountNotFound
	}
	working := a.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	r.accounts[number] = working
	return working.Clone(), nil
}

// Count returns the number of stored accounts
func (r *Repository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
