package service

import (
	"errors"

	"github.com/Dan9191/bank-ledger/internal/models"
)

// Domain errors returned by Service. All of them are recoverable and leave
// the ledger unchanged.
var (
	ErrDuplicateAccount   = errors.New("account number already exists")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrMissingField       = errors.New("missing required field")
	ErrInvalidAccountType = models.ErrInvalidAccountType
)
