package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Dan9191/bank-ledger/internal/service"
	"github.com/Dan9191/bank-ledger/internal/utils/email"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorResponse{Error: msg})
}

// statusFor maps ledger errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrDuplicateAccount), errors.Is(err, service.ErrInsufficientFunds):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidAmount), errors.Is(err, service.ErrMissingField),
		errors.Is(err, service.ErrInvalidAccountType), errors.Is(err, email.ErrNoRecipient):
		return http.StatusBadRequest
	case errors.Is(err, email.ErrMailDisabled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
