package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Dan9191/bank-ledger/internal/models"
	"github.com/Dan9191/bank-ledger/internal/service"
	"github.com/Dan9191/bank-ledger/internal/utils/email"
	"github.com/Dan9191/bank-ledger/internal/utils/xmlexport"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	svc  *service.Service
	mail *email.Sender
	log  *logrus.Logger
	topN int
}

func NewHandler(svc *service.Service, mail *email.Sender, log *logrus.Logger, topN int) *Handler {
	return &Handler{svc: svc, mail: mail, log: log, topN: topN}
}

// Routes registers all ledger endpoints on r
func (h *Handler) Routes(r *mux.Router) {
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/accounts", h.CreateAccount).Methods(http.MethodPost)
	r.HandleFunc("/accounts", h.ListAccounts).Methods(http.MethodGet)
	r.HandleFunc("/accounts/{number}", h.GetAccount).Methods(http.MethodGet)
	r.HandleFunc("/accounts/{number}/transactions", h.Transactions).Methods(http.MethodGet)
	r.HandleFunc("/accounts/{number}/deposit", h.Deposit).Methods(http.MethodPost)
	r.HandleFunc("/accounts/{number}/withdraw", h.Withdraw).Methods(http.MethodPost)
	r.HandleFunc("/accounts/{number}/statement", h.PreviewStatement).Methods(http.MethodGet)
	r.HandleFunc("/accounts/{number}/statement", h.SendStatement).Methods(http.MethodPost)
	r.HandleFunc("/stats", h.Stats).Methods(http.MethodGet)
	r.HandleFunc("/reports", h.Report).Methods(http.MethodGet)
	r.HandleFunc("/reports/export", h.ExportReport).Methods(http.MethodGet)
}

// Health reports liveness and the number of open accounts
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "accounts": h.svc.AccountCount()})
}

type createAccountRequest struct {
	AccountNumber  string          `json:"account_number"`
	AccountHolder  string          `json:"account_holder"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	AccountType    string          `json:"account_type"`
}

type amountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type statementRequest struct {
	Email string `json:"email"`
}

// CreateAccount handles account creation
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	accountType, err := models.ParseAccountType(req.AccountType)
	if err != nil {
		h.fail(w, err)
		return
	}
	account, err := h.svc.CreateAccount(req.AccountNumber, req.AccountHolder, req.InitialBalance, accountType)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

// ListAccounts lists accounts, optionally filtered by the q query parameter.
// sort=recent returns the newest accounts first, at most limit of them.
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	accounts := h.svc.SearchAccounts(query.Get("q"))
	switch query.Get("sort") {
	case "":
	case "recent":
		limit, err := positiveParam(query.Get("limit"), service.DefaultRecentAccounts, "limit")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		accounts = service.NewestFirst(accounts, limit)
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown sort %q", query.Get("sort")))
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

// GetAccount returns one account with its history
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	account, err := h.svc.GetAccount(mux.Vars(r)["number"])
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

// Transactions returns an account's transaction history
func (h *Handler) Transactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.svc.GetTransactions(mux.Vars(r)["number"])
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txs)
}

// Deposit handles deposits
func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	account, err := h.svc.Deposit(mux.Vars(r)["number"], req.Amount)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

// Withdraw handles withdrawals
func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	account, err := h.svc.Withdraw(mux.Vars(r)["number"], req.Amount)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

// PreviewStatement returns the statement e-mail as a raw message
func (h *Handler) PreviewStatement(w http.ResponseWriter, r *http.Request) {
	account, err := h.svc.GetAccount(mux.Vars(r)["number"])
	if err != nil {
		h.fail(w, err)
		return
	}
	raw, err := h.mail.RenderStatement(r.URL.Query().Get("to"), account)
	if err != nil {
		h.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "message/rfc822")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="statement-%s.eml"`, account.AccountNumber))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

// SendStatement mails the statement to the address in the request body
func (h *Handler) SendStatement(w http.ResponseWriter, r *http.Request) {
	var req statementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	account, err := h.svc.GetAccount(mux.Vars(r)["number"])
	if err != nil {
		h.fail(w, err)
		return
	}
	if err := h.mail.SendStatement(req.Email, account); err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}

// Stats returns aggregate bank statistics
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.GetStats())
}

// Report returns the bank overview report
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	topN, err := h.topParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.svc.GenerateReport(topN))
}

// ExportReport returns the bank overview report as an XML download
func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	topN, err := h.topParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	report := h.svc.GenerateReport(topN)
	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="bank-report-%s.xml"`, report.GeneratedAt.Format("20060102-150405")))
	if err := xmlexport.WriteReport(w, report); err != nil {
		h.log.Errorf("Failed to export report: %v", err)
	}
}

func (h *Handler) topParam(r *http.Request) (int, error) {
	return positiveParam(r.URL.Query().Get("top"), h.topN, "top")
}

func positiveParam(raw string, def int, name string) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return n, nil
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		h.log.Errorf("Request failed: %v", err)
	}
	writeError(w, code, err.Error())
}
