package email

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Dan9191/bank-ledger/internal/config"
	"github.com/Dan9191/bank-ledger/internal/models"
	"github.com/shopspring/decimal"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

func testAccount() *models.Account {
	at := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	return &models.Account{
		AccountNumber: "ACC100",
		AccountHolder: "Test User",
		AccountType:   models.Checking,
		Balance:       decimal.RequireFromString("1250"),
		CreatedDate:   at,
		TransactionHistory: []models.Transaction{
			{ID: "t1", Timestamp: at, Type: models.TransactionCreated, Amount: decimal.NewFromInt(1000), BalanceAfter: decimal.NewFromInt(1000), Description: "Account created with initial balance: $1000.00"},
			{ID: "t2", Timestamp: at, Type: models.TransactionDeposit, Amount: decimal.NewFromInt(250), BalanceAfter: decimal.NewFromInt(1250), Description: "Deposited: $250.00"},
		},
	}
}

func newTestSender(cfg *config.Config) *Sender {
	logger, _ := logtest.NewNullLogger()
	s := NewSender(cfg, logger)
	s.now = func() time.Time { return time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC) }
	return s
}

func TestBuildStatement(t *testing.T) {
	s := newTestSender(&config.Config{SenderEmail: "bank@example.com"})
	e, err := s.BuildStatement(" user@example.com ", testAccount())
	if err != nil {
		t.Fatal(err)
	}
	if e.From != "bank@example.com" || len(e.To) != 1 || e.To[0] != "user@example.com" {
		t.Fatalf("bad envelope: from=%q to=%v", e.From, e.To)
	}
	if e.Subject != "Account Statement ACC100" {
		t.Fatalf("subject=%q", e.Subject)
	}
	body := string(e.Text)
	for _, want := range []string{"Dear Test User", "Checking account ACC100", "Deposited: $250.00", "Current balance: $1250.00"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q:\n%s", want, body)
		}
	}
	if len(e.Attachments) != 1 || e.Attachments[0].Filename != "statement-ACC100.xml" {
		t.Fatalf("attachments=%+v", e.Attachments)
	}
	if !strings.Contains(string(e.Attachments[0].Content), `<statement account="ACC100">`) {
		t.Fatalf("attachment content:\n%s", e.Attachments[0].Content)
	}
}

func TestRenderStatement(t *testing.T) {
	s := newTestSender(&config.Config{SenderEmail: "bank@example.com"})
	raw, err := s.RenderStatement("user@example.com", testAccount())
	if err != nil {
		t.Fatal(err)
	}
	msg := string(raw)
	for _, want := range []string{"Subject: Account Statement ACC100", "statement-ACC100.xml"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q", want)
		}
	}

	if _, err := s.RenderStatement("  ", testAccount()); !errors.Is(err, ErrNoRecipient) {
		t.Fatalf("want ErrNoRecipient, got %v", err)
	}
}

func TestSendStatementDisabled(t *testing.T) {
	s := newTestSender(&config.Config{SenderEmail: "bank@example.com"})
	if err := s.SendStatement("user@example.com", testAccount()); !errors.Is(err, ErrMailDisabled) {
		t.Fatalf("want ErrMailDisabled, got %v", err)
	}
}
