package email

import (
	"bytes"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/Dan9191/bank-ledger/internal/config"
	"github.com/Dan9191/bank-ledger/internal/models"
	"github.com/Dan9191/bank-ledger/internal/utils/xmlexport"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// ErrMailDisabled is returned by Send when no SMTP host is configured
var ErrMailDisabled = errors.New("statement mail is not configured")

// ErrNoRecipient is returned when a statement has no address to go to
var ErrNoRecipient = errors.New("recipient address is required")

// Sender builds account statements and sends them via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	now    func() time.Time
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// BuildStatement prepares the statement message for account, with the XML
// statement attached
func (s *Sender) BuildStatement(to string, account *models.Account) (*email.Email, error) {
	to = strings.TrimSpace(to)
	if to == "" {
		return nil, ErrNoRecipient
	}

	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Account Statement %s", account.AccountNumber)

	// Format email body
	var body strings.Builder
	fmt.Fprintf(&body, "Dear %s,\n\n", account.AccountHolder)
	fmt.Fprintf(&body, "Here is the statement of your %s account %s as of %s.\n\n",
		account.AccountType, account.AccountNumber, s.now().Format("2006-01-02 15:04:05"))
	for _, tx := range account.TransactionHistory {
		fmt.Fprintf(&body, "%s  %-10s  %12s  balance %12s  %s\n",
			tx.Timestamp.Format("2006-01-02 15:04"), tx.Type,
			tx.Amount.StringFixed(2), tx.BalanceAfter.StringFixed(2), tx.Description)
	}
	fmt.Fprintf(&body, "\nCurrent balance: $%s\n", account.Balance.StringFixed(2))
	body.WriteString("\nBest regards,\nBank Service")
	e.Text = []byte(body.String())

	statement, err := xmlexport.StatementBytes(account)
	if err != nil {
		return nil, err
	}
	if _, err := e.Attach(bytes.NewReader(statement), fmt.Sprintf("statement-%s.xml", account.AccountNumber), "application/xml"); err != nil {
		return nil, fmt.Errorf("failed to attach statement: %w", err)
	}
	return e, nil
}

// RenderStatement returns the statement as a raw RFC 5322 message
func (s *Sender) RenderStatement(to string, account *models.Account) ([]byte, error) {
	e, err := s.BuildStatement(to, account)
	if err != nil {
		return nil, err
	}
	raw, err := e.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render statement: %w", err)
	}
	return raw, nil
}

// SendStatement mails the statement of account to the given address
func (s *Sender) SendStatement(to string, account *models.Account) error {
	if !s.cfg.MailEnabled() {
		return ErrMailDisabled
	}
	e, err := s.BuildStatement(to, account)
	if err != nil {
		return err
	}

	// Send email
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send statement for %s to %s: %v", account.AccountNumber, to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
