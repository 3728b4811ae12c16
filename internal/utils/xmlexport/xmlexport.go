// Package xmlexport renders reports and account statements as XML documents.
package xmlexport

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/Dan9191/bank-ledger/internal/models"
	"github.com/beevik/etree"
)

const moneyPlaces = 2

// ReportDocument builds the XML document for a bank report
func ReportDocument(report models.Report) *etree.Document {
	doc := newDocument()
	root := doc.CreateElement("bankReport")
	root.CreateAttr("generatedAt", report.GeneratedAt.UTC().Format(time.RFC3339))

	summary := root.CreateElement("summary")
	summary.CreateElement("totalAccounts").SetText(strconv.Itoa(report.Stats.TotalAccounts))
	summary.CreateElement("totalBalance").SetText(report.Stats.TotalBalance.StringFixed(moneyPlaces))
	summary.CreateElement("averageBalance").SetText(report.AverageBalance.StringFixed(moneyPlaces))
	summary.CreateElement("totalTransactions").SetText(strconv.Itoa(report.TotalTransactions))

	breakdown := root.CreateElement("accountTypes")
	for _, tc := range report.Breakdown {
		el := breakdown.CreateElement("accountType")
		el.CreateAttr("name", string(tc.Type))
		el.CreateAttr("count", strconv.Itoa(tc.Count))
	}

	top := root.CreateElement("topAccounts")
	for i, a := range report.TopAccounts {
		el := top.CreateElement("account")
		el.CreateAttr("rank", strconv.Itoa(i+1))
		el.CreateAttr("number", a.AccountNumber)
		el.CreateAttr("type", string(a.AccountType))
		el.CreateElement("holder").SetText(a.AccountHolder)
		el.CreateElement("balance").SetText(a.Balance.StringFixed(moneyPlaces))
	}

	doc.Indent(2)
	return doc
}

// StatementDocument builds the XML statement of one account
func StatementDocument(account *models.Account) *etree.Document {
	doc := newDocument()
	root := doc.CreateElement("statement")
	root.CreateAttr("account", account.AccountNumber)

	root.CreateElement("holder").SetText(account.AccountHolder)
	root.CreateElement("type").SetText(string(account.AccountType))
	root.CreateElement("opened").SetText(account.CreatedDate.UTC().Format(time.RFC3339))
	root.CreateElement("balance").SetText(account.Balance.StringFixed(moneyPlaces))

	txs := root.CreateElement("transactions")
	txs.CreateAttr("count", strconv.Itoa(len(account.TransactionHistory)))
	for _, tx := range account.TransactionHistory {
		el := txs.CreateElement("transaction")
		el.CreateAttr("id", tx.ID)
		el.CreateAttr("type", string(tx.Type))
		el.CreateElement("timestamp").SetText(tx.Timestamp.UTC().Format(time.RFC3339))
		el.CreateElement("amount").SetText(tx.Amount.StringFixed(moneyPlaces))
		el.CreateElement("balanceAfter").SetText(tx.BalanceAfter.StringFixed(moneyPlaces))
		el.CreateElement("description").SetText(tx.Description)
	}

	doc.Indent(2)
	return doc
}

// WriteReport writes the report XML to w
func WriteReport(w io.Writer, report models.Report) error {
	if _, err := ReportDocument(report).WriteTo(w); err != nil {
		return fmt.Errorf("failed to write report XML: %w", err)
	}
	return nil
}

// StatementBytes returns the statement XML of account
func StatementBytes(account *models.Account) ([]byte, error) {
	b, err := StatementDocument(account).WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render statement XML: %w", err)
	}
	return b, nil
}

func newDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	return doc
}
