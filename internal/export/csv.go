// Package export renders the reconciliation result for spreadsheet
// consumption.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ledgermatch/ledgermatch/internal/domain/ledger"
)

const csvHeader = "DATA;CONCILIADO;VALOR;NF;DOC;CLIENTE;DESCRICAO;ARQUIVO"

// WriteCSV writes the bank collection as a semicolon-separated report,
// one line per transaction in collection order. Downstream sheets key
// on this exact column set.
func WriteCSV(w io.Writer, txns []*ledger.BankTransaction) error {
	if _, err := fmt.Fprintln(w, csvHeader); err != nil {
		return err
	}
	for _, t := range txns {
		reconciled := "N"
		if t.Reconciled {
			reconciled = "S"
		}
		line := strings.Join([]string{
			ledger.ISODate(t.Date),
			reconciled,
			t.Amount.StringFixed(2),
			strings.Join(t.InvoiceNumbers, ", "),
			sanitize(t.Counterparty.Document),
			sanitize(t.Counterparty.Name),
			sanitize(t.Description),
			t.SourceFile,
		}, ";")
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// FileName is the suggested download name for an export taken at t.
func FileName(t time.Time) string {
	return "conciliado_" + t.Format("2006-01-02") + ".csv"
}

// sanitize keeps free-text fields from breaking the column layout.
func sanitize(s string) string {
	return strings.ReplaceAll(s, ";", ",")
}
