// Package ledger defines the normalized record model shared by every
// component: bank statement transactions on one side, internal system
// ledger entries on the other.
package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgermatch/ledgermatch/internal/domain/category"
)

// Direction tells whether a report file holds money coming in or going
// out. It is decided once per source document, not per row.
type Direction string

const (
	Inflow  Direction = "inflow"
	Outflow Direction = "outflow"
)

const (
	// ManualBankIDPrefix marks placeholder bank transactions
	// synthesized by a manual reconciliation. Cancelling the pairing
	// deletes them outright.
	ManualBankIDPrefix = "MANUAL_"

	// ManualBankSource is the source-file label of synthesized
	// placeholder bank transactions.
	ManualBankSource = "MANUAL"

	// ManualEntryIDPrefix marks ledger entries typed in by hand.
	ManualEntryIDPrefix = "manual_"

	// ManualEntrySource is the source-file label of hand-typed
	// ledger entries.
	ManualEntrySource = "manual"
)

// Counterparty carries the ledger-side fields copied onto a bank
// transaction when a pairing is committed. It is empty until then.
type Counterparty struct {
	Name     string
	Document string
	Type     string
	Date     time.Time
}

// BankTransaction is one posted movement from a bank statement file.
// A zero Date means the statement block carried no parseable date.
//
// Invariant: Reconciled == true exactly when PairKey != "".
type BankTransaction struct {
	ID          string
	SourceFile  string
	BankCode    string
	BankName    string
	Date        time.Time
	Amount      decimal.Decimal // negative = outflow
	Description string
	PaymentType category.PaymentType
	Reconciled  bool
	Disabled    bool
	PairKey     string

	// Populated only by a committed pairing.
	InvoiceNumbers []string
	Counterparty   Counterparty
}

// LedgerEntry is one row reconstructed from the internal system's
// positional report.
//
// Invariant: Reconciled == true exactly when PairKey != "".
type LedgerEntry struct {
	ID            string
	SourceFile    string
	Direction     Direction
	Client        string
	Document      string
	Amount        decimal.Decimal // sign applied at extraction time
	Date          time.Time
	InvoiceNumber string
	Salesperson   string
	RawType       string
	Reconciled    bool
	Disabled      bool
	PairKey       string
}

// Category classifies the entry's free-text type field.
func (e *LedgerEntry) Category() category.PaymentType {
	return category.ClassifyLedger(e.RawType)
}

// IsManual reports whether the entry was typed in by hand rather than
// extracted from a report file.
func (e *LedgerEntry) IsManual() bool {
	return strings.HasPrefix(e.ID, ManualEntryIDPrefix)
}

// IsManualPlaceholder reports whether the transaction was synthesized
// by a manual reconciliation.
func (t *BankTransaction) IsManualPlaceholder() bool {
	return strings.HasPrefix(t.ID, ManualBankIDPrefix)
}

// ISODate formats a date as YYYY-MM-DD, or "" for the zero time.
func ISODate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// ParseISODate parses a YYYY-MM-DD date string.
func ParseISODate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(s))
}

// SameDay reports whether two dates fall on the same calendar day.
// The zero time never matches anything, itself included.
func SameDay(a, b time.Time) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// NormalizeFileName is the comparison form of an imported file name.
func NormalizeFileName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// DupKey is the literal field tuple used to suppress duplicates when
// re-importing overlapping statement extracts.
func (t *BankTransaction) DupKey() string {
	return strings.Join([]string{
		ISODate(t.Date),
		t.Amount.String(),
		t.Description,
		string(t.PaymentType),
		t.BankCode,
		t.BankName,
	}, "\x1f")
}

// DupKey is the literal field tuple used to suppress duplicates when
// re-importing overlapping report extracts.
func (e *LedgerEntry) DupKey() string {
	return strings.Join([]string{
		ISODate(e.Date),
		e.Amount.String(),
		e.Client,
		e.RawType,
		e.Document,
		e.InvoiceNumber,
	}, "\x1f")
}
