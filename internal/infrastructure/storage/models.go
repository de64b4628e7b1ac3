package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgermatch/ledgermatch/internal/domain/category"
	"github.com/ledgermatch/ledgermatch/internal/domain/ledger"
)

// bankRow is the flat database shape of a bank transaction.
type bankRow struct {
	ID             string
	SourceFile     string
	BankCode       string
	BankName       string
	Date           string
	Amount         string
	Description    string
	PaymentType    string
	Reconciled     bool
	Disabled       bool
	PairKey        string
	InvoiceNumbers string // JSON array
	CpName         string
	CpDocument     string
	CpType         string
	CpDate         string
}

func toBankRow(t *ledger.BankTransaction) (bankRow, error) {
	invoices, err := json.Marshal(orEmpty(t.InvoiceNumbers))
	if err != nil {
		return bankRow{}, fmt.Errorf("marshaling invoice numbers of %s: %w", t.ID, err)
	}
	return bankRow{
		ID:             t.ID,
		SourceFile:     t.SourceFile,
		BankCode:       t.BankCode,
		BankName:       t.BankName,
		Date:           ledger.ISODate(t.Date),
		Amount:         t.Amount.String(),
		Description:    t.Description,
		PaymentType:    string(t.PaymentType),
		Reconciled:     t.Reconciled,
		Disabled:       t.Disabled,
		PairKey:        t.PairKey,
		InvoiceNumbers: string(invoices),
		CpName:         t.Counterparty.Name,
		CpDocument:     t.Counterparty.Document,
		CpType:         t.Counterparty.Type,
		CpDate:         ledger.ISODate(t.Counterparty.Date),
	}, nil
}

func (r bankRow) toDomain() (*ledger.BankTransaction, error) {
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return nil, fmt.Errorf("bad amount %q on bank transaction %s: %w", r.Amount, r.ID, err)
	}

	var invoices []string
	if r.InvoiceNumbers != "" {
		if err := json.Unmarshal([]byte(r.InvoiceNumbers), &invoices); err != nil {
			return nil, fmt.Errorf("bad invoice list on bank transaction %s: %w", r.ID, err)
		}
	}
	if len(invoices) == 0 {
		invoices = nil
	}

	return &ledger.BankTransaction{
		ID:             r.ID,
		SourceFile:     r.SourceFile,
		BankCode:       r.BankCode,
		BankName:       r.BankName,
		Date:           parseDate(r.Date),
		Amount:         amount,
		Description:    r.Description,
		PaymentType:    category.PaymentType(r.PaymentType),
		Reconciled:     r.Reconciled,
		Disabled:       r.Disabled,
		PairKey:        r.PairKey,
		InvoiceNumbers: invoices,
		Counterparty: ledger.Counterparty{
			Name:     r.CpName,
			Document: r.CpDocument,
			Type:     r.CpType,
			Date:     parseDate(r.CpDate),
		},
	}, nil
}

// entryRow is the flat database shape of a ledger entry.
type entryRow struct {
	ID            string
	SourceFile    string
	Direction     string
	Client        string
	Document      string
	Amount        string
	Date          string
	InvoiceNumber string
	Salesperson   string
	RawType       string
	Reconciled    bool
	Disabled      bool
	PairKey       string
}

func toEntryRow(e *ledger.LedgerEntry) entryRow {
	return entryRow{
		ID:            e.ID,
		SourceFile:    e.SourceFile,
		Direction:     string(e.Direction),
		Client:        e.Client,
		Document:      e.Document,
		Amount:        e.Amount.String(),
		Date:          ledger.ISODate(e.Date),
		InvoiceNumber: e.InvoiceNumber,
		Salesperson:   e.Salesperson,
		RawType:       e.RawType,
		Reconciled:    e.Reconciled,
		Disabled:      e.Disabled,
		PairKey:       e.PairKey,
	}
}

func (r entryRow) toDomain() (*ledger.LedgerEntry, error) {
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return nil, fmt.Errorf("bad amount %q on ledger entry %s: %w", r.Amount, r.ID, err)
	}
	return &ledger.LedgerEntry{
		ID:            r.ID,
		SourceFile:    r.SourceFile,
		Direction:     ledger.Direction(r.Direction),
		Client:        r.Client,
		Document:      r.Document,
		Amount:        amount,
		Date:          parseDate(r.Date),
		InvoiceNumber: r.InvoiceNumber,
		Salesperson:   r.Salesperson,
		RawType:       r.RawType,
		Reconciled:    r.Reconciled,
		Disabled:      r.Disabled,
		PairKey:       r.PairKey,
	}, nil
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func orEmpty(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
