package recon

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/ledgermatch/ledgermatch/internal/domain/ledger"
)

// ManualEntryInput carries the user-supplied fields of a hand-entered
// ledger record.
type ManualEntryInput struct {
	Client        string
	Document      string
	Amount        decimal.Decimal
	Date          string
	InvoiceNumber string
	Salesperson   string
	RawType       string
}

// AddManualEntry creates a ledger entry from user input. Date, amount
// and client are required.
func (s *Session) AddManualEntry(in ManualEntryInput) (*ledger.LedgerEntry, error) {
	if strings.TrimSpace(in.Client) == "" || strings.TrimSpace(in.Date) == "" || in.Amount.IsZero() {
		return nil, ErrMissingFields
	}
	date, err := ledger.ParseISODate(in.Date)
	if err != nil {
		return nil, ErrMissingFields
	}

	rawType := in.RawType
	if rawType == "" {
		rawType = "Outros"
	}
	dir := ledger.Inflow
	if in.Amount.IsNegative() {
		dir = ledger.Outflow
	}

	e := &ledger.LedgerEntry{
		ID:            ledger.ManualEntryIDPrefix + uuid.NewString(),
		SourceFile:    ledger.ManualEntrySource,
		Direction:     dir,
		Client:        strings.TrimSpace(in.Client),
		Document:      strings.TrimSpace(in.Document),
		Amount:        in.Amount,
		Date:          date,
		InvoiceNumber: strings.TrimSpace(in.InvoiceNumber),
		Salesperson:   strings.TrimSpace(in.Salesperson),
		RawType:       rawType,
	}
	s.entries = append(s.entries, e)
	s.sortByDate()
	s.logger.Info("manual ledger entry added", "id", e.ID, "client", e.Client)
	return e, nil
}

// UpdateManualEntry replaces the editable fields of a manual entry.
// Only entries created through AddManualEntry can be updated.
func (s *Session) UpdateManualEntry(id string, in ManualEntryInput) (*ledger.LedgerEntry, error) {
	e := s.FindEntry(id)
	if e == nil {
		return nil, ErrNotFound
	}
	if !e.IsManual() {
		return nil, ErrNotManualEntry
	}
	if e.Reconciled {
		return nil, ErrAlreadyReconciled
	}
	if strings.TrimSpace(in.Client) == "" || strings.TrimSpace(in.Date) == "" || in.Amount.IsZero() {
		return nil, ErrMissingFields
	}
	date, err := ledger.ParseISODate(in.Date)
	if err != nil {
		return nil, ErrMissingFields
	}

	e.Client = strings.TrimSpace(in.Client)
	e.Document = strings.TrimSpace(in.Document)
	e.Amount = in.Amount
	e.Date = date
	e.InvoiceNumber = strings.TrimSpace(in.InvoiceNumber)
	e.Salesperson = strings.TrimSpace(in.Salesperson)
	if in.RawType != "" {
		e.RawType = in.RawType
	}
	if in.Amount.IsNegative() {
		e.Direction = ledger.Outflow
	} else {
		e.Direction = ledger.Inflow
	}
	s.sortByDate()
	return e, nil
}

// DeleteManualEntry removes a manual entry. A reconciled entry must be
// unpaired first.
func (s *Session) DeleteManualEntry(id string) error {
	e := s.FindEntry(id)
	if e == nil {
		return ErrNotFound
	}
	if !e.IsManual() {
		return ErrNotManualEntry
	}
	if e.Reconciled {
		return ErrAlreadyReconciled
	}
	for i, cur := range s.entries {
		if cur.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			break
		}
	}
	delete(s.selectedLedger, id)
	return nil
}
