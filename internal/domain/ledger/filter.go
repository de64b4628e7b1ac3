package ledger

import (
	"strings"
	"time"

	"github.com/ledgermatch/ledgermatch/internal/domain/category"
)

// Filter restricts the visible records of either side. Zero-valued
// fields do not filter. Date bounds are inclusive and only apply to
// records that carry a date.
type Filter struct {
	SourceFile  string
	PaymentType category.PaymentType
	Start       time.Time
	End         time.Time
	Direction   Direction // money in vs money out, by amount sign
	Search      string    // case-insensitive substring over text fields
}

func (f Filter) matchesDates(date time.Time) bool {
	if date.IsZero() {
		return true
	}
	if !f.Start.IsZero() && date.Before(f.Start) {
		return false
	}
	if !f.End.IsZero() && date.After(f.End) {
		return false
	}
	return true
}

func (f Filter) matchesDirection(sign int) bool {
	switch f.Direction {
	case Inflow:
		return sign >= 0
	case Outflow:
		return sign < 0
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

// MatchBank reports whether a bank transaction passes the filter.
func (f Filter) MatchBank(t *BankTransaction) bool {
	if f.SourceFile != "" && NormalizeFileName(t.SourceFile) != NormalizeFileName(f.SourceFile) {
		return false
	}
	if f.PaymentType != "" && t.PaymentType != f.PaymentType {
		return false
	}
	if !f.matchesDates(t.Date) || !f.matchesDirection(t.Amount.Sign()) {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !containsFold(t.Amount.Abs().String(), q) &&
			!containsFold(t.Description, q) &&
			!containsFold(strings.Join(t.InvoiceNumbers, ", "), q) &&
			!containsFold(t.Counterparty.Document, q) &&
			!containsFold(t.Counterparty.Name, q) {
			return false
		}
	}
	return true
}

// MatchLedger reports whether a ledger entry passes the filter.
func (f Filter) MatchLedger(e *LedgerEntry) bool {
	if f.SourceFile != "" && NormalizeFileName(e.SourceFile) != NormalizeFileName(f.SourceFile) {
		return false
	}
	if f.PaymentType != "" && e.Category() != f.PaymentType {
		return false
	}
	if !f.matchesDates(e.Date) || !f.matchesDirection(e.Amount.Sign()) {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !containsFold(e.Amount.Abs().String(), q) &&
			!containsFold(e.Client, q) &&
			!containsFold(e.RawType, q) &&
			!containsFold(e.InvoiceNumber, q) &&
			!containsFold(e.Document, q) {
			return false
		}
	}
	return true
}
