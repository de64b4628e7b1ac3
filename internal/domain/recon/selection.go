package recon

import (
	"github.com/shopspring/decimal"

	"github.com/ledgermatch/ledgermatch/internal/domain/category"
	"github.com/ledgermatch/ledgermatch/internal/domain/ledger"
)

// Side distinguishes the two record collections in selection and
// toggle operations.
type Side string

const (
	BankSide   Side = "bank"
	LedgerSide Side = "ledger"
)

// SetSelectionMode switches bulk selection on or off. Turning it off
// clears both selections.
func (s *Session) SetSelectionMode(on bool) {
	s.selectionMode = on
	if !on {
		s.selectedBank = make(map[string]bool)
		s.selectedLedger = make(map[string]bool)
	}
}

// SelectionMode reports whether bulk selection is active.
func (s *Session) SelectionMode() bool {
	return s.selectionMode
}

// Select adds a record to its side's selection. Reconciled and
// disabled records cannot be selected. Outside selection mode the
// previous selection of that side is replaced.
func (s *Session) Select(side Side, id string) error {
	switch side {
	case BankSide:
		t := s.FindBank(id)
		if t == nil {
			return ErrNotFound
		}
		if t.Disabled {
			return ErrDisabledRecord
		}
		if t.Reconciled {
			return ErrAlreadyReconciled
		}
		if !s.selectionMode {
			s.selectedBank = make(map[string]bool)
		}
		s.selectedBank[id] = true
	case LedgerSide:
		e := s.FindEntry(id)
		if e == nil {
			return ErrNotFound
		}
		if e.Disabled {
			return ErrDisabledRecord
		}
		if e.Reconciled {
			return ErrAlreadyReconciled
		}
		if !s.selectionMode {
			s.selectedLedger = make(map[string]bool)
		}
		s.selectedLedger[id] = true
	default:
		return ErrNotFound
	}
	return nil
}

// Deselect removes a record from its side's selection.
func (s *Session) Deselect(side Side, id string) {
	switch side {
	case BankSide:
		delete(s.selectedBank, id)
	case LedgerSide:
		delete(s.selectedLedger, id)
	}
}

// ClearSelection empties both selections and leaves selection mode.
func (s *Session) ClearSelection() {
	s.SetSelectionMode(false)
}

// SelectedBank returns the selected bank records in collection order.
func (s *Session) SelectedBank() []*ledger.BankTransaction {
	out := make([]*ledger.BankTransaction, 0, len(s.selectedBank))
	for _, t := range s.bank {
		if s.selectedBank[t.ID] {
			out = append(out, t)
		}
	}
	return out
}

// SelectedLedger returns the selected ledger records in collection order.
func (s *Session) SelectedLedger() []*ledger.LedgerEntry {
	out := make([]*ledger.LedgerEntry, 0, len(s.selectedLedger))
	for _, e := range s.entries {
		if s.selectedLedger[e.ID] {
			out = append(out, e)
		}
	}
	return out
}

// SelectedBankIDs returns the ids of the selected bank records.
func (s *Session) SelectedBankIDs() []string {
	txns := s.SelectedBank()
	out := make([]string, len(txns))
	for i, t := range txns {
		out[i] = t.ID
	}
	return out
}

// SelectedLedgerIDs returns the ids of the selected ledger records.
func (s *Session) SelectedLedgerIDs() []string {
	entries := s.SelectedLedger()
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

// ToggleDisabled flips the disabled flag on one record or, when
// selection mode is active, on every selected record of that record's
// side. Toggled records leave the selection: a disabled record cannot
// remain selected.
func (s *Session) ToggleDisabled(id string) error {
	if t := s.FindBank(id); t != nil {
		targets := []*ledger.BankTransaction{t}
		if s.selectionMode && len(s.selectedBank) > 0 {
			targets = s.SelectedBank()
			if !s.selectedBank[id] {
				targets = append(targets, t)
			}
		}
		for _, tgt := range targets {
			tgt.Disabled = !tgt.Disabled
			delete(s.selectedBank, tgt.ID)
		}
		return nil
	}

	if e := s.FindEntry(id); e != nil {
		targets := []*ledger.LedgerEntry{e}
		if s.selectionMode && len(s.selectedLedger) > 0 {
			targets = s.SelectedLedger()
			if !s.selectedLedger[id] {
				targets = append(targets, e)
			}
		}
		for _, tgt := range targets {
			tgt.Disabled = !tgt.Disabled
			delete(s.selectedLedger, tgt.ID)
		}
		return nil
	}

	return ErrNotFound
}

// Difference summarizes the currently selected records of both sides.
type Difference struct {
	BankCount   int
	LedgerCount int
	BankSum     decimal.Decimal
	LedgerSum   decimal.Decimal
	Diff        decimal.Decimal
	// CardPercent is Diff as a percentage of the ledger sum, present
	// only when the first selected bank record is a card settlement
	// and the ledger sum is non-zero.
	CardPercent    decimal.Decimal
	HasCardPercent bool
}

// Difference computes the running totals of the current selection,
// disabled records excluded.
func (s *Session) Difference() Difference {
	d := Difference{
		BankSum:   decimal.Zero,
		LedgerSum: decimal.Zero,
	}

	var firstBank *ledger.BankTransaction
	for _, t := range s.SelectedBank() {
		if t.Disabled {
			continue
		}
		if firstBank == nil {
			firstBank = t
		}
		d.BankCount++
		d.BankSum = d.BankSum.Add(t.Amount)
	}
	for _, e := range s.SelectedLedger() {
		if e.Disabled {
			continue
		}
		d.LedgerCount++
		d.LedgerSum = d.LedgerSum.Add(e.Amount)
	}

	d.Diff = d.BankSum.Sub(d.LedgerSum)

	if firstBank != nil && firstBank.PaymentType == category.Card && !d.LedgerSum.IsZero() {
		d.CardPercent = d.Diff.Div(d.LedgerSum).Mul(decimal.NewFromInt(100)).Round(2)
		d.HasCardPercent = true
	}
	return d
}
