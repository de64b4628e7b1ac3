package recon

import (
	"strings"

	"github.com/google/uuid"

	"github.com/ledgermatch/ledgermatch/internal/domain/category"
	"github.com/ledgermatch/ledgermatch/internal/domain/ledger"
)

// Reconcile commits a pairing: every selected bank record is
// cross-linked with every selected ledger record under one fresh pair
// key. The ledger side's client, document, type and date are copied
// onto each bank record; invoice numbers accumulate as a deduplicated
// list. Preconditions are checked before any field is touched.
func (s *Session) Reconcile(bankIDs, ledgerIDs []string) (string, error) {
	if len(bankIDs) == 0 || len(ledgerIDs) == 0 {
		return "", ErrEmptySelection
	}

	banks := make([]*ledger.BankTransaction, 0, len(bankIDs))
	for _, id := range bankIDs {
		t := s.FindBank(id)
		if t == nil {
			return "", ErrNotFound
		}
		if t.Disabled {
			return "", ErrDisabledRecord
		}
		banks = append(banks, t)
	}

	targets := make([]*ledger.LedgerEntry, 0, len(ledgerIDs))
	for _, id := range ledgerIDs {
		e := s.FindEntry(id)
		if e == nil {
			return "", ErrNotFound
		}
		if e.Disabled {
			return "", ErrDisabledRecord
		}
		targets = append(targets, e)
	}

	key := uuid.NewString()

	for _, b := range banks {
		for _, e := range targets {
			if e.InvoiceNumber != "" && !contains(b.InvoiceNumbers, e.InvoiceNumber) {
				b.InvoiceNumbers = append(b.InvoiceNumbers, e.InvoiceNumber)
			}
			b.Counterparty = ledger.Counterparty{
				Name:     e.Client,
				Document: e.Document,
				Type:     e.RawType,
				Date:     e.Date,
			}
			b.Reconciled = true
			b.PairKey = key
			e.Reconciled = true
			e.PairKey = key
		}
	}

	s.selectedBank = make(map[string]bool)
	s.selectedLedger = make(map[string]bool)
	s.selectionMode = false

	s.logger.Info("pairing committed", "pair_key", key, "bank", len(banks), "ledger", len(targets))
	return key, nil
}

// Cancel undoes the pairing identified by key: every member gets its
// pairing fields cleared, and placeholder bank transactions that only
// existed for a manual reconciliation are deleted outright.
func (s *Session) Cancel(key string) error {
	if key == "" {
		return ErrNotFound
	}

	found := false
	kept := s.bank[:0]
	for _, t := range s.bank {
		if t.PairKey != key {
			kept = append(kept, t)
			continue
		}
		found = true
		if t.IsManualPlaceholder() {
			delete(s.selectedBank, t.ID)
			continue
		}
		t.Reconciled = false
		t.PairKey = ""
		t.InvoiceNumbers = nil
		t.Counterparty = ledger.Counterparty{}
		kept = append(kept, t)
	}
	s.bank = kept

	for _, e := range s.entries {
		if e.PairKey != key {
			continue
		}
		found = true
		e.Reconciled = false
		e.PairKey = ""
	}

	if !found {
		return ErrNotFound
	}
	s.logger.Info("pairing cancelled", "pair_key", key)
	return nil
}

// ReconcileManual pairs a ledger entry that has no bank counterpart by
// synthesizing a placeholder bank transaction mirroring it. The
// placeholder lives in the bank collection until the pairing is
// cancelled.
func (s *Session) ReconcileManual(ledgerID string) (*ledger.BankTransaction, error) {
	e := s.FindEntry(ledgerID)
	if e == nil {
		return nil, ErrNotFound
	}
	if e.Reconciled {
		return nil, ErrAlreadyReconciled
	}
	if e.Disabled {
		return nil, ErrDisabledRecord
	}

	key := uuid.NewString()

	desc := strings.TrimSpace(strings.Join([]string{e.Client, e.RawType, e.Document}, " - "))
	classifySource := e.RawType
	if classifySource == "" {
		classifySource = e.Client
	}

	placeholder := &ledger.BankTransaction{
		ID:          ledger.ManualBankIDPrefix + uuid.NewString(),
		SourceFile:  ledger.ManualBankSource,
		BankCode:    "999",
		BankName:    "Manual",
		Date:        e.Date,
		Amount:      e.Amount,
		Description: desc,
		PaymentType: category.ClassifyStatement(classifySource),
		Reconciled:  true,
		PairKey:     key,
		Counterparty: ledger.Counterparty{
			Name:     e.Client,
			Document: e.Document,
			Type:     e.RawType,
			Date:     e.Date,
		},
	}
	if e.InvoiceNumber != "" {
		placeholder.InvoiceNumbers = []string{e.InvoiceNumber}
	}

	e.Reconciled = true
	e.PairKey = key
	s.bank = append(s.bank, placeholder)

	s.logger.Info("manual pairing committed", "pair_key", key, "ledger_id", ledgerID)
	return placeholder, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
