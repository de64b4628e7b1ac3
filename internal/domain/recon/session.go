// Package recon owns the reconciliation session: the two record
// collections, the imported-file sets, the selection state, and every
// mutating operation of the pairing state machine. There is no ambient
// state; a Session is the unit of isolation.
//
// The session is synchronous and single-threaded. Suggestion queries
// are read-only; only the explicit commit/cancel/toggle operations
// mutate, and each checks its preconditions before touching any field,
// so a rejected operation leaves the session exactly as it found it.
package recon

import (
	"log/slog"
	"sort"

	"github.com/ledgermatch/ledgermatch/internal/domain/ledger"
	"github.com/ledgermatch/ledgermatch/internal/domain/matcher"
)

// Session holds one reconciliation workspace.
type Session struct {
	logger  *slog.Logger
	matcher *matcher.Matcher

	bank    []*ledger.BankTransaction
	entries []*ledger.LedgerEntry

	statementFiles []string
	reportFiles    []string

	selectedBank   map[string]bool
	selectedLedger map[string]bool
	selectionMode  bool
}

// NewSession creates an empty session. A nil logger falls back to
// slog.Default; a nil matcher gets the default config.
func NewSession(m *matcher.Matcher, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	if m == nil {
		m = matcher.New(matcher.DefaultConfig())
	}
	return &Session{
		logger:         logger,
		matcher:        m,
		selectedBank:   make(map[string]bool),
		selectedLedger: make(map[string]bool),
	}
}

// BankTransactions returns the bank collection filtered by f. The
// returned slice is fresh; the records are shared.
func (s *Session) BankTransactions(f ledger.Filter) []*ledger.BankTransaction {
	out := make([]*ledger.BankTransaction, 0, len(s.bank))
	for _, t := range s.bank {
		if f.MatchBank(t) {
			out = append(out, t)
		}
	}
	return out
}

// LedgerEntries returns the ledger collection filtered by f.
func (s *Session) LedgerEntries(f ledger.Filter) []*ledger.LedgerEntry {
	out := make([]*ledger.LedgerEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if f.MatchLedger(e) {
			out = append(out, e)
		}
	}
	return out
}

// StatementFiles lists the imported statement file names.
func (s *Session) StatementFiles() []string {
	return append([]string(nil), s.statementFiles...)
}

// ReportFiles lists the imported report file names.
func (s *Session) ReportFiles() []string {
	return append([]string(nil), s.reportFiles...)
}

// FindBank returns the bank transaction with the given id, or nil.
func (s *Session) FindBank(id string) *ledger.BankTransaction {
	for _, t := range s.bank {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// FindEntry returns the ledger entry with the given id, or nil.
func (s *Session) FindEntry(id string) *ledger.LedgerEntry {
	for _, e := range s.entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// BankTotals sums the non-disabled bank records passing f.
func (s *Session) BankTotals(f ledger.Filter) ledger.Totals {
	return ledger.BankTotals(s.BankTransactions(f))
}

// LedgerTotals sums the non-disabled ledger records passing f.
func (s *Session) LedgerTotals(f ledger.Filter) ledger.Totals {
	return ledger.LedgerTotals(s.LedgerEntries(f))
}

// UnreconciledBankCount counts bank records still waiting for a pair,
// disabled ones excluded.
func (s *Session) UnreconciledBankCount() int {
	n := 0
	for _, t := range s.bank {
		if !t.Disabled && !t.Reconciled {
			n++
		}
	}
	return n
}

// Suggest runs the suggestion engine for one bank transaction.
func (s *Session) Suggest(bankID string) (matcher.SuggestionSet, error) {
	txn := s.FindBank(bankID)
	if txn == nil {
		return matcher.SuggestionSet{}, ErrNotFound
	}
	return s.matcher.Suggest(txn, s.bank, s.entries), nil
}

// SuggestMany runs the multi-selection suggestion query.
func (s *Session) SuggestMany(bankIDs []string) (matcher.SuggestionSet, error) {
	txns := make([]*ledger.BankTransaction, 0, len(bankIDs))
	for _, id := range bankIDs {
		txn := s.FindBank(id)
		if txn == nil {
			return matcher.SuggestionSet{}, ErrNotFound
		}
		txns = append(txns, txn)
	}
	return s.matcher.SuggestMany(txns, s.entries), nil
}

// Restore replaces the session contents with a persisted snapshot.
// Selections do not survive a restore.
func (s *Session) Restore(bank []*ledger.BankTransaction, entries []*ledger.LedgerEntry, statementFiles, reportFiles []string) {
	s.bank = bank
	s.entries = entries
	s.statementFiles = append([]string(nil), statementFiles...)
	s.reportFiles = append([]string(nil), reportFiles...)
	s.selectedBank = make(map[string]bool)
	s.selectedLedger = make(map[string]bool)
	s.selectionMode = false
	s.sortByDate()
	s.logger.Info("session restored", "bank", len(bank), "ledger", len(entries))
}

// Reset drops every record, file and selection.
func (s *Session) Reset() {
	s.bank = nil
	s.entries = nil
	s.statementFiles = nil
	s.reportFiles = nil
	s.selectedBank = make(map[string]bool)
	s.selectedLedger = make(map[string]bool)
	s.selectionMode = false
	s.logger.Info("session reset")
}

// sortByDate keeps both collections ordered by date ascending, undated
// records first, preserving import order within a day.
func (s *Session) sortByDate() {
	sort.SliceStable(s.bank, func(i, j int) bool {
		return ledger.ISODate(s.bank[i].Date) < ledger.ISODate(s.bank[j].Date)
	})
	sort.SliceStable(s.entries, func(i, j int) bool {
		return ledger.ISODate(s.entries[i].Date) < ledger.ISODate(s.entries[j].Date)
	})
}

func containsFileName(files []string, name string) bool {
	norm := ledger.NormalizeFileName(name)
	for _, f := range files {
		if ledger.NormalizeFileName(f) == norm {
			return true
		}
	}
	return false
}

func removeFileName(files []string, name string) []string {
	norm := ledger.NormalizeFileName(name)
	out := files[:0]
	for _, f := range files {
		if ledger.NormalizeFileName(f) != norm {
			out = append(out, f)
		}
	}
	return out
}
