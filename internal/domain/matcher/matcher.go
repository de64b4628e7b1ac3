// Package matcher implements the candidate suggestion engine: given
// one or more bank transactions it finds plausible ledger entries via
// exact, fuzzy and combinatorial rules. Queries never mutate the
// collections they are given.
package matcher

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ledgermatch/ledgermatch/internal/domain/category"
	"github.com/ledgermatch/ledgermatch/internal/domain/ledger"
	"github.com/ledgermatch/ledgermatch/internal/domain/textnorm"
)

// Config holds the matching constants. The defaults reproduce the
// observed production behavior; deployments may tune them.
type Config struct {
	// BusinessDayWindow bounds the date distance for boleto and card
	// combination candidates.
	BusinessDayWindow int
	// CardTolerance is the upper band for card settlements relative
	// to the sales total: a card network never settles less than the
	// sale and at most this multiple of it (fee/surcharge variance).
	CardTolerance decimal.Decimal
	// MinTokenLen is the minimum rune length of a name token worth
	// comparing.
	MinTokenLen int
	// MinTokenOverlap is how many distinct tokens must appear on both
	// sides for a generic name match.
	MinTokenOverlap int
	// MaxCandidates caps the combination search input to keep the
	// exponential worst case out of reach.
	MaxCandidates int
}

// DefaultConfig returns the production constants.
func DefaultConfig() Config {
	return Config{
		BusinessDayWindow: 2,
		CardTolerance:     decimal.NewFromFloat(1.05),
		MinTokenLen:       4,
		MinTokenOverlap:   2,
		MaxCandidates:     64,
	}
}

// SuggestionSet groups candidate matches under the labels the caller
// presents them by. Empty groups mean no suggestion of that kind.
type SuggestionSet struct {
	// SameSender lists bank-side transactions (the queried one first)
	// sharing an identical normalized description, typically split or
	// duplicate postings from one counterparty.
	SameSender []*ledger.BankTransaction
	// SameName lists ledger entries whose client name resembles the
	// transaction description.
	SameName []*ledger.LedgerEntry
	// SameValueSameDate and SameValueOtherDate partition the entries
	// whose absolute value equals the transaction's exactly.
	SameValueSameDate  []*ledger.LedgerEntry
	SameValueOtherDate []*ledger.LedgerEntry
	// Combination is a subset of entries whose values together add up
	// to the transaction amount (exactly for boleto, within the card
	// tolerance band for card settlements).
	Combination []*ledger.LedgerEntry
}

// Empty reports whether no group holds any candidate.
func (s SuggestionSet) Empty() bool {
	return len(s.SameSender) == 0 && len(s.SameName) == 0 &&
		len(s.SameValueSameDate) == 0 && len(s.SameValueOtherDate) == 0 &&
		len(s.Combination) == 0
}

// Matcher runs suggestion queries over in-memory collections.
type Matcher struct {
	config Config
}

// New creates a matcher. Zero-valued config fields fall back to the
// defaults.
func New(cfg Config) *Matcher {
	def := DefaultConfig()
	if cfg.BusinessDayWindow <= 0 {
		cfg.BusinessDayWindow = def.BusinessDayWindow
	}
	if cfg.CardTolerance.LessThanOrEqual(decimal.NewFromInt(1)) {
		cfg.CardTolerance = def.CardTolerance
	}
	if cfg.MinTokenLen <= 0 {
		cfg.MinTokenLen = def.MinTokenLen
	}
	if cfg.MinTokenOverlap <= 0 {
		cfg.MinTokenOverlap = def.MinTokenOverlap
	}
	if cfg.MaxCandidates <= 0 {
		cfg.MaxCandidates = def.MaxCandidates
	}
	return &Matcher{config: cfg}
}

// sameSign applies the direction gate: an outflow only ever pairs with
// an outflow, an inflow only with an inflow.
func sameSign(bank, entry decimal.Decimal) bool {
	if bank.Sign() < 0 {
		return entry.Sign() < 0
	}
	if bank.Sign() > 0 {
		return entry.Sign() > 0
	}
	return true
}

// eligible filters entries down to the candidate window shared by all
// rules: same category, same sign, not disabled.
func (m *Matcher) eligible(txn *ledger.BankTransaction, entries []*ledger.LedgerEntry) []*ledger.LedgerEntry {
	out := make([]*ledger.LedgerEntry, 0, len(entries))
	for _, e := range entries {
		if e.Disabled {
			continue
		}
		if e.Category() != txn.PaymentType {
			continue
		}
		if !sameSign(txn.Amount, e.Amount) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Suggest computes the suggestion set for a single bank transaction.
// bank is the full bank collection (used for same-sender detection),
// entries the full ledger collection.
func (m *Matcher) Suggest(txn *ledger.BankTransaction, bank []*ledger.BankTransaction, entries []*ledger.LedgerEntry) SuggestionSet {
	var res SuggestionSet
	if txn == nil {
		return res
	}

	window := m.eligible(txn, entries)
	target := txn.Amount.Abs()

	if txn.PaymentType == category.Pix {
		res.SameSender = m.sameSender(txn, bank)
		res.SameName = m.pixNameMatches(txn, window)
	}

	if txn.PaymentType != category.Card {
		for _, e := range window {
			if !e.Amount.Abs().Equal(target) {
				continue
			}
			if ledger.SameDay(e.Date, txn.Date) {
				res.SameValueSameDate = append(res.SameValueSameDate, e)
			} else {
				res.SameValueOtherDate = append(res.SameValueOtherDate, e)
			}
		}

		// The generic token-overlap pass replaces the PIX-specific
		// one when it runs; both heuristics are kept deliberately.
		res.SameName = m.overlapNameMatches(txn, window)

		if txn.PaymentType == category.Boleto {
			res.Combination = m.boletoCombination(txn, window)
		}
		return res
	}

	res.Combination = m.cardCombination(txn, window)
	return res
}

// SuggestMany handles a multi-selection of bank transactions: it sums
// their absolute amounts and looks for single ledger entries matching
// that sum exactly, partitioned by date agreement with the selection.
func (m *Matcher) SuggestMany(txns []*ledger.BankTransaction, entries []*ledger.LedgerEntry) SuggestionSet {
	var res SuggestionSet
	if len(txns) == 0 {
		return res
	}

	total := decimal.Zero
	selectedDates := map[string]bool{}
	for _, t := range txns {
		total = total.Add(t.Amount.Abs())
		if iso := ledger.ISODate(t.Date); iso != "" {
			selectedDates[iso] = true
		}
	}

	for _, e := range entries {
		if e.Disabled || !e.Amount.Abs().Equal(total) {
			continue
		}
		if !e.Date.IsZero() && selectedDates[ledger.ISODate(e.Date)] {
			res.SameValueSameDate = append(res.SameValueSameDate, e)
		} else {
			res.SameValueOtherDate = append(res.SameValueOtherDate, e)
		}
	}
	return res
}

// sameSender finds other bank transactions of the same category whose
// normalized description equals the queried one exactly. A hit returns
// the queried transaction first.
func (m *Matcher) sameSender(txn *ledger.BankTransaction, bank []*ledger.BankTransaction) []*ledger.BankTransaction {
	base := textnorm.NormalizeName(txn.Description)
	if base == "" {
		return nil
	}

	var twins []*ledger.BankTransaction
	for _, b := range bank {
		if b.ID == txn.ID || b.Disabled || b.PaymentType != txn.PaymentType {
			continue
		}
		if textnorm.NormalizeName(b.Description) == base {
			twins = append(twins, b)
		}
	}
	if len(twins) == 0 {
		return nil
	}
	return append([]*ledger.BankTransaction{txn}, twins...)
}

// pixNameMatches accepts an entry when the client name contains any
// sufficiently long token of the transaction description, or the
// description contains the whole normalized client name. The two
// partial-match passes can disagree depending on which string is
// longer; both are preserved on purpose.
func (m *Matcher) pixNameMatches(txn *ledger.BankTransaction, window []*ledger.LedgerEntry) []*ledger.LedgerEntry {
	descNorm := textnorm.NormalizeName(txn.Description)
	if descNorm == "" {
		return nil
	}
	tokens := textnorm.Tokens(descNorm, m.config.MinTokenLen)

	var out []*ledger.LedgerEntry
	for _, e := range window {
		client := strings.ToLower(textnorm.StripAccents(e.Client))
		if client == "" {
			continue
		}

		matched := false
		for _, tok := range tokens {
			if strings.Contains(client, tok) {
				matched = true
				break
			}
		}
		if !matched {
			clientNorm := textnorm.NormalizeName(e.Client)
			matched = clientNorm != "" && strings.Contains(descNorm, clientNorm)
		}
		if matched {
			out = append(out, e)
		}
	}
	return out
}

// overlapNameMatches requires at least MinTokenOverlap distinct long
// tokens of the description to appear in the client name.
func (m *Matcher) overlapNameMatches(txn *ledger.BankTransaction, window []*ledger.LedgerEntry) []*ledger.LedgerEntry {
	tokens := textnorm.Tokens(textnorm.NormalizeName(txn.Description), m.config.MinTokenLen)
	if len(tokens) < m.config.MinTokenOverlap {
		return nil
	}

	var out []*ledger.LedgerEntry
	for _, e := range window {
		client := strings.ToLower(textnorm.StripAccents(e.Client))
		if client == "" {
			continue
		}
		common := 0
		for _, tok := range tokens {
			if strings.Contains(client, tok) {
				common++
				if common >= m.config.MinTokenOverlap {
					out = append(out, e)
					break
				}
			}
		}
	}
	return out
}

// dateWindow keeps candidates dated within the business-day window of
// the transaction, sorted by descending absolute value and capped.
func (m *Matcher) dateWindow(txn *ledger.BankTransaction, window []*ledger.LedgerEntry) []candidate {
	cands := make([]candidate, 0, len(window))
	for _, e := range window {
		if e.Date.IsZero() {
			continue
		}
		if BusinessDayDistance(e.Date, txn.Date) > m.config.BusinessDayWindow {
			continue
		}
		cands = append(cands, candidate{entry: e, abs: e.Amount.Abs()})
	}

	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].abs.GreaterThan(cands[j].abs)
	})
	if len(cands) > m.config.MaxCandidates {
		cands = cands[:m.config.MaxCandidates]
	}
	return cands
}

// boletoCombination searches for a subset of nearby boleto entries
// whose values sum exactly to the transaction amount.
func (m *Matcher) boletoCombination(txn *ledger.BankTransaction, window []*ledger.LedgerEntry) []*ledger.LedgerEntry {
	if txn.Date.IsZero() {
		return nil
	}
	target := txn.Amount.Abs()
	return findSubset(m.dateWindow(txn, window), target, target)
}

// cardCombination searches for a subset of nearby card entries whose
// sum lands within [target, target*tolerance]. Individual candidates
// above that band can never participate and are dropped up front.
func (m *Matcher) cardCombination(txn *ledger.BankTransaction, window []*ledger.LedgerEntry) []*ledger.LedgerEntry {
	if txn.Date.IsZero() {
		return nil
	}
	target := txn.Amount.Abs()
	upper := target.Mul(m.config.CardTolerance)

	cands := m.dateWindow(txn, window)
	banded := make([]candidate, 0, len(cands))
	for _, c := range cands {
		if c.abs.Cmp(target) >= 0 && c.abs.Cmp(upper) <= 0 {
			banded = append(banded, c)
		}
	}
	return findSubset(banded, target, upper)
}
