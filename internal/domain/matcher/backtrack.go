package matcher

import (
	"github.com/shopspring/decimal"

	"github.com/ledgermatch/ledgermatch/internal/domain/ledger"
)

// candidate pairs a ledger entry with its absolute value so the search
// never recomputes it.
type candidate struct {
	entry *ledger.LedgerEntry
	abs   decimal.Decimal
}

// findSubset explores the include/exclude tree over cands depth-first,
// include branch first, and returns the first non-empty subset whose
// sum lands inside [lower, upper]. Branches whose running sum already
// exceeds upper are pruned. cands is expected sorted by descending
// absolute value, which keeps the prune effective.
//
// Worst case is exponential in len(cands); callers bound the candidate
// window (business-day filter plus the configured cap) to keep this
// fast in practice.
func findSubset(cands []candidate, lower, upper decimal.Decimal) []*ledger.LedgerEntry {
	var walk func(i int, sum decimal.Decimal, path []*ledger.LedgerEntry) []*ledger.LedgerEntry
	walk = func(i int, sum decimal.Decimal, path []*ledger.LedgerEntry) []*ledger.LedgerEntry {
		if len(path) > 0 && sum.Cmp(lower) >= 0 && sum.Cmp(upper) <= 0 {
			out := make([]*ledger.LedgerEntry, len(path))
			copy(out, path)
			return out
		}
		if i >= len(cands) || sum.Cmp(upper) > 0 {
			return nil
		}

		if found := walk(i+1, sum.Add(cands[i].abs), append(path, cands[i].entry)); found != nil {
			return found
		}
		return walk(i+1, sum, path)
	}

	return walk(0, decimal.Zero, nil)
}
