package ledger

import "github.com/shopspring/decimal"

// Totals aggregates the visible records of one side. Disabled records
// are excluded; reconciled records are not.
type Totals struct {
	Count    int
	Inflows  decimal.Decimal
	Outflows decimal.Decimal // negative or zero
}

// Balance is Inflows + Outflows.
func (t Totals) Balance() decimal.Decimal {
	return t.Inflows.Add(t.Outflows)
}

func (t *Totals) add(amount decimal.Decimal, disabled bool) {
	if disabled {
		return
	}
	t.Count++
	if amount.Sign() >= 0 {
		t.Inflows = t.Inflows.Add(amount)
	} else {
		t.Outflows = t.Outflows.Add(amount)
	}
}

// BankTotals sums a bank transaction list.
func BankTotals(txns []*BankTransaction) Totals {
	t := Totals{Inflows: decimal.Zero, Outflows: decimal.Zero}
	for _, txn := range txns {
		t.add(txn.Amount, txn.Disabled)
	}
	return t
}

// LedgerTotals sums a ledger entry list.
func LedgerTotals(entries []*LedgerEntry) Totals {
	t := Totals{Inflows: decimal.Zero, Outflows: decimal.Zero}
	for _, e := range entries {
		t.add(e.Amount, e.Disabled)
	}
	return t
}
