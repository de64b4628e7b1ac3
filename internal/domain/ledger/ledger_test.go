package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ledgermatch/ledgermatch/internal/domain/category"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestISODate(t *testing.T) {
	assert.Equal(t, "2024-01-15", ISODate(date(2024, time.January, 15)))
	assert.Equal(t, "", ISODate(time.Time{}))
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, time.January, 15, 8, 30, 0, 0, time.UTC)
	b := time.Date(2024, time.January, 15, 23, 0, 0, 0, time.UTC)
	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(a, date(2024, time.January, 16)))
	assert.False(t, SameDay(time.Time{}, time.Time{}))
}

func TestDupKeyDistinguishesRecords(t *testing.T) {
	a := &BankTransaction{Date: date(2024, 1, 2), Amount: decimal.NewFromInt(10), Description: "PIX JOSE"}
	b := &BankTransaction{Date: date(2024, 1, 2), Amount: decimal.NewFromInt(10), Description: "PIX MARIA"}
	c := &BankTransaction{Date: date(2024, 1, 2), Amount: decimal.NewFromInt(10), Description: "PIX JOSE"}

	assert.NotEqual(t, a.DupKey(), b.DupKey())
	assert.Equal(t, a.DupKey(), c.DupKey())
}

func TestTotalsSkipDisabled(t *testing.T) {
	txns := []*BankTransaction{
		{Amount: decimal.NewFromFloat(100.50)},
		{Amount: decimal.NewFromFloat(-40.25)},
		{Amount: decimal.NewFromInt(999), Disabled: true},
	}

	got := BankTotals(txns)
	assert.Equal(t, 2, got.Count)
	assert.True(t, got.Inflows.Equal(decimal.NewFromFloat(100.50)))
	assert.True(t, got.Outflows.Equal(decimal.NewFromFloat(-40.25)))
	assert.True(t, got.Balance().Equal(decimal.NewFromFloat(60.25)))
}

func TestFilterBank(t *testing.T) {
	txn := &BankTransaction{
		SourceFile:  "Extrato_BB.ofx",
		PaymentType: category.Pix,
		Date:        date(2024, time.March, 10),
		Amount:      decimal.NewFromFloat(-55.10),
		Description: "PIX JOSE DA SILVA",
	}

	assert.True(t, Filter{}.MatchBank(txn))
	assert.True(t, Filter{SourceFile: "extrato_bb.ofx"}.MatchBank(txn))
	assert.False(t, Filter{SourceFile: "outro.ofx"}.MatchBank(txn))
	assert.True(t, Filter{PaymentType: category.Pix}.MatchBank(txn))
	assert.False(t, Filter{PaymentType: category.Card}.MatchBank(txn))
	assert.True(t, Filter{Direction: Outflow}.MatchBank(txn))
	assert.False(t, Filter{Direction: Inflow}.MatchBank(txn))
	assert.True(t, Filter{Start: date(2024, time.March, 1), End: date(2024, time.March, 31)}.MatchBank(txn))
	assert.False(t, Filter{End: date(2024, time.February, 28)}.MatchBank(txn))
	assert.True(t, Filter{Search: "jose"}.MatchBank(txn))
	assert.True(t, Filter{Search: "55.1"}.MatchBank(txn))
	assert.False(t, Filter{Search: "maria"}.MatchBank(txn))
}

func TestFilterLedgerUndatedRecordsPassDateBounds(t *testing.T) {
	e := &LedgerEntry{Client: "JOSE", RawType: "PIX", Amount: decimal.NewFromInt(10)}
	f := Filter{Start: date(2024, time.January, 1), End: date(2024, time.December, 31)}
	assert.True(t, f.MatchLedger(e))
}

func TestManualPrefixes(t *testing.T) {
	placeholder := &BankTransaction{ID: ManualBankIDPrefix + "abc"}
	assert.True(t, placeholder.IsManualPlaceholder())
	assert.False(t, (&BankTransaction{ID: "file_1"}).IsManualPlaceholder())

	entry := &LedgerEntry{ID: ManualEntryIDPrefix + "abc"}
	assert.True(t, entry.IsManual())
}
