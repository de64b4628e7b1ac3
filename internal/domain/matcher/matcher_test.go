package matcher

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgermatch/ledgermatch/internal/domain/category"
	"github.com/ledgermatch/ledgermatch/internal/domain/ledger"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func bankTxn(id string, amount float64, date time.Time, desc string, pt category.PaymentType) *ledger.BankTransaction {
	return &ledger.BankTransaction{
		ID:          id,
		Amount:      decimal.NewFromFloat(amount),
		Date:        date,
		Description: desc,
		PaymentType: pt,
	}
}

func entry(id string, amount float64, date time.Time, client, rawType string) *ledger.LedgerEntry {
	return &ledger.LedgerEntry{
		ID:      id,
		Amount:  decimal.NewFromFloat(amount),
		Date:    date,
		Client:  client,
		RawType: rawType,
	}
}

func ids(entries []*ledger.LedgerEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func TestBusinessDayDistance(t *testing.T) {
	mon := day(2024, time.January, 15) // Monday
	tue := day(2024, time.January, 16)
	fri := day(2024, time.January, 19)
	nextMon := day(2024, time.January, 22)
	sat := day(2024, time.January, 20)
	sun := day(2024, time.January, 21)

	assert.Equal(t, 0, BusinessDayDistance(mon, mon))
	assert.Equal(t, 1, BusinessDayDistance(mon, tue))
	assert.Equal(t, 4, BusinessDayDistance(mon, fri))
	// The weekend between Friday and the next Monday does not count.
	assert.Equal(t, 1, BusinessDayDistance(fri, nextMon))
	assert.Equal(t, 0, BusinessDayDistance(sat, sun))

	// Symmetric under swapping.
	assert.Equal(t, BusinessDayDistance(mon, fri), BusinessDayDistance(fri, mon))
	assert.Equal(t, BusinessDayDistance(fri, nextMon), BusinessDayDistance(nextMon, fri))
}

func TestSuggestTypeAndSignGate(t *testing.T) {
	m := New(DefaultConfig())
	txn := bankTxn("b1", -100, day(2024, time.March, 4), "PAGAMENTO PIX FORNECEDOR ALFA", category.Pix)

	entries := []*ledger.LedgerEntry{
		entry("s1", -100, day(2024, time.March, 4), "FORNECEDOR ALFA COM", "PIX"),
		// Wrong sign: inflow cannot pair with an outflow.
		entry("s2", 100, day(2024, time.March, 4), "FORNECEDOR ALFA COM", "PIX"),
		// Wrong category.
		entry("s3", -100, day(2024, time.March, 4), "FORNECEDOR ALFA COM", "BOLETO"),
	}

	res := m.Suggest(txn, nil, entries)
	assert.Equal(t, []string{"s1"}, ids(res.SameValueSameDate))
	assert.Empty(t, res.SameValueOtherDate)
}

func TestSuggestSkipsDisabled(t *testing.T) {
	m := New(DefaultConfig())
	txn := bankTxn("b1", 50, day(2024, time.March, 4), "PIX RECEBIDO", category.Pix)

	entries := []*ledger.LedgerEntry{
		{ID: "s1", Amount: decimal.NewFromInt(50), Date: day(2024, time.March, 4), RawType: "PIX", Disabled: true},
	}

	res := m.Suggest(txn, nil, entries)
	assert.True(t, res.Empty())
}

func TestSuggestSameValueBuckets(t *testing.T) {
	m := New(DefaultConfig())
	txn := bankTxn("b1", -150, day(2024, time.March, 4), "PIX ENVIADO", category.Pix)

	entries := []*ledger.LedgerEntry{
		entry("same-date", -150, day(2024, time.March, 4), "A", "PIX"),
		entry("other-date", -150, day(2024, time.March, 6), "B", "PIX"),
		entry("no-date", -150, time.Time{}, "C", "PIX"),
		entry("other-value", -151, day(2024, time.March, 4), "D", "PIX"),
	}

	res := m.Suggest(txn, nil, entries)
	assert.Equal(t, []string{"same-date"}, ids(res.SameValueSameDate))
	assert.ElementsMatch(t, []string{"other-date", "no-date"}, ids(res.SameValueOtherDate))
}

func TestSuggestSameSender(t *testing.T) {
	m := New(DefaultConfig())
	txn := bankTxn("b1", 80, day(2024, time.March, 4), "PIX JOSE DA SILVA 111", category.Pix)

	bank := []*ledger.BankTransaction{
		txn,
		bankTxn("b2", 120, day(2024, time.March, 5), "PIX JOSE DA SILVA 222", category.Pix),
		bankTxn("b3", 10, day(2024, time.March, 5), "PIX MARIA OLIVEIRA", category.Pix),
	}

	res := m.Suggest(txn, bank, nil)
	require.Len(t, res.SameSender, 2)
	// Queried transaction comes first.
	assert.Equal(t, "b1", res.SameSender[0].ID)
}

func TestSuggestNameTokenOverlap(t *testing.T) {
	m := New(DefaultConfig())
	txn := bankTxn("b1", 300, day(2024, time.March, 4), "PIX RECEBIDO COMERCIO SANTOS PEREIRA", category.Pix)

	entries := []*ledger.LedgerEntry{
		// Two long tokens in common.
		entry("hit", 10, day(2024, time.March, 1), "SANTOS PEREIRA LTDA", "PIX"),
		// Only one token in common.
		entry("miss", 10, day(2024, time.March, 1), "SANTOS IRMAOS", "PIX"),
	}

	res := m.Suggest(txn, nil, entries)
	assert.Equal(t, []string{"hit"}, ids(res.SameName))
}

func TestSuggestBoletoCombination(t *testing.T) {
	m := New(DefaultConfig())
	txn := bankTxn("b1", -250, day(2024, time.March, 4), "PAGAMENTO BOLETO", category.Boleto)

	entries := []*ledger.LedgerEntry{
		entry("s1", -100, day(2024, time.March, 4), "A", "BOLETO"),
		entry("s2", -250, day(2024, time.March, 5), "B", "BOLETO"),
		entry("s3", -150, day(2024, time.March, 4), "C", "BOLETO"),
	}

	res := m.Suggest(txn, nil, entries)
	require.NotEmpty(t, res.Combination)

	sum := decimal.Zero
	for _, e := range res.Combination {
		sum = sum.Add(e.Amount.Abs())
	}
	assert.True(t, sum.Equal(decimal.NewFromInt(250)), "subset sums to %s", sum)
}

func TestSuggestBoletoWindowExcludesFarDates(t *testing.T) {
	m := New(DefaultConfig())
	txn := bankTxn("b1", -250, day(2024, time.March, 4), "PAGAMENTO BOLETO", category.Boleto)

	entries := []*ledger.LedgerEntry{
		// Eight business days away.
		entry("far", -250, day(2024, time.March, 14), "A", "BOLETO"),
	}

	res := m.Suggest(txn, nil, entries)
	assert.Empty(t, res.Combination)
}

func TestSuggestCardToleranceBand(t *testing.T) {
	m := New(DefaultConfig())
	txn := bankTxn("b1", 200, day(2024, time.March, 4), "CREDITO CARTAO STONE", category.Card)

	entries := []*ledger.LedgerEntry{
		entry("in-band", 210, day(2024, time.March, 5), "A", "CARTAO"),
		entry("below", 195, day(2024, time.March, 5), "B", "CARTAO"),
		entry("tiny", 5, day(2024, time.March, 5), "C", "CARTAO"),
	}

	res := m.Suggest(txn, nil, entries)
	require.Len(t, res.Combination, 1)
	assert.Equal(t, "in-band", res.Combination[0].ID)

	sum := res.Combination[0].Amount.Abs()
	assert.True(t, sum.GreaterThanOrEqual(decimal.NewFromInt(200)))
	assert.True(t, sum.LessThanOrEqual(decimal.NewFromInt(210)))
}

func TestSuggestCardRejectsAboveTolerance(t *testing.T) {
	m := New(DefaultConfig())
	txn := bankTxn("b1", 200, day(2024, time.March, 4), "CREDITO CARTAO", category.Card)

	entries := []*ledger.LedgerEntry{
		// 211 > 200 * 1.05.
		entry("above", 211, day(2024, time.March, 5), "A", "CARTAO"),
	}

	res := m.Suggest(txn, nil, entries)
	assert.Empty(t, res.Combination)
}

func TestSuggestCardWithoutDate(t *testing.T) {
	m := New(DefaultConfig())
	txn := bankTxn("b1", 200, time.Time{}, "CREDITO CARTAO", category.Card)

	entries := []*ledger.LedgerEntry{
		entry("s1", 200, day(2024, time.March, 4), "A", "CARTAO"),
	}

	assert.Empty(t, m.Suggest(txn, nil, entries).Combination)
}

func TestSuggestMany(t *testing.T) {
	m := New(DefaultConfig())
	txns := []*ledger.BankTransaction{
		bankTxn("b1", -120, day(2024, time.March, 4), "PIX", category.Pix),
		bankTxn("b2", -80, day(2024, time.March, 5), "PIX", category.Pix),
	}

	entries := []*ledger.LedgerEntry{
		entry("total", -200, day(2024, time.March, 4), "A", "PIX"),
		entry("partial", -120, day(2024, time.March, 4), "B", "PIX"),
		entry("total-far", -200, day(2024, time.April, 1), "C", "PIX"),
	}

	res := m.SuggestMany(txns, entries)
	assert.Equal(t, []string{"total"}, ids(res.SameValueSameDate))
	assert.Equal(t, []string{"total-far"}, ids(res.SameValueOtherDate))
}

func TestSuggestDoesNotMutate(t *testing.T) {
	m := New(DefaultConfig())
	txn := bankTxn("b1", -250, day(2024, time.March, 4), "PAGAMENTO BOLETO", category.Boleto)
	e := entry("s1", -250, day(2024, time.March, 4), "A", "BOLETO")

	_ = m.Suggest(txn, []*ledger.BankTransaction{txn}, []*ledger.LedgerEntry{e})

	assert.False(t, e.Reconciled)
	assert.Empty(t, e.PairKey)
	assert.False(t, txn.Reconciled)
}
