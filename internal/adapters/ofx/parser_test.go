package ofx

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgermatch/ledgermatch/internal/domain/category"
	"github.com/ledgermatch/ledgermatch/internal/domain/ledger"
)

const sampleStatement = `OFXHEADER:100
DATA:OFXSGML

<OFX>
<BANKMSGSRSV1>
<STMTTRNRS>
<STMTRS>
<BANKACCTFROM>
<BANKID>001
<ORG>BB
</BANKACCTFROM>
<BANKTRANLIST>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[-3:BRT]
<TRNAMT>-50.00
<NAME>JOHN
</STMTTRN>
<stmttrn>
<TRNAMT>1250.33
<DTPOSTED>20240116
<MEMO>PIX RECEBIDO JOSÉ ARAÚJO
</stmttrn>
<STMTTRN>
<TRNTYPE>CREDIT
</STMTTRN>
</BANKTRANLIST>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

func TestParseStatement(t *testing.T) {
	items := Parse(sampleStatement, "extrato_bb.ofx")
	require.Len(t, items, 3)

	first := items[0]
	assert.Equal(t, "extrato_bb.ofx_1", first.ID)
	assert.Equal(t, "extrato_bb.ofx", first.SourceFile)
	assert.Equal(t, "001", first.BankCode)
	assert.Equal(t, "Banco do Brasil", first.BankName)
	assert.Equal(t, "2024-01-15", ledger.ISODate(first.Date))
	assert.True(t, first.Amount.Equal(decimal.NewFromFloat(-50.00)))
	assert.Equal(t, "JOHN", first.Description)

	// MEMO fallback, accent stripping, case-insensitive block tags.
	second := items[1]
	assert.Equal(t, "extrato_bb.ofx_2", second.ID)
	assert.Equal(t, "PIX RECEBIDO JOSE ARAUJO", second.Description)
	assert.Equal(t, category.Pix, second.PaymentType)
	assert.True(t, second.Amount.Equal(decimal.NewFromFloat(1250.33)))

	// Block with no amount, date or description degrades to zeros.
	third := items[2]
	assert.True(t, third.Amount.IsZero())
	assert.True(t, third.Date.IsZero())
	assert.Empty(t, third.Description)
	assert.Equal(t, category.Other, third.PaymentType)
}

func TestParseEmptyInput(t *testing.T) {
	assert.Empty(t, Parse("", "vazio.ofx"))
	assert.Empty(t, Parse("no transactions here", "vazio.ofx"))
}

func TestParseStripsControlCharacters(t *testing.T) {
	text := "<STMTTRN>\x00<TRNAMT>10.00\r<NAME>MARIA\r</STMTTRN>"
	items := Parse(text, "a.ofx")
	require.Len(t, items, 1)
	assert.True(t, items[0].Amount.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, "MARIA", items[0].Description)
}

func TestDetectBank(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		filename string
		want     BankInfo
	}{
		{"content org tag", "<OFX><ORG>BB</OFX>", "x.ofx", BankInfo{"001", "Banco do Brasil"}},
		{"content bank id", "<BANKID>001", "x.ofx", BankInfo{"001", "Banco do Brasil"}},
		{"content name", "Extrato Banco do Brasil SA", "x.ofx", BankInfo{"001", "Banco do Brasil"}},
		{"stone content", "<ORG>STONE PAGAMENTOS", "x.ofx", BankInfo{"197", "Stone"}},
		{"filename bb", "", "extrato_bb_jan.ofx", BankInfo{"001", "Banco do Brasil"}},
		{"filename stone", "", "stone-jan.ofx", BankInfo{"197", "Stone"}},
		{"content beats filename", "stone", "bb.ofx", BankInfo{"197", "Stone"}},
		{"unknown", "whatever", "extrato.ofx", BankInfo{"999", "Banco Desconhecido"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectBank(tt.text, tt.filename))
		})
	}
}
