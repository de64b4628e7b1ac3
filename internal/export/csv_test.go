package export

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgermatch/ledgermatch/internal/domain/ledger"
)

func TestWriteCSV(t *testing.T) {
	txns := []*ledger.BankTransaction{
		{
			ID:             "b1",
			SourceFile:     "extrato_bb.ofx",
			Date:           time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			Amount:         decimal.NewFromFloat(1234.5),
			Description:    "PIX RECEBIDO; JOSE",
			Reconciled:     true,
			InvoiceNumbers: []string{"4101", "4102"},
			Counterparty: ledger.Counterparty{
				Name:     "JOSE; ARAUJO",
				Document: "12345678901",
			},
		},
		{
			ID:         "b2",
			SourceFile: "extrato_bb.ofx",
			Amount:     decimal.NewFromFloat(-50),
		},
	}

	var buf strings.Builder
	require.NoError(t, WriteCSV(&buf, txns))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "DATA;CONCILIADO;VALOR;NF;DOC;CLIENTE;DESCRICAO;ARQUIVO", lines[0])
	assert.Equal(t, "2024-03-15;S;1234.50;4101, 4102;12345678901;JOSE, ARAUJO;PIX RECEBIDO, JOSE;extrato_bb.ofx", lines[1])
	assert.Equal(t, ";N;-50.00;;;;;extrato_bb.ofx", lines[2])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "DATA;CONCILIADO;VALOR;NF;DOC;CLIENTE;DESCRICAO;ARQUIVO\n", buf.String())
}

func TestFileName(t *testing.T) {
	at := time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, "conciliado_2024-03-15.csv", FileName(at))
}
