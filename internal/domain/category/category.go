// Package category maps free-text transaction descriptions and ledger
// type fields to the closed payment-type taxonomy shared by both sides
// of the reconciliation.
package category

import (
	"strings"

	"github.com/ledgermatch/ledgermatch/internal/domain/textnorm"
)

// PaymentType is one of the closed payment categories. The string
// values are shared between the statement and ledger sides so that
// cross-side comparisons are meaningful.
type PaymentType string

const (
	Pix        PaymentType = "PIX"
	Card       PaymentType = "CARTAO"
	Boleto     PaymentType = "BOLETO"
	Cheque     PaymentType = "CHEQUE"
	Rendimento PaymentType = "RENDIMENTO"
	Other      PaymentType = "OUTRO"
)

// All lists every payment type, suggestion-priority order aside.
func All() []PaymentType {
	return []PaymentType{Pix, Card, Boleto, Cheque, Rendimento, Other}
}

// paymentColors maps each category to its fixed display color. The
// core never renders these; downstream surfaces do.
var paymentColors = map[PaymentType]string{
	Pix:        "#1E90FF",
	Card:       "#28a745",
	Boleto:     "#dc3545",
	Cheque:     "#ffa322",
	Rendimento: "#ff7ccd",
	Other:      "#999999",
}

// Color returns the display color for a payment type.
func Color(t PaymentType) string {
	if c, ok := paymentColors[t]; ok {
		return c
	}
	return paymentColors[Other]
}

func containsAny(s string, stems ...string) bool {
	for _, stem := range stems {
		if strings.Contains(s, stem) {
			return true
		}
	}
	return false
}

// ClassifyStatement classifies a bank statement description. Stems are
// tested most-specific first: a description carrying both "debito" and
// "pix" is a card settlement, not a transfer.
func ClassifyStatement(desc string) PaymentType {
	if desc == "" {
		return Other
	}
	t := strings.ToLower(textnorm.StripAccents(desc))

	switch {
	case containsAny(t, "cartao", "carto", "credito", "debito"):
		return Card
	case containsAny(t, "boleto", "cobrana"):
		return Boleto
	case containsAny(t, "rendimento", "rende"):
		return Rendimento
	case containsAny(t, "pix", "dinheiro", "transf", "doc", "ted"):
		return Pix
	case strings.Contains(t, "cheque"):
		return Cheque
	}
	return Other
}

// ClassifyLedger classifies the ledger's free-text type field. The
// ledger side tests transfer stems first because legacy report types
// spell wire transfers out ("TRANSF DOC/TED") while card rows always
// say so explicitly.
func ClassifyLedger(rawType string) PaymentType {
	t := strings.ToLower(textnorm.StripAccents(rawType))

	switch {
	case containsAny(t, "pix", "transf", "doc", "ted"):
		return Pix
	case strings.Contains(t, "cheque"):
		return Cheque
	case containsAny(t, "cartao", "carto", "credito", "debito"):
		return Card
	case containsAny(t, "boleto", "cobrana"):
		return Boleto
	case containsAny(t, "rendimento", "rende"):
		return Rendimento
	}
	return Other
}
