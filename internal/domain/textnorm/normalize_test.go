package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripAccents(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"diacritics", "Conciliação Bancária", "Conciliacao Bancaria"},
		{"symbols dropped", "JOSÉ & FILHOS LTDA.", "JOSE  FILHOS LTDA"},
		{"digits kept", "NF 4101/2024", "NF 41012024"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripAccents(tt.input))
		})
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"stop words removed", "PIX TRANSF JOSE DA SILVA 123", "jose da silva"},
		{"jargon and digits", "Pagamento cartao debito 44,90 MERCADO CENTRAL", "mercado central"},
		{"accents lowered", "MARIA AUXILIADORA ÇÃO", "maria auxiliadora cao"},
		{"only jargon", "pix transf ref id", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Conciliação Bancária",
		"PIX TRANSF JOSÉ DA SILVA 123",
		"ref4101 pagamento",
		"",
		"   spaced   out   ",
	}

	for _, in := range inputs {
		once := NormalizeName(in)
		assert.Equal(t, once, NormalizeName(once), "NormalizeName not idempotent for %q", in)

		stripped := StripAccents(in)
		assert.Equal(t, stripped, StripAccents(stripped), "StripAccents not idempotent for %q", in)
	}
}

func TestTokens(t *testing.T) {
	got := Tokens("jose da silva comercio", 4)
	assert.Equal(t, []string{"jose", "silva", "comercio"}, got)

	assert.Empty(t, Tokens("", 4))
	assert.Empty(t, Tokens("a b c", 4))
}
