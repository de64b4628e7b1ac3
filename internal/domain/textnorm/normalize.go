// Package textnorm provides the text normalization used for fuzzy
// comparison of statement descriptions and ledger client names.
//
// Two levels are exposed:
//   - StripAccents: diacritic and symbol removal, case preserved
//   - NormalizeName: full name normalization (lowercase, jargon stop
//     words, digits and punctuation removed, whitespace collapsed)
//
// Both functions are idempotent.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// accentStripper decomposes to NFD and drops combining marks, so
// "conciliação" becomes "conciliacao".
var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Transaction-jargon words that carry no identity information when
// comparing counterparty names across the two ledgers.
var stopWords = regexp.MustCompile(`\b(pix|transfer|transf|dinheiro|pagamento|compra|debito|credito|cartao|boleto|cobranca|ref|id)\b`)

var (
	digitRun   = regexp.MustCompile(`\d+`)
	nonLetter  = regexp.MustCompile(`[^a-z\s]`)
	whitespace = regexp.MustCompile(`\s+`)
)

// StripAccents removes diacritics and every character that is neither
// alphanumeric nor whitespace.
func StripAccents(s string) string {
	stripped, _, err := transform.String(accentStripper, s)
	if err != nil {
		stripped = s
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeName reduces a free-text description or client name to the
// lowercase word tokens that identify the counterparty. Digits are
// removed before the stop-word pass so that words glued to digits
// ("ref4101") cannot resurface on a second pass.
func NormalizeName(s string) string {
	t := strings.ToLower(StripAccents(s))
	t = digitRun.ReplaceAllString(t, " ")
	t = stopWords.ReplaceAllString(t, " ")
	t = nonLetter.ReplaceAllString(t, " ")
	t = whitespace.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

// Tokens splits a normalized name into tokens of at least minLen runes.
func Tokens(normalized string, minLen int) []string {
	fields := strings.Fields(normalized)
	tokens := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) >= minLen {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
