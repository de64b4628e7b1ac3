// Package ofx reads bank statement exports in the loosely structured
// OFX dialect Brazilian banks produce. The files are SGML-ish: tags
// open but rarely close, so the parser works on tag-to-next-angle
// slices rather than a document tree.
package ofx

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgermatch/ledgermatch/internal/domain/category"
	"github.com/ledgermatch/ledgermatch/internal/domain/ledger"
	"github.com/ledgermatch/ledgermatch/internal/domain/textnorm"
)

var (
	stmtOpen  = regexp.MustCompile(`(?i)<STMTTRN>`)
	stmtClose = regexp.MustCompile(`(?i)</STMTTRN>`)

	trnAmt   = regexp.MustCompile(`(?i)<TRNAMT>([^<]*)`)
	dtPosted = regexp.MustCompile(`(?i)<DTPOSTED>([^<]*)`)
	nameTag  = regexp.MustCompile(`(?i)<NAME>([^<]*)`)
	memoTag  = regexp.MustCompile(`(?i)<MEMO>([^<]*)`)

	datePrefix = regexp.MustCompile(`(\d{4})(\d{2})(\d{2})`)
)

// BankInfo identifies the issuing bank of a statement file.
type BankInfo struct {
	Code string
	Name string
}

// Parse extracts the bank transactions from an OFX document. Malformed
// blocks degrade to zero values instead of failing the import: a
// statement with one broken transaction still loads.
func Parse(text, filename string) []*ledger.BankTransaction {
	bank := DetectBank(text, filename)

	text = strings.ReplaceAll(text, "\x00", "")
	text = strings.ReplaceAll(text, "\r", "\n")

	parts := stmtOpen.Split(text, -1)
	items := make([]*ledger.BankTransaction, 0, len(parts))

	for i := 1; i < len(parts); i++ {
		block := stmtClose.Split(parts[i], 2)[0]

		amount := decimal.Zero
		if raw := field(trnAmt, block); raw != "" {
			if v, err := decimal.NewFromString(raw); err == nil {
				amount = v
			}
		}

		var date time.Time
		if raw := field(dtPosted, block); raw != "" {
			if m := datePrefix.FindStringSubmatch(raw); m != nil {
				if d, err := time.Parse("20060102", m[1]+m[2]+m[3]); err == nil {
					date = d
				}
			}
		}

		rawDesc := field(nameTag, block)
		if rawDesc == "" {
			rawDesc = field(memoTag, block)
		}
		desc := textnorm.StripAccents(rawDesc)

		items = append(items, &ledger.BankTransaction{
			ID:          fmt.Sprintf("%s_%d", filename, i),
			SourceFile:  filename,
			BankCode:    bank.Code,
			BankName:    bank.Name,
			Date:        date,
			Amount:      amount,
			Description: desc,
			PaymentType: category.ClassifyStatement(desc),
		})
	}

	return items
}

func field(re *regexp.Regexp, block string) string {
	m := re.FindStringSubmatch(block)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// DetectBank identifies the issuing bank, preferring content markers
// over filename hints. OFX header tags are scanned in the raw text
// since accent stripping would eat the angle brackets.
func DetectBank(text, filename string) BankInfo {
	raw := strings.ToLower(text)
	clean := textnorm.StripAccents(raw)
	fname := textnorm.StripAccents(strings.ToLower(filename))

	switch {
	case strings.Contains(clean, "banco do brasil"),
		strings.Contains(raw, "<org>bb"),
		strings.Contains(raw, "<bankid>001"):
		return BankInfo{Code: "001", Name: "Banco do Brasil"}
	case strings.Contains(clean, "stone"),
		strings.Contains(raw, "<org>stone"):
		return BankInfo{Code: "197", Name: "Stone"}
	case strings.Contains(fname, "bb"),
		strings.Contains(fname, "brasil"):
		return BankInfo{Code: "001", Name: "Banco do Brasil"}
	case strings.Contains(fname, "stone"):
		return BankInfo{Code: "197", Name: "Stone"}
	}
	return BankInfo{Code: "999", Name: "Banco Desconhecido"}
}
