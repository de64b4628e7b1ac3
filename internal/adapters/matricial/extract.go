package matricial

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgermatch/ledgermatch/internal/domain/ledger"
	"github.com/ledgermatch/ledgermatch/internal/domain/textnorm"
)

var (
	// Matched against accent-stripped text, which also drops the
	// colon of "Página: N de M".
	pageMarker  = regexp.MustCompile(`(?i)^(pagina|page):?\s*\d+`)
	valueAnchor = regexp.MustCompile(`\d+[.,]\d{2}`)
	payDate     = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	amountNum   = regexp.MustCompile(`-?\d+(\.\d+)?`)
	nonDigit    = regexp.MustCompile(`\D`)
)

// Stems that mark a report as a payables (outflow) listing. Matched
// against both the file name and the document text.
var outflowStems = []string{"paga", "saida", "desp", "deb", "retir"}

// Extractor turns positioned report cells into ledger entries.
type Extractor struct {
	columns Columns
}

// NewExtractor creates an extractor. A zero Columns falls back to the
// stock layout.
func NewExtractor(cols Columns) *Extractor {
	if cols.IsZero() {
		cols = DefaultColumns()
	}
	return &Extractor{columns: cols}
}

// Parse extracts the ledger entries of a report document.
func (x *Extractor) Parse(doc, filename string) ([]*ledger.LedgerEntry, error) {
	items, err := ExtractItems(doc)
	if err != nil {
		return nil, fmt.Errorf("parsing report html: %w", err)
	}
	return x.FromItems(items, doc, filename), nil
}

// FromItems runs the grid walk over already-extracted cells. doc is
// only consulted for the outflow stems.
func (x *Extractor) FromItems(items []Item, doc, filename string) []*ledger.LedgerEntry {
	outflow := isOutflowReport(doc, filename)
	direction := ledger.Inflow
	sign := decimal.NewFromInt(1)
	if outflow {
		direction = ledger.Outflow
		sign = decimal.NewFromInt(-1)
	}

	rows := groupRows(items)

	var (
		out      []*ledger.LedgerEntry
		current  *ledger.LedgerEntry
		seq      int
		lastPage = -1
	)

	for _, row := range rows {
		// A page break closes whatever entry is still open.
		if row.page != lastPage {
			if lastPage >= 0 && current != nil {
				out = append(out, current)
				current = nil
			}
			lastPage = row.page
		}

		var pendingClient, pendingDocument string
		anchored := false

		for _, cell := range row.cells {
			text := cell.Text

			// A value cell opens a new entry and closes the previous
			// one, taking the identity cells seen so far in this row.
			if x.columns.Value.Contains(cell.Left) && valueAnchor.MatchString(text) {
				if current != nil {
					out = append(out, current)
				}
				current = &ledger.LedgerEntry{
					ID:         fmt.Sprintf("%s_%d", filename, seq),
					SourceFile: filename,
					Direction:  direction,
					Client:     pendingClient,
					Document:   pendingDocument,
					Amount:     parseBrazilianAmount(text).Mul(sign),
				}
				seq++
				anchored = true
				continue
			}

			// Identity cells belong to the row's own entry: ahead of
			// the anchor they are held for it, after the anchor they
			// land on it directly.
			if x.columns.Client.Contains(cell.Left) {
				v := textnorm.StripAccents(text)
				if anchored {
					current.Client = v
				} else {
					pendingClient = v
				}
				continue
			}
			if x.columns.Document.Contains(cell.Left) {
				v := textnorm.StripAccents(text)
				if anchored {
					current.Document = v
				} else {
					pendingDocument = v
				}
				continue
			}

			// The remaining columns spill onto the open entry even
			// when it was anchored on an earlier row: the report
			// wraps long rows across several top offsets.
			if current == nil {
				continue
			}
			switch {
			case x.columns.PayDate.Contains(cell.Left) && payDate.MatchString(text):
				if d, err := time.Parse("02/01/2006", text); err == nil {
					current.Date = d
				}
			case x.columns.Type.Contains(cell.Left):
				current.RawType = textnorm.StripAccents(text)
			case x.columns.Salesperson.Contains(cell.Left):
				current.Salesperson = textnorm.StripAccents(text)
			case x.columns.Invoice.Contains(cell.Left) && current.InvoiceNumber == "":
				if digits := nonDigit.ReplaceAllString(text, ""); digits != "" {
					current.InvoiceNumber = digits
				}
			}
		}
	}

	if current != nil {
		out = append(out, current)
	}
	return out
}

type gridRow struct {
	page  int
	cells []Item
}

// groupRows buckets cells by (page, top) in document order. Page
// marker cells bump the page counter and are not part of any row.
func groupRows(items []Item) []gridRow {
	type rowKey struct {
		page int
		top  int
	}

	var (
		order []rowKey
		rows  = make(map[rowKey][]Item)
		page  int
	)

	for _, it := range items {
		marker := strings.ToLower(textnorm.StripAccents(it.Text))
		if pageMarker.MatchString(marker) {
			page++
			continue
		}
		key := rowKey{page, it.Top}
		if _, ok := rows[key]; !ok {
			order = append(order, key)
		}
		rows[key] = append(rows[key], it)
	}

	out := make([]gridRow, len(order))
	for i, key := range order {
		out[i] = gridRow{page: key.page, cells: rows[key]}
	}
	return out
}

// parseBrazilianAmount reads the first number of a value cell written
// with '.' as the thousands separator and ',' as the decimal mark.
func parseBrazilianAmount(text string) decimal.Decimal {
	t := strings.ReplaceAll(text, ".", "")
	t = strings.ReplaceAll(t, ",", ".")
	m := amountNum.FindString(t)
	if m == "" {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Zero
	}
	return v
}

func isOutflowReport(doc, filename string) bool {
	content := textnorm.StripAccents(strings.ToLower(doc))
	fname := textnorm.StripAccents(strings.ToLower(filename))
	for _, stem := range outflowStems {
		if strings.Contains(content, stem) || strings.Contains(fname, stem) {
			return true
		}
	}
	return false
}
