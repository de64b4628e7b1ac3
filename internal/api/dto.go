package api

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ledgermatch/ledgermatch/internal/domain/category"
	"github.com/ledgermatch/ledgermatch/internal/domain/ledger"
	"github.com/ledgermatch/ledgermatch/internal/domain/matcher"
)

// BankTransactionResponse is the JSON shape of a statement record.
type BankTransactionResponse struct {
	ID             string        `json:"id"`
	SourceFile     string        `json:"source_file"`
	BankCode       string        `json:"bank_code"`
	BankName       string        `json:"bank_name"`
	Date           string        `json:"date,omitempty"`
	Amount         string        `json:"amount"`
	Description    string        `json:"description"`
	PaymentType    string        `json:"payment_type"`
	Color          string        `json:"color"`
	Reconciled     bool          `json:"reconciled"`
	Disabled       bool          `json:"disabled"`
	PairKey        string        `json:"pair_key,omitempty"`
	InvoiceNumbers []string      `json:"invoice_numbers,omitempty"`
	Counterparty   *Counterparty `json:"counterparty,omitempty"`
}

// Counterparty mirrors the ledger-side identity copied onto a bank
// record at pairing time.
type Counterparty struct {
	Name     string `json:"name"`
	Document string `json:"document"`
	Type     string `json:"type"`
	Date     string `json:"date,omitempty"`
}

// LedgerEntryResponse is the JSON shape of a system record.
type LedgerEntryResponse struct {
	ID            string `json:"id"`
	SourceFile    string `json:"source_file"`
	Direction     string `json:"direction"`
	Client        string `json:"client"`
	Document      string `json:"document"`
	Amount        string `json:"amount"`
	Date          string `json:"date,omitempty"`
	InvoiceNumber string `json:"invoice_number,omitempty"`
	Salesperson   string `json:"salesperson,omitempty"`
	RawType       string `json:"raw_type"`
	PaymentType   string `json:"payment_type"`
	Color         string `json:"color"`
	Reconciled    bool   `json:"reconciled"`
	Disabled      bool   `json:"disabled"`
	PairKey       string `json:"pair_key,omitempty"`
	Manual        bool   `json:"manual"`
}

// TotalsResponse summarizes one side of the session.
type TotalsResponse struct {
	Count    int    `json:"count"`
	Inflows  string `json:"inflows"`
	Outflows string `json:"outflows"`
	Balance  string `json:"balance"`
}

// SuggestionSetResponse groups candidates by rule.
type SuggestionSetResponse struct {
	SameSender         []BankTransactionResponse `json:"same_sender"`
	SameName           []LedgerEntryResponse     `json:"same_name"`
	SameValueSameDate  []LedgerEntryResponse     `json:"same_value_same_date"`
	SameValueOtherDate []LedgerEntryResponse     `json:"same_value_other_date"`
	Combination        []LedgerEntryResponse     `json:"combination"`
	Empty              bool                      `json:"empty"`
}

func toBankResponse(t *ledger.BankTransaction) BankTransactionResponse {
	resp := BankTransactionResponse{
		ID:             t.ID,
		SourceFile:     t.SourceFile,
		BankCode:       t.BankCode,
		BankName:       t.BankName,
		Date:           ledger.ISODate(t.Date),
		Amount:         t.Amount.StringFixed(2),
		Description:    t.Description,
		PaymentType:    string(t.PaymentType),
		Color:          category.Color(t.PaymentType),
		Reconciled:     t.Reconciled,
		Disabled:       t.Disabled,
		PairKey:        t.PairKey,
		InvoiceNumbers: t.InvoiceNumbers,
	}
	if t.Counterparty.Name != "" || t.Counterparty.Document != "" {
		resp.Counterparty = &Counterparty{
			Name:     t.Counterparty.Name,
			Document: t.Counterparty.Document,
			Type:     t.Counterparty.Type,
			Date:     ledger.ISODate(t.Counterparty.Date),
		}
	}
	return resp
}

func toEntryResponse(e *ledger.LedgerEntry) LedgerEntryResponse {
	cat := e.Category()
	return LedgerEntryResponse{
		ID:            e.ID,
		SourceFile:    e.SourceFile,
		Direction:     string(e.Direction),
		Client:        e.Client,
		Document:      e.Document,
		Amount:        e.Amount.StringFixed(2),
		Date:          ledger.ISODate(e.Date),
		InvoiceNumber: e.InvoiceNumber,
		Salesperson:   e.Salesperson,
		RawType:       e.RawType,
		PaymentType:   string(cat),
		Color:         category.Color(cat),
		Reconciled:    e.Reconciled,
		Disabled:      e.Disabled,
		PairKey:       e.PairKey,
		Manual:        e.IsManual(),
	}
}

func toBankResponses(txns []*ledger.BankTransaction) []BankTransactionResponse {
	out := make([]BankTransactionResponse, len(txns))
	for i, t := range txns {
		out[i] = toBankResponse(t)
	}
	return out
}

func toEntryResponses(entries []*ledger.LedgerEntry) []LedgerEntryResponse {
	out := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = toEntryResponse(e)
	}
	return out
}

func toTotalsResponse(t ledger.Totals) TotalsResponse {
	return TotalsResponse{
		Count:    t.Count,
		Inflows:  t.Inflows.StringFixed(2),
		Outflows: t.Outflows.StringFixed(2),
		Balance:  t.Balance().StringFixed(2),
	}
}

func toSuggestionResponse(set matcher.SuggestionSet) SuggestionSetResponse {
	return SuggestionSetResponse{
		SameSender:         toBankResponses(set.SameSender),
		SameName:           toEntryResponses(set.SameName),
		SameValueSameDate:  toEntryResponses(set.SameValueSameDate),
		SameValueOtherDate: toEntryResponses(set.SameValueOtherDate),
		Combination:        toEntryResponses(set.Combination),
		Empty:              set.Empty(),
	}
}

// filterFromQuery reads the shared record filter query parameters.
func filterFromQuery(c *gin.Context) ledger.Filter {
	f := ledger.Filter{
		SourceFile:  c.Query("file"),
		PaymentType: category.PaymentType(strings.ToUpper(c.Query("type"))),
		Search:      c.Query("search"),
	}
	if start := c.Query("start"); start != "" {
		if d, err := time.Parse("2006-01-02", start); err == nil {
			f.Start = d
		}
	}
	if end := c.Query("end"); end != "" {
		if d, err := time.Parse("2006-01-02", end); err == nil {
			f.End = d
		}
	}
	switch c.Query("kind") {
	case "receber", "inflow":
		f.Direction = ledger.Inflow
	case "pagar", "outflow":
		f.Direction = ledger.Outflow
	}
	return f
}
