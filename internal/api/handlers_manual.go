package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/ledgermatch/ledgermatch/internal/domain/recon"
)

type manualEntryRequest struct {
	Client        string `json:"client"`
	Document      string `json:"document"`
	Amount        string `json:"amount"`
	Date          string `json:"date"`
	InvoiceNumber string `json:"invoice_number"`
	Salesperson   string `json:"salesperson"`
	RawType       string `json:"raw_type"`
}

func (r manualEntryRequest) toInput() (recon.ManualEntryInput, error) {
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return recon.ManualEntryInput{}, err
	}
	return recon.ManualEntryInput{
		Client:        r.Client,
		Document:      r.Document,
		Amount:        amount,
		Date:          r.Date,
		InvoiceNumber: r.InvoiceNumber,
		Salesperson:   r.Salesperson,
		RawType:       r.RawType,
	}, nil
}

func (s *Server) createManualEntry(c *gin.Context) {
	var req manualEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	in, err := req.toInput()
	if err != nil {
		badRequest(c, "invalid amount")
		return
	}

	entry, err := s.session.AddManualEntry(in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toEntryResponse(entry))
}

func (s *Server) updateManualEntry(c *gin.Context) {
	var req manualEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	in, err := req.toInput()
	if err != nil {
		badRequest(c, "invalid amount")
		return
	}

	entry, err := s.session.UpdateManualEntry(c.Param("id"), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toEntryResponse(entry))
}

func (s *Server) deleteManualEntry(c *gin.Context) {
	if err := s.session.DeleteManualEntry(c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
