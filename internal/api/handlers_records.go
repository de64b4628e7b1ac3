package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) listBank(c *gin.Context) {
	f := filterFromQuery(c)
	c.JSON(http.StatusOK, toBankResponses(s.session.BankTransactions(f)))
}

func (s *Server) listSystem(c *gin.Context) {
	f := filterFromQuery(c)
	c.JSON(http.StatusOK, toEntryResponses(s.session.LedgerEntries(f)))
}

func (s *Server) totals(c *gin.Context) {
	f := filterFromQuery(c)
	c.JSON(http.StatusOK, gin.H{
		"bank":               toTotalsResponse(s.session.BankTotals(f)),
		"system":             toTotalsResponse(s.session.LedgerTotals(f)),
		"unreconciled_count": s.session.UnreconciledBankCount(),
	})
}

func (s *Server) reset(c *gin.Context) {
	s.session.Reset()
	c.Status(http.StatusNoContent)
}
