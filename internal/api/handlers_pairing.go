package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type reconcileRequest struct {
	BankIDs   []string `json:"bank_ids"`
	LedgerIDs []string `json:"ledger_ids"`
}

func (s *Server) reconcile(c *gin.Context) {
	var req reconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "bank_ids and ledger_ids are required")
		return
	}

	key, err := s.session.Reconcile(req.BankIDs, req.LedgerIDs)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pair_key": key})
}

type manualReconcileRequest struct {
	LedgerID string `json:"ledger_id" binding:"required"`
}

func (s *Server) reconcileManual(c *gin.Context) {
	var req manualReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "ledger_id is required")
		return
	}

	placeholder, err := s.session.ReconcileManual(req.LedgerID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toBankResponse(placeholder))
}

type cancelRequest struct {
	PairKey string `json:"pair_key" binding:"required"`
}

func (s *Server) cancel(c *gin.Context) {
	var req cancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "pair_key is required")
		return
	}

	if err := s.session.Cancel(req.PairKey); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type toggleRequest struct {
	ID string `json:"id" binding:"required"`
}

func (s *Server) toggleDisabled(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "id is required")
		return
	}

	if err := s.session.ToggleDisabled(req.ID); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) suggestions(c *gin.Context) {
	ids := c.QueryArray("bank_id")
	if len(ids) == 0 {
		badRequest(c, "at least one bank_id is required")
		return
	}

	if len(ids) == 1 {
		set, err := s.session.Suggest(ids[0])
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, toSuggestionResponse(set))
		return
	}

	set, err := s.session.SuggestMany(ids)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toSuggestionResponse(set))
}
