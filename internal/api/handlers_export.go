package api

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/ledgermatch/ledgermatch/internal/adapters/pixcode"
	"github.com/ledgermatch/ledgermatch/internal/domain/ledger"
	"github.com/ledgermatch/ledgermatch/internal/export"
	"github.com/ledgermatch/ledgermatch/internal/infrastructure/storage"
)

func (s *Server) exportCSV(c *gin.Context) {
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, s.session.BankTransactions(ledger.Filter{})); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.FileName(time.Now())+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

type pixRequest struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Amount string `json:"amount" binding:"required"`
	TxID   string `json:"txid"`
}

func (s *Server) buildPixCode(c *gin.Context) {
	var req pixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "amount is required")
		return
	}

	key := req.Key
	if key == "" && req.Label != "" {
		key = s.pixKeys[req.Label]
	}
	if key == "" {
		badRequest(c, "a pix key or a configured key label is required")
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		badRequest(c, "invalid amount")
		return
	}

	txid := req.TxID
	if txid == "" {
		txid = pixcode.RandomTxID()
	}

	payload, err := s.pix.Build(key, amount, txid)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"payload": payload, "txid": txid})
}

func (s *Server) saveState(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "persistence is not configured"})
		return
	}

	snap := storage.Snapshot{
		BankTransactions: s.session.BankTransactions(ledger.Filter{}),
		LedgerEntries:    s.session.LedgerEntries(ledger.Filter{}),
		StatementFiles:   s.session.StatementFiles(),
		ReportFiles:      s.session.ReportFiles(),
	}
	if err := s.store.SaveSnapshot(c.Request.Context(), snap); err != nil {
		s.logger.Error("failed to save session state", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save state"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) loadState(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "persistence is not configured"})
		return
	}

	snap, err := s.store.LoadSnapshot(c.Request.Context())
	if err != nil {
		s.logger.Error("failed to load session state", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load state"})
		return
	}

	s.session.Restore(snap.BankTransactions, snap.LedgerEntries, snap.StatementFiles, snap.ReportFiles)
	c.JSON(http.StatusOK, gin.H{
		"bank_count":   len(snap.BankTransactions),
		"system_count": len(snap.LedgerEntries),
	})
}
