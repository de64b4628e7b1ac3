package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgermatch/ledgermatch/internal/adapters/ofx"
)

type importRequest struct {
	Filename string `json:"filename" binding:"required"`
	Content  string `json:"content" binding:"required"`
}

func (s *Server) importStatement(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "filename and content are required")
		return
	}

	records := ofx.Parse(req.Content, req.Filename)
	added, err := s.session.AddStatementRecords(req.Filename, records)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"file":   req.Filename,
		"parsed": len(records),
		"added":  added,
	})
}

func (s *Server) importReport(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "filename and content are required")
		return
	}

	records, err := s.extractor.Parse(req.Content, req.Filename)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	added, err := s.session.AddReportRecords(req.Filename, records)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"file":   req.Filename,
		"parsed": len(records),
		"added":  added,
	})
}

func (s *Server) removeStatementFile(c *gin.Context) {
	s.session.RemoveStatementFile(c.Param("name"))
	c.Status(http.StatusNoContent)
}

func (s *Server) removeReportFile(c *gin.Context) {
	s.session.RemoveReportFile(c.Param("name"))
	c.Status(http.StatusNoContent)
}

func (s *Server) listFiles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"statement_files": s.session.StatementFiles(),
		"report_files":    s.session.ReportFiles(),
	})
}
