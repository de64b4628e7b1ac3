// Package api exposes the reconciliation session over HTTP for the
// web frontend. All state lives in the session; the handlers are thin
// translations between JSON and session operations.
package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ledgermatch/ledgermatch/internal/adapters/matricial"
	"github.com/ledgermatch/ledgermatch/internal/adapters/pixcode"
	"github.com/ledgermatch/ledgermatch/internal/domain/recon"
	"github.com/ledgermatch/ledgermatch/internal/infrastructure/config"
	"github.com/ledgermatch/ledgermatch/internal/infrastructure/storage"
)

// Server wires the session, its adapters and persistence behind the
// HTTP surface.
type Server struct {
	session   *recon.Session
	store     *storage.Storage
	extractor *matricial.Extractor
	pix       pixcode.Builder
	pixKeys   map[string]string
	logger    *slog.Logger
}

// NewServer creates a server. store may be nil, which disables the
// state save/load endpoints.
func NewServer(session *recon.Session, store *storage.Storage, cfg *config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		session:   session,
		store:     store,
		extractor: matricial.NewExtractor(cfg.Report.Columns),
		pix: pixcode.Builder{
			ReceiverName: cfg.Pix.ReceiverName,
			ReceiverCity: cfg.Pix.ReceiverCity,
		},
		pixKeys: cfg.Pix.Keys,
		logger:  logger,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router(allowedOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/health"},
	}))

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api := router.Group("/api")
	{
		api.POST("/import/statement", s.importStatement)
		api.POST("/import/report", s.importReport)
		api.DELETE("/files/statement/:name", s.removeStatementFile)
		api.DELETE("/files/report/:name", s.removeReportFile)
		api.GET("/files", s.listFiles)

		api.GET("/bank", s.listBank)
		api.GET("/system", s.listSystem)
		api.GET("/totals", s.totals)

		api.GET("/suggestions", s.suggestions)

		api.POST("/reconcile", s.reconcile)
		api.POST("/reconcile/manual", s.reconcileManual)
		api.POST("/cancel", s.cancel)
		api.POST("/toggle-disabled", s.toggleDisabled)

		api.POST("/manual-entry", s.createManualEntry)
		api.PUT("/manual-entry/:id", s.updateManualEntry)
		api.DELETE("/manual-entry/:id", s.deleteManualEntry)

		api.GET("/export", s.exportCSV)
		api.POST("/pix", s.buildPixCode)

		api.POST("/state/save", s.saveState)
		api.POST("/state/load", s.loadState)
		api.POST("/reset", s.reset)
	}

	return router
}

// fail maps session errors onto HTTP status codes.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, recon.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, recon.ErrFileAlreadyImported),
		errors.Is(err, recon.ErrAlreadyReconciled):
		status = http.StatusConflict
	case errors.Is(err, recon.ErrDisabledRecord):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, recon.ErrEmptySelection),
		errors.Is(err, recon.ErrMissingFields),
		errors.Is(err, recon.ErrNotManualEntry):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
