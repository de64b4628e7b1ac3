package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ledgermatch/ledgermatch/internal/api"
	"github.com/ledgermatch/ledgermatch/internal/domain/matcher"
	"github.com/ledgermatch/ledgermatch/internal/domain/recon"
	"github.com/ledgermatch/ledgermatch/internal/infrastructure/config"
	"github.com/ledgermatch/ledgermatch/internal/infrastructure/logging"
	"github.com/ledgermatch/ledgermatch/internal/infrastructure/storage"

	"github.com/shopspring/decimal"
)

func main() {
	configPath := os.Getenv("LEDGERMATCH_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg := config.LoadOrEnvWithPath(configPath)

	logger := logging.NewLoggerWithSystem(cfg.Observability.Logging, "api")

	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Error("failed to open storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	matcherCfg := matcher.Config{
		BusinessDayWindow: cfg.Matcher.BusinessDayWindow,
		MinTokenLen:       cfg.Matcher.MinTokenLen,
		MinTokenOverlap:   cfg.Matcher.MinTokenOverlap,
		MaxCandidates:     cfg.Matcher.MaxCandidates,
	}
	if cfg.Matcher.CardTolerance > 0 {
		matcherCfg.CardTolerance = decimal.NewFromFloat(cfg.Matcher.CardTolerance)
	}

	session := recon.NewSession(matcher.New(matcherCfg), logging.NewLoggerWithSystem(cfg.Observability.Logging, "recon"))

	snap, err := store.LoadSnapshot(context.Background())
	if err != nil {
		logger.Error("failed to load saved state", slog.String("error", err.Error()))
		os.Exit(1)
	}
	session.Restore(snap.BankTransactions, snap.LedgerEntries, snap.StatementFiles, snap.ReportFiles)

	server := api.NewServer(session, store, cfg, logger)
	router := server.Router(cfg.Server.AllowedOrigins)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("server listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
