// Package commands implements the ledgermatch CLI.
package commands

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ledgermatch/ledgermatch/internal/domain/ledger"
	"github.com/ledgermatch/ledgermatch/internal/domain/matcher"
	"github.com/ledgermatch/ledgermatch/internal/domain/recon"
	"github.com/ledgermatch/ledgermatch/internal/infrastructure/config"
	"github.com/ledgermatch/ledgermatch/internal/infrastructure/logging"
	"github.com/ledgermatch/ledgermatch/internal/infrastructure/storage"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "ledgermatch",
		Short: "Reconcile bank statements against system receivable reports",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the configuration file")

	rootCmd.AddCommand(newImportCommand(&configPath))
	rootCmd.AddCommand(newSuggestCommand(&configPath))
	rootCmd.AddCommand(newExportCommand(&configPath))
	rootCmd.AddCommand(newServeCommand(&configPath))
	rootCmd.AddCommand(newPixCommand(&configPath))

	return rootCmd
}

// matcherFromConfig builds the suggestion engine from config, letting
// zero values fall through to the engine defaults.
func matcherFromConfig(cfg config.MatcherConfig) *matcher.Matcher {
	mc := matcher.Config{
		BusinessDayWindow: cfg.BusinessDayWindow,
		MinTokenLen:       cfg.MinTokenLen,
		MinTokenOverlap:   cfg.MinTokenOverlap,
		MaxCandidates:     cfg.MaxCandidates,
	}
	if cfg.CardTolerance > 0 {
		mc.CardTolerance = decimal.NewFromFloat(cfg.CardTolerance)
	}
	return matcher.New(mc)
}

// openSession loads the configuration, opens the snapshot store and
// hydrates a session from it.
func openSession(configPath string) (*recon.Session, *storage.Storage, *config.Config, error) {
	cfg := config.LoadOrEnvWithPath(configPath)
	logger := logging.NewLogger(cfg.Observability.Logging)

	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening database %s: %w", cfg.Storage.DatabasePath, err)
	}

	session := recon.NewSession(matcherFromConfig(cfg.Matcher), logger)

	snap, err := store.LoadSnapshot(context.Background())
	if err != nil {
		_ = store.Close()
		return nil, nil, nil, fmt.Errorf("loading session state: %w", err)
	}
	session.Restore(snap.BankTransactions, snap.LedgerEntries, snap.StatementFiles, snap.ReportFiles)

	return session, store, cfg, nil
}

// saveSession writes the session back to the snapshot store.
func saveSession(session *recon.Session, store *storage.Storage) error {
	snap := storage.Snapshot{
		BankTransactions: session.BankTransactions(ledger.Filter{}),
		LedgerEntries:    session.LedgerEntries(ledger.Filter{}),
		StatementFiles:   session.StatementFiles(),
		ReportFiles:      session.ReportFiles(),
	}
	return store.SaveSnapshot(context.Background(), snap)
}
