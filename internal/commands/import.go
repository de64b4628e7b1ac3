package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ledgermatch/ledgermatch/internal/adapters/matricial"
	"github.com/ledgermatch/ledgermatch/internal/adapters/ofx"
)

func newImportCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import statement and report files into the session",
	}
	cmd.AddCommand(newImportStatementCommand(configPath))
	cmd.AddCommand(newImportReportCommand(configPath))
	return cmd
}

func newImportStatementCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "statement <file>...",
		Short: "Import OFX bank statement files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, store, _, err := openSession(*configPath)
			if err != nil {
				return err
			}
			defer store.Close()

			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("reading %s: %w", path, err)
				}
				name := filepath.Base(path)
				records := ofx.Parse(string(data), name)
				added, err := session.AddStatementRecords(name, records)
				if err != nil {
					return fmt.Errorf("importing %s: %w", name, err)
				}
				cmd.Printf("%s: %d transactions parsed, %d added\n", name, len(records), added)
			}

			return saveSession(session, store)
		},
	}
}

func newImportReportCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "report <file>...",
		Short: "Import positional HTML system reports",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, store, cfg, err := openSession(*configPath)
			if err != nil {
				return err
			}
			defer store.Close()

			extractor := matricial.NewExtractor(cfg.Report.Columns)
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("reading %s: %w", path, err)
				}
				name := filepath.Base(path)
				records, err := extractor.Parse(string(data), name)
				if err != nil {
					return fmt.Errorf("extracting %s: %w", name, err)
				}
				added, err := session.AddReportRecords(name, records)
				if err != nil {
					return fmt.Errorf("importing %s: %w", name, err)
				}
				cmd.Printf("%s: %d entries extracted, %d added\n", name, len(records), added)
			}

			return saveSession(session, store)
		},
	}
}
