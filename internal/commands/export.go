package commands

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ledgermatch/ledgermatch/internal/domain/ledger"
	"github.com/ledgermatch/ledgermatch/internal/export"
)

func newExportCommand(configPath *string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the bank transactions to a semicolon-delimited CSV file",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, store, _, err := openSession(*configPath)
			if err != nil {
				return err
			}
			defer store.Close()

			txns := session.BankTransactions(ledger.Filter{})

			if output == "-" {
				return export.WriteCSV(cmd.OutOrStdout(), txns)
			}

			path := output
			if path == "" {
				path = export.FileName(time.Now())
			}
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			defer f.Close()

			if err := export.WriteCSV(f, txns); err != nil {
				return err
			}
			cmd.Printf("%s: %d transactions exported\n", path, len(txns))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default conciliado_<date>.csv, \"-\" for stdout)")
	return cmd
}
