package commands

import (
	"github.com/spf13/cobra"

	"github.com/ledgermatch/ledgermatch/internal/domain/ledger"
)

func newSuggestCommand(configPath *string) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "suggest [transaction-id]",
		Short: "Show pairing suggestions for bank transactions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, store, _, err := openSession(*configPath)
			if err != nil {
				return err
			}
			defer store.Close()

			var ids []string
			if len(args) == 1 {
				ids = []string{args[0]}
			} else {
				for _, t := range session.BankTransactions(ledger.Filter{}) {
					if t.Reconciled || t.Disabled {
						continue
					}
					ids = append(ids, t.ID)
					if !all && len(ids) >= 20 {
						break
					}
				}
			}

			for _, id := range ids {
				set, err := session.Suggest(id)
				if err != nil {
					return err
				}
				txn := session.FindBank(id)
				cmd.Printf("%s  %s  %s  %s\n", txn.ID, ledger.ISODate(txn.Date), txn.Amount.StringFixed(2), txn.Description)
				if set.Empty() {
					cmd.Println("  no suggestions")
					continue
				}
				for _, e := range set.SameValueSameDate {
					cmd.Printf("  same value, same date:  %s  %s  %s\n", e.ID, e.Client, e.Amount.StringFixed(2))
				}
				for _, e := range set.SameValueOtherDate {
					cmd.Printf("  same value, other date: %s  %s  %s\n", e.ID, e.Client, e.Amount.StringFixed(2))
				}
				for _, e := range set.SameName {
					cmd.Printf("  similar name:           %s  %s  %s\n", e.ID, e.Client, e.Amount.StringFixed(2))
				}
				for _, e := range set.Combination {
					cmd.Printf("  combination member:     %s  %s  %s\n", e.ID, e.Client, e.Amount.StringFixed(2))
				}
				for _, b := range set.SameSender {
					if b.ID == id {
						continue
					}
					cmd.Printf("  same sender (bank):     %s  %s  %s\n", b.ID, ledger.ISODate(b.Date), b.Amount.StringFixed(2))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "suggest for every unreconciled transaction, not just the first 20")
	return cmd
}
