package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ledgermatch/ledgermatch/internal/adapters/pixcode"
	"github.com/ledgermatch/ledgermatch/internal/infrastructure/config"
)

func newPixCommand(configPath *string) *cobra.Command {
	var (
		key   string
		label string
		txid  string
	)

	cmd := &cobra.Command{
		Use:   "pix <amount>",
		Short: "Generate a copy-and-paste Pix payment code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadOrEnvWithPath(*configPath)

			amount, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[0], err)
			}

			if key == "" && label != "" {
				key = cfg.Pix.Keys[label]
				if key == "" {
					return fmt.Errorf("no pix key configured under label %q", label)
				}
			}
			if txid == "" {
				txid = pixcode.RandomTxID()
			}

			builder := pixcode.Builder{
				ReceiverName: cfg.Pix.ReceiverName,
				ReceiverCity: cfg.Pix.ReceiverCity,
			}
			payload, err := builder.Build(key, amount, txid)
			if err != nil {
				return err
			}

			cmd.Println(payload)
			return nil
		},
	}

	cmd.Flags().StringVarP(&key, "key", "k", "", "pix key of the receiver")
	cmd.Flags().StringVarP(&label, "label", "l", "", "configured pix key label")
	cmd.Flags().StringVar(&txid, "txid", "", "transaction identifier (random when omitted)")
	return cmd
}
