package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ledgermatch/ledgermatch/internal/api"
	"github.com/ledgermatch/ledgermatch/internal/infrastructure/logging"
)

func newServeCommand(configPath *string) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the reconciliation HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, store, cfg, err := openSession(*configPath)
			if err != nil {
				return err
			}
			defer store.Close()

			if port != 0 {
				cfg.Server.Port = port
			}

			logger := logging.NewLoggerWithSystem(cfg.Observability.Logging, "api")
			server := api.NewServer(session, store, cfg, logger)
			router := server.Router(cfg.Server.AllowedOrigins)

			addr := fmt.Sprintf(":%d", cfg.Server.Port)
			logger.Info("server listening", slog.String("addr", addr))
			return router.Run(addr)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides configuration)")
	return cmd
}
