package root

import (
	"context"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"levelup/internal/api"
	"levelup/internal/clock"
	"levelup/internal/config"
	"levelup/internal/logging"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the read-only HTTP API (leaderboard, stats, metrics)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg, err := config.Load("")
			if err != nil {
				return err
			}
			log, err := logging.New(cfg.Log)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			clk, err := clock.New(cfg.Timezone)
			if err != nil {
				return err
			}
			db, cleanup, err := openDB(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			if addr == "" {
				addr = cfg.Addr()
			}
			srv := &http.Server{
				Addr:              addr,
				Handler:           api.NewServer(db, clk, log).Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			}
			log.Info("api listening", zap.String("addr", addr))
			return srv.ListenAndServe()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")

	return cmd
}
