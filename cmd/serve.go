package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/timvw/pitch-check/internal/server"
	"go.uber.org/zap"
)

var flagListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the evaluation API over HTTP",
	Long: `Serve a JSON API for browser front ends:

  POST /api/evaluate   {"proposal": "..."} -> evaluation
  GET  /api/examples   built-in example proposals
  GET  /healthz        liveness and whether an API key is configured
  GET  /metrics        Prometheus metrics

The server stops gracefully on SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx, cmd, appOptions{prometheus: true})
		if err != nil {
			return err
		}
		defer a.Close(context.Background())

		addr := a.cfg.ListenAddr
		if cmd.Flags().Changed("listen") {
			addr = flagListen
		}

		a.logger.Info("starting server",
			zap.String("provider", a.cfg.Provider),
			zap.String("model", a.cfg.Model),
			zap.Bool("configured", a.client.Configured()))

		srv := server.New(a.client, server.Config{
			Addr:           addr,
			AllowedOrigins: a.cfg.AllowedOrigins,
			Timeout:        a.cfg.TimeoutDuration,
		}, server.WithLogger(a.logger))
		return srv.ListenAndServe(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagListen, "listen", "", "listen address (default: :8080 or listen_addr from config)")
	rootCmd.AddCommand(serveCmd)
}
