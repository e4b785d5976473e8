package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/structura/structura/internal/api"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis engine over HTTP",
	Long: `Start the HTTP API.

Routes:
  GET  /healthz
  GET  /api/v1/catalog
  POST /api/v1/analysis
  POST /api/v1/analysis/batch
  POST /api/v1/reports?format=txt|pdf
  GET  /api/v1/dossiers
  GET  /api/v1/dossiers/{id}

Requests under /api/v1 are rate limited per client and, when
server.api_token is set, require "Authorization: Bearer <token>".

Examples:
  # Listen on the configured address (default :8080)
  structura serve

  # Listen on another port with debug logging
  structura serve --addr :9090 -v`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openArchive()
	if err != nil {
		return err
	}

	var archive api.Archive
	if store != nil {
		defer store.Close()
		archive = store
	} else {
		logger.Warn("archive disabled, dossier routes will answer 503")
	}

	logger.Info("starting structura",
		zap.String("addr", cfg.Server.Addr),
		zap.Bool("auth", cfg.Server.APIToken != ""),
		zap.Bool("archive", store != nil),
	)
	return api.New(cfg, archive, logger).Run(ctx)
}
