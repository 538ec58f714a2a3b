package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"modguard/internal/auditlog"
	"modguard/internal/config"
	"modguard/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the moderation HTTP service",
	Long: `Starts the HTTP service exposing the moderation analysis core:

  GET  /health
  POST /analyze          {"text": "..."}
  POST /batch-analyze    {"texts": ["...", ...]}
  POST /moderate         {"text": "...", "include_sentiment": true}
  POST /batch-moderate   {"texts": [...], "include_sentiment": true}

The taxonomy and term lists are loaded once at startup; a malformed rule
aborts before any request is served.`,
	RunE: serveCommand,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default: MODGUARD_PORT or 8000)")
	rootCmd.AddCommand(serveCmd)
}

func serveCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(packsDir, auditPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	log, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	svc, packs, err := buildService(cfg, log)
	if err != nil {
		return err
	}

	audit, err := auditlog.New(cfg.AuditLogPath)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer func() { _ = audit.Close() }()

	log.Info("modguard starting",
		zap.Int("port", cfg.Port),
		zap.String("sentiment", svc.SentimentSource()),
		zap.Bool("intent", svc.IntentAvailable()),
		zap.Int("taxonomy_packs", len(packs)))

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      server.New(svc, audit, log).Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("modguard shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
