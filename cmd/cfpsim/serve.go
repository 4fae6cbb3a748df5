package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"cfpsim/internal/adapters/http/api"
	"cfpsim/internal/adapters/seasondata"
	service "cfpsim/internal/app"
	"cfpsim/internal/config"
	"cfpsim/internal/domain/scoring"
	"cfpsim/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the scenario engine as an HTTP service",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := logger.Init(); err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := newService(cfg, log)

	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
		return err
	}

	log.Info(ctx, "server stopped")
	return nil
}

// newService assembles the orchestrator from configuration. Season files
// are cached so repeat scenario runs skip the disk read.
func newService(cfg *config.Config, log logger.Logger) *service.Service {
	opts := []service.Option{
		service.WithLogger(log),
		service.WithSource(seasondata.NewCachedSource(seasondata.NewFileSource(cfg.DataDir))),
		service.WithWorkerCount(cfg.WorkerCount),
		service.WithFinalWeek(cfg.FinalWeek),
		service.WithComparableDelta(cfg.ComparableDelta),
	}
	if len(cfg.ScorerWeights) > 0 {
		opts = append(opts, service.WithScorer(scoring.NewLinearModel(
			scoring.WithWeights(cfg.ScorerWeights),
			scoring.WithBias(cfg.ScorerBias),
		)))
	}
	return service.New(opts...)
}
