package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/iudanet/meetsync/internal/config"
	"github.com/iudanet/meetsync/internal/logging"
	"github.com/iudanet/meetsync/internal/server"
	"github.com/iudanet/meetsync/internal/server/handlers"
	"github.com/iudanet/meetsync/internal/server/metrics"
	"github.com/iudanet/meetsync/internal/server/middleware"
	"github.com/iudanet/meetsync/internal/server/notify"
	"github.com/iudanet/meetsync/internal/server/storage"
	"github.com/iudanet/meetsync/internal/server/storage/postgres"
	"github.com/iudanet/meetsync/internal/server/storage/sqlite"
	serversync "github.com/iudanet/meetsync/internal/server/sync"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

const shutdownTimeout = 10 * time.Second

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	issueToken := flag.String("issue-token", "", "Print a signed access token for the given user id and exit")
	flag.Parse()

	if *showVersion {
		printVersion()
		return
	}

	cfg, err := config.LoadServer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	jwtCfg := handlers.JWTConfig{
		Secret:         []byte(cfg.JWTSecret),
		AccessTokenTTL: cfg.AccessTTL,
	}

	if *issueToken != "" {
		token, expiresAt, err := handlers.GenerateAccessToken(jwtCfg, *issueToken)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(token)
		fmt.Fprintf(os.Stderr, "expires at %s\n", expiresAt.Format(time.RFC3339))
		return
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, jwtCfg, logger)
	stop()
	if err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Server, jwtCfg handlers.JWTConfig, logger *slog.Logger) error {
	store, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close storage", "error", err)
		}
	}()
	logger.Info("Storage ready", "driver", cfg.DBDriver)

	var notifier notify.Notifier = notify.Nop{}
	if cfg.AMQPURL != "" {
		rabbit, err := notify.NewRabbitMQ(cfg.AMQPURL, "", logger)
		if err != nil {
			return fmt.Errorf("failed to connect to message broker: %w", err)
		}
		notifier = rabbit
		logger.Info("Change notifications enabled")
	}
	defer func() {
		if err := notifier.Close(); err != nil {
			logger.Error("Failed to close notifier", "error", err)
		}
	}()

	var limiter middleware.Limiter
	if cfg.RedisURL != "" {
		redisLimiter, err := middleware.NewRedisLimiter(ctx, cfg.RedisURL, cfg.RateLimit, cfg.RateWindow)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer func() { _ = redisLimiter.Close() }()
		limiter = redisLimiter
		logger.Info("Using Redis rate limiter")
	} else {
		memLimiter := middleware.NewMemoryLimiter(cfg.RateLimit, cfg.RateWindow)
		defer memLimiter.Stop()
		limiter = memLimiter
	}

	m := metrics.NewSync(prometheus.DefaultRegisterer)

	router := server.NewRouter(server.Options{
		Logger:   logger,
		Sync:     serversync.NewService(store, notifier, m, logger),
		Storage:  store,
		Limiter:  limiter,
		Metrics:  m,
		JWT:      jwtCfg,
		Version:  Version,
		MaxBatch: cfg.MaxBatch,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("MeetSync server listening", "addr", cfg.Addr, "version", Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func openStorage(ctx context.Context, cfg *config.Server) (storage.Storage, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return postgres.New(ctx, cfg.DatabaseURL)
	default:
		return sqlite.New(ctx, cfg.DBPath)
	}
}

func printVersion() {
	fmt.Printf("MeetSync Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
