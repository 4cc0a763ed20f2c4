package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/meetsync/internal/client/api"
	"github.com/iudanet/meetsync/internal/client/auth"
	"github.com/iudanet/meetsync/internal/client/cli"
	"github.com/iudanet/meetsync/internal/client/iocli"
	"github.com/iudanet/meetsync/internal/client/journal"
	"github.com/iudanet/meetsync/internal/client/netstatus"
	"github.com/iudanet/meetsync/internal/client/storage/boltdb"
	"github.com/iudanet/meetsync/internal/client/sync"
	"github.com/iudanet/meetsync/internal/config"
	"github.com/iudanet/meetsync/internal/logging"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	root := cli.NewRoot(build, fmt.Sprintf("%s (built %s, commit %s)", Version, BuildDate, GitCommit))
	err := root.Execute(ctx, os.Args[1:])

	if cerr := root.Close(); cerr != nil {
		slog.Error("failed to close database", "error", cerr)
	}
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// build собирает зависимости клиента по конфигурации и флагам
func build(ctx context.Context, opts *cli.RootOptions) (*cli.Cli, func() error, error) {
	cfg, err := config.LoadClient(opts.ConfigPath)
	if err != nil {
		return nil, nil, err
	}
	if opts.ServerURL != "" {
		cfg.ServerURL = opts.ServerURL
	}
	if opts.DBPath != "" {
		cfg.DBPath = opts.DBPath
	}
	if opts.Verbose {
		cfg.LogLevel = "DEBUG"
	}

	logger := logging.New(cfg.LogLevel, "text", os.Stderr)
	slog.SetDefault(logger)

	// Открываем BoltDB storage
	store, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	changes, err := journal.New(ctx, store, nil, logger)
	if err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to open journal: %w", err)
	}

	apiClient := api.NewClientWithTimeout(cfg.ServerURL, cfg.HTTPTimeout)
	session := auth.NewStore(store, logger)
	probe := netstatus.NewHealthProbe(apiClient, cfg.ProbeTimeout, logger)

	orchestrator := sync.NewOrchestrator(changes, apiClient, probe, session, sync.Config{
		BaseDelay:  cfg.RetryBase,
		MaxRetries: cfg.MaxRetries,
	}, logger)

	app := cli.New(iocli.NewStdio(), session, orchestrator, changes, probe)

	closeFn := func() error {
		orchestrator.Close()
		return store.Close()
	}
	return app, closeFn, nil
}
