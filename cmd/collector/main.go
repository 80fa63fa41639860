package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/quantgrid/nse-chain-data/internal/config"
	"github.com/quantgrid/nse-chain-data/internal/database"
	"github.com/quantgrid/nse-chain-data/internal/dhan"
	"github.com/quantgrid/nse-chain-data/internal/driver"
	"github.com/quantgrid/nse-chain-data/internal/fetcher"
	"github.com/quantgrid/nse-chain-data/internal/logging"
	"github.com/quantgrid/nse-chain-data/internal/version"
	"github.com/quantgrid/nse-chain-data/internal/writer"
)

func main() {
	configPath := flag.String("config", "configs/collector.local.yaml", "path to config file")
	flag.Parse()

	// Credentials usually live in a .env next to the binary; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		// No config means no log file yet, so plain stderr.
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := logging.New(cfg.Log)

	logger.Info("starting collector",
		"version", version.Version,
		"commit", version.Commit,
		"instance_id", cfg.Instance.ID,
		"config", *configPath,
	)

	loc, err := cfg.Collector.Location()
	if err != nil {
		logger.Error("failed to resolve timezone", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	logger.Info("connecting to database",
		"host", cfg.Database.Host,
		"port", cfg.Database.Port,
		"database", cfg.Database.Name,
	)
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("database connected")

	client := dhan.NewClient(
		cfg.API.BaseURL,
		cfg.API.AccessToken,
		cfg.API.ClientID,
		dhan.WithTimeout(cfg.API.Timeout),
		dhan.WithLogger(logger),
	)

	f := fetcher.New(fetcher.Config{
		StrikeWindow: cfg.Collector.StrikeWindow,
		PacingDelay:  cfg.Collector.PacingDelay,
	}, client, logger)

	w := writer.New(pool, logger)

	d := driver.New(driver.Config{
		ErrorBackoff: cfg.Collector.ErrorBackoff,
		TickOffset:   cfg.Collector.TickOffset,
		Location:     loc,
	}, f, w, logger)

	if err := d.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("collector stopped", "error", err)
		os.Exit(1)
	}

	logger.Info("collector stopped")
}
