// Command setupdb creates the option_chain schema, per-underlying tables and
// indexes, then lists what exists. Safe to run repeatedly.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/quantgrid/nse-chain-data/internal/config"
	"github.com/quantgrid/nse-chain-data/internal/database"
)

func main() {
	configPath := flag.String("config", "configs/collector.local.yaml", "path to config file")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create schema: %v\n", err)
		os.Exit(1)
	}

	tables, err := database.ListTables(ctx, pool)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to list tables: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("option_chain schema ready; tables:")
	for _, t := range tables {
		fmt.Printf("  %s\n", t)
	}
}
