package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/kargofit/crm/internal/config"
	"github.com/kargofit/crm/internal/infra/db"
	infraRepo "github.com/kargofit/crm/internal/infra/repository"
	"github.com/kargofit/crm/internal/logger"
	"github.com/kargofit/crm/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type options struct {
	file string
	key  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:   "importbikes",
		Short: "Seed the bike catalog from a market JSON file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.file, "file", "config/bikes.json", "path to the bike market JSON file")
	cmd.Flags().StringVar(&opts.key, "key", "bike_market_2026", "top-level key holding the brand map")
	return cmd
}

// loadCatalog reads {"<key>": {"<brand>": [{model, variants}]}}.
func loadCatalog(path, key string) (usecase.MarketCatalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var doc map[string]usecase.MarketCatalog
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc[key], nil
}

func run(cmd *cobra.Command, opts options) error {
	out := cmd.OutOrStdout()

	catalog, err := loadCatalog(opts.file, opts.key)
	if err != nil {
		return err
	}
	if len(catalog) == 0 {
		fmt.Fprintf(out, "No bike data found in %q key.\n", opts.key)
		return nil
	}
	fmt.Fprintf(out, "Found %d brands. Starting import...\n", len(catalog))

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.IsDevelopment(), cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	gormDB, err := db.Connect(cfg, log)
	if err != nil {
		return err
	}
	if err := db.Migrate(gormDB, cfg); err != nil {
		return err
	}

	uc := usecase.NewBikeUsecase(infraRepo.NewBikeGormRepository(gormDB), infraRepo.NewTxManagerGorm(gormDB), log)
	res, err := uc.ImportMarketCatalog(context.Background(), catalog)
	if err != nil {
		return fmt.Errorf("import bikes: %w", err)
	}

	fmt.Fprintln(out, "Successfully imported bikes.")
	fmt.Fprintf(out, "Added new entries: %d\n", res.Added)
	fmt.Fprintf(out, "Skipped existing: %d\n", res.Skipped)
	return nil
}
