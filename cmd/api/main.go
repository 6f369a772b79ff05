package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kargofit/crm/internal/config"
	"github.com/kargofit/crm/internal/handler"
	"github.com/kargofit/crm/internal/infra/catalog"
	"github.com/kargofit/crm/internal/infra/db"
	infraRepo "github.com/kargofit/crm/internal/infra/repository"
	"github.com/kargofit/crm/internal/infra/storage"
	"github.com/kargofit/crm/internal/infra/tabular"
	"github.com/kargofit/crm/internal/logger"
	"github.com/kargofit/crm/internal/metrics"
	"github.com/kargofit/crm/internal/server"
	"github.com/kargofit/crm/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.IsDevelopment(), cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	// database
	gormDB, err := db.Connect(cfg, log)
	if err != nil {
		return err
	}
	if err := db.Migrate(gormDB, cfg); err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	staging, err := storage.NewLocalStaging(cfg.UploadDir)
	if err != nil {
		return err
	}

	// repositories
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	customerRepo := infraRepo.NewCustomerGormRepository(gormDB)
	bikeRepo := infraRepo.NewBikeGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	// usecases
	productUC := usecase.NewProductUsecase(productRepo, txm, log)
	customerUC := usecase.NewCustomerUsecase(customerRepo, log)
	orderUC := usecase.NewOrderUsecase(txm, orderRepo, usecase.SystemClock{}, log)
	bikeUC := usecase.NewBikeUsecase(bikeRepo, txm, log)
	importUC := usecase.NewImportUsecase(staging, tabular.Codec{}, txm, m, log)
	exportUC := usecase.NewExportUsecase(productRepo, customerRepo, tabular.Codec{}, log)
	catalogUC := usecase.NewCatalogUsecase(catalog.NewFileOptions(cfg.CatalogDir), log)

	e := server.New(server.Options{
		Log:       log,
		Metrics:   m,
		Gatherer:  reg,
		BodyLimit: cfg.UploadBodyLimit,
	}, server.Handlers{
		Products:  handler.NewProductHandler(productUC),
		Customers: handler.NewCustomerHandler(customerUC),
		Orders:    handler.NewOrderHandler(orderUC),
		Bikes:     handler.NewBikeHandler(bikeUC),
		Imports:   handler.NewImportHandler(importUC),
		Exports:   handler.NewExportHandler(exportUC),
		Catalog:   handler.NewCatalogHandler(catalogUC),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx, e, cfg.Addr(), log); err != nil {
		log.Error("server stopped", zap.Error(err))
		return err
	}
	return nil
}
