package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vbonduro/homelist/internal/config"
	"github.com/vbonduro/homelist/internal/db"
	"github.com/vbonduro/homelist/internal/imagestore/local"
	"github.com/vbonduro/homelist/internal/inventory"
	"github.com/vbonduro/homelist/internal/listing"
	"github.com/vbonduro/homelist/internal/logging"
	"github.com/vbonduro/homelist/internal/notify"
	"github.com/vbonduro/homelist/internal/search"
	"github.com/vbonduro/homelist/internal/service"
	"github.com/vbonduro/homelist/internal/store"
	"github.com/vbonduro/homelist/internal/web"
)

func main() {
	cfg := config.Load()

	logger, cleanup, err := logging.New(logging.Options{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		File:       cfg.LogFile,
		FluentHost: cfg.FluentHost,
		FluentPort: cfg.FluentPort,
	})
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server error", "error", err)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	catalog, err := loadCatalog(cfg.CatalogPath, logger)
	if err != nil {
		return err
	}

	opts := []inventory.Option{inventory.WithLogger(logger)}
	if cfg.LegacyRemoveNotify {
		opts = append(opts, inventory.WithLegacyRemoveNotify())
	}
	inv := inventory.New(catalog.All(), opts...)

	if cfg.AMQPURL != "" {
		publisher, err := notify.Dial(cfg.AMQPURL, cfg.AMQPExchange, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := publisher.Close(); err != nil {
				logger.Error("failed to close broker connection", "error", err)
			}
		}()
		if _, err := inv.AddObserver(publisher); err != nil {
			logger.Warn("initial inventory event not published", "error", err)
		}
		logger.Info("publishing inventory events", "exchange", cfg.AMQPExchange)
	}

	images, err := local.New(cfg.ImagePath, logger)
	if err != nil {
		return err
	}

	blobs := store.NewBlobStore(database)
	server, err := web.NewServer(web.Deps{
		Search:      search.NewFacade(search.NewFactory(inv), logger),
		Catalog:     catalog,
		Inventory:   inv,
		Cart:        service.NewCartService(blobs, inv, logger),
		Profiles:    service.NewProfileService(blobs, inv, logger),
		Images:      images,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	return server.ListenAndServe(ctx, cfg.ListenAddr)
}

func loadCatalog(path string, logger *slog.Logger) (*listing.Repository, error) {
	if path == "" {
		logger.Info("using built-in catalog")
		return listing.NewSeedRepository(), nil
	}
	catalog, err := listing.LoadCatalog(path)
	if err != nil {
		return nil, err
	}
	logger.Info("catalog loaded", "path", path, "properties", catalog.Len())
	return catalog, nil
}
