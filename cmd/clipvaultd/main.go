package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"clipvault/internal/catalog"
	"clipvault/internal/config"
	"clipvault/internal/daemon"
	"clipvault/internal/logging"
	"clipvault/internal/rowstore"
	"clipvault/internal/server"
	"clipvault/internal/storage"
	"clipvault/internal/uploads"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("prepare directories: %v", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	store, err := rowstore.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("open row store: %v", err)
	}

	objects, err := storage.NewS3(cfg, logger)
	if err != nil {
		log.Fatalf("init object storage: %v", err)
	}

	cat := catalog.NewService(store, cfg, logger)
	up := uploads.NewService(cat, objects, cfg, logger)
	srv := server.New(cfg, cat, up, logger)

	d, err := daemon.New(cfg, store, srv, logger)
	if err != nil {
		log.Fatalf("create daemon: %v", err)
	}
	defer d.Close()

	if err := d.Start(ctx); err != nil {
		log.Fatalf("start daemon: %v", err)
	}

	<-ctx.Done()
	logger.Info("clipvaultd shutting down")
}
