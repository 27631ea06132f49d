package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/vbonduro/imagestore/internal/config"
	"github.com/vbonduro/imagestore/internal/idgen"
	"github.com/vbonduro/imagestore/internal/logging"
	"github.com/vbonduro/imagestore/internal/service"
	"github.com/vbonduro/imagestore/internal/web"
)

func main() {
	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := newStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize key-value store", "backend", cfg.KVBackend, "error", err)
		return
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close key-value store", "error", err)
		}
	}()

	validator, err := newValidator(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize auth validator", "backend", cfg.AuthBackend, "error", err)
		return
	}

	imageService := service.NewImageService(store, idgen.NewUUIDv1(), logger)
	server := web.NewServer(imageService, validator, cfg.MaxBodyBytes, logger)

	if err := server.ListenAndServe(ctx, cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}
