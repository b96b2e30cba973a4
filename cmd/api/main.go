//	@title			Bill Upload API
//	@version		1.0
//	@description	Accepts delivery bill images and stores them in object storage.
//
//	@host		localhost:8080
//	@BasePath	/api/v1

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deliverybills/uploader/internal/bill"
	"github.com/deliverybills/uploader/internal/config"
	"github.com/deliverybills/uploader/internal/logging"
	"github.com/deliverybills/uploader/internal/server"
	"github.com/deliverybills/uploader/internal/storage"
)

func main() {
	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.LogLevel, cfg.IsProduction())
	ctx := context.Background()

	store, err := storage.Open(ctx, cfg.StorageConnectionString, config.Container, cfg.StorageTimeout)
	switch {
	case errors.Is(err, storage.ErrNotConfigured):
		// Keep serving; every upload answers 500 until the variable is set.
		log.Error(ctx, "STORAGE_CONNECTION_STRING environment variable not set")
	case err != nil:
		log.Error(ctx, "object storage init failed", "error", err)
		os.Exit(1)
	default:
		ensureCtx, cancel := context.WithTimeout(ctx, cfg.StorageTimeout)
		if err := store.EnsureContainer(ensureCtx); err != nil {
			log.Warn(ctx, "container not ready at startup", "container", store.Container(), "error", err)
		}
		cancel()
	}

	// Wire dependencies: store → service → handler
	var opts []bill.Option
	if cfg.KeyUniqueSuffix {
		opts = append(opts, bill.WithUniqueSuffix())
	}
	billSvc := bill.NewService(store, cfg.StorageTimeout, log, opts...)
	billHandler := bill.NewHandler(billSvc, cfg.MaxUploadBytes, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      server.NewRouter(billHandler, log),
		ReadTimeout:  cfg.StorageTimeout + 15*time.Second,
		WriteTimeout: 2*cfg.StorageTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info(ctx, "server listening", "port", cfg.Port, "env", cfg.AppEnv, "container", config.Container)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "server error", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	log.Info(ctx, "shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "forced shutdown", "error", err)
		os.Exit(1)
	}

	log.Info(ctx, "server stopped")
}
