// Command storagecheck verifies the configured object store: it ensures the
// bill container exists, lists its blobs and writes a probe blob.
//
// Usage:
//
//	STORAGE_CONNECTION_STRING='DefaultEndpointsProtocol=https;AccountName=...' storagecheck
package main

import (
	"context"
	"errors"
	"os"

	"github.com/deliverybills/uploader/internal/config"
	"github.com/deliverybills/uploader/internal/logging"
	"github.com/deliverybills/uploader/internal/storage"
)

func main() {
	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.LogLevel, false)
	ctx, cancel := context.WithTimeout(context.Background(), 3*cfg.StorageTimeout)
	defer cancel()

	store, err := storage.Open(ctx, cfg.StorageConnectionString, config.Container, cfg.StorageTimeout)
	if errors.Is(err, storage.ErrNotConfigured) {
		log.Error(ctx, "STORAGE_CONNECTION_STRING environment variable not set",
			"example", "export STORAGE_CONNECTION_STRING='DefaultEndpointsProtocol=https;AccountName=...;AccountKey=...'")
		os.Exit(1)
	}
	if err != nil {
		log.Error(ctx, "open storage", "error", err)
		os.Exit(1)
	}

	log.Info(ctx, "testing storage connection", "container", store.Container())
	if err := storage.Check(ctx, store, log); err != nil {
		log.Error(ctx, "connection test failed", "error", err, "category", storage.Classify(err).String())
		os.Exit(1)
	}
	log.Info(ctx, "connection test completed successfully")
}
