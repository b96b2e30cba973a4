package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/deliverybills/uploader/internal/logging"
)

const (
	// ProbeKey is the blob written by Check to prove write access.
	ProbeKey     = "connection_test.txt"
	probeContent = "This is a connection test file."
)

// Check verifies that store is reachable and writable: it ensures the
// container, lists what is already there and overwrites the probe blob.
func Check(ctx context.Context, store Storage, log logging.Logger) error {
	log = log.With("container", store.Container())

	if err := store.EnsureContainer(ctx); err != nil {
		return fmt.Errorf("ensure container: %w", err)
	}
	log.Info(ctx, "container ready")

	objects, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("list container: %w", err)
	}
	if len(objects) == 0 {
		log.Info(ctx, "no blobs found in container")
	}
	for _, o := range objects {
		log.Info(ctx, "blob", "name", o.Key, "size", o.Size)
	}

	if err := store.Upload(ctx, ProbeKey, strings.NewReader(probeContent),
		int64(len(probeContent)), "text/plain"); err != nil {
		return fmt.Errorf("write probe blob: %w", err)
	}
	log.Info(ctx, "probe blob written", "name", ProbeKey)
	return nil
}
