// Package storage defines the object store used for bill images and its
// backends. Azure Blob is the default; MinIO, AWS S3 and an in-memory store
// are selected through the connection string's Provider key.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrNotConfigured is returned when no connection string was supplied.
	ErrNotConfigured = errors.New("storage connection string is not set")
	// ErrContainerNotFound is returned by stores that refuse writes into a missing container.
	ErrContainerNotFound = errors.New("container not found")
)

// Object describes one stored blob.
type Object struct {
	Key  string
	Size int64
}

// Storage is the interface for writing bill images into a single container.
type Storage interface {
	// EnsureContainer creates the container if it does not exist yet.
	// An "already exists" answer from the backend is success.
	EnsureContainer(ctx context.Context) error
	// Upload streams data to the store under key, replacing any existing object.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	// List returns every object in the container.
	List(ctx context.Context) ([]Object, error)
	// Container returns the container (bucket) name.
	Container() string
}

// Open picks a backend from the connection string. An empty string yields an
// Unconfigured store together with ErrNotConfigured so callers can keep
// serving and report the problem per request.
func Open(ctx context.Context, connString, container string, timeout time.Duration) (Storage, error) {
	if strings.TrimSpace(connString) == "" {
		return Unconfigured{container: container}, ErrNotConfigured
	}

	cs, err := ParseConnectionString(connString)
	if err != nil {
		return nil, err
	}

	var store Storage
	switch provider := strings.ToLower(cs.Get("Provider")); provider {
	case "", "azure":
		store, err = NewAzureStorage(cs.Without("Provider").String(), container, timeout)
	case "minio":
		useSSL, _ := strconv.ParseBool(cs.Get("UseSSL"))
		store, err = NewMinioStorage(cs.Get("Endpoint"), cs.Get("AccessKey"), cs.Get("SecretKey"),
			cs.Get("Region"), container, useSSL, timeout)
	case "s3":
		store, err = NewS3Storage(ctx, cs.Get("Region"), cs.Get("Endpoint"), cs.Get("AccessKey"),
			cs.Get("SecretKey"), container, timeout)
	case "memory":
		store = NewMemoryStorage(container)
	default:
		err = fmt.Errorf("unknown storage provider %q", provider)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Unconfigured is the placeholder store used when no connection string is
// set. Every operation fails with ErrNotConfigured.
type Unconfigured struct {
	container string
}

func (u Unconfigured) EnsureContainer(context.Context) error { return ErrNotConfigured }

func (u Unconfigured) Upload(context.Context, string, io.Reader, int64, string) error {
	return ErrNotConfigured
}

func (u Unconfigured) List(context.Context) ([]Object, error) { return nil, ErrNotConfigured }

func (u Unconfigured) Container() string { return u.container }
