// Package bill accepts delivery bill images and stores them under a name
// derived from the location, truck and bill ids.
package bill

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/deliverybills/uploader/internal/logging"
	"github.com/deliverybills/uploader/internal/storage"
)

// Upload is one validated bill upload.
type Upload struct {
	LocationID  string
	TruckID     string
	BillID      string
	File        io.Reader
	Size        int64
	ContentType string
}

// Service writes bill images to the configured store.
type Service struct {
	store   storage.Storage
	timeout time.Duration
	log     logging.Logger
	now     func() time.Time
	suffix  func() string
}

// Option customises a Service.
type Option func(*Service)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithUniqueSuffix appends a short random id to every key so two uploads for
// the same ids within one second no longer overwrite each other.
func WithUniqueSuffix() Option {
	return func(s *Service) {
		s.suffix = func() string {
			return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
		}
	}
}

// NewService creates a Service. timeout bounds each storage call separately.
func NewService(store storage.Storage, timeout time.Duration, log logging.Logger, opts ...Option) *Service {
	s := &Service{store: store, timeout: timeout, log: log, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Store builds the object key, ensures the container and writes the file,
// replacing any object already stored under that key. It makes one attempt;
// failures come back as *Error.
func (s *Service) Store(ctx context.Context, u Upload) (string, error) {
	key := ObjectKey(u.LocationID, u.TruckID, u.BillID, s.now())
	if s.suffix != nil {
		key = withSuffix(key, s.suffix())
	}
	log := s.log.With("key", key, "container", s.store.Container())

	if err := s.withTimeout(ctx, s.store.EnsureContainer); err != nil {
		e := storageError(phaseEnsure, err)
		log.Error(ctx, "ensure container failed", "kind", e.Kind, "error", err)
		return "", e
	}

	err := s.withTimeout(ctx, func(ctx context.Context) error {
		return s.store.Upload(ctx, key, u.File, u.Size, u.ContentType)
	})
	if err != nil {
		e := storageError(phaseUpload, err)
		log.Error(ctx, "upload failed", "kind", e.Kind, "error", err)
		return "", e
	}

	log.Info(ctx, "uploaded bill", "size", u.Size)
	return key, nil
}

func (s *Service) withTimeout(ctx context.Context, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return fn(ctx)
}
