package bill

import (
	"context"
	"io"
	"sync"

	"github.com/deliverybills/uploader/internal/storage"
)

// recordingStore counts calls and can be told to fail a phase.
type recordingStore struct {
	*storage.MemoryStorage

	mu        sync.Mutex
	ensures   int
	uploads   int
	ensureErr error
	uploadErr error
	deadline  bool
}

func newRecordingStore() *recordingStore {
	return &recordingStore{MemoryStorage: storage.NewMemoryStorage("uploaded-bills")}
}

func (s *recordingStore) EnsureContainer(ctx context.Context) error {
	s.mu.Lock()
	s.ensures++
	_, s.deadline = ctx.Deadline()
	err := s.ensureErr
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.MemoryStorage.EnsureContainer(ctx)
}

func (s *recordingStore) Upload(ctx context.Context, key string, r io.Reader, size int64, ct string) error {
	s.mu.Lock()
	s.uploads++
	err := s.uploadErr
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.MemoryStorage.Upload(ctx, key, r, size, ct)
}

func (s *recordingStore) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensures + s.uploads
}
