package storage

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
)

// MemoryStorage keeps objects in process memory. Like the real backends it
// refuses uploads until the container exists, and a second write to the same
// key replaces the first.
type MemoryStorage struct {
	container string

	mu      sync.RWMutex
	created bool
	objects map[string]memObject
}

type memObject struct {
	data        []byte
	contentType string
}

func NewMemoryStorage(container string) *MemoryStorage {
	return &MemoryStorage{container: container, objects: make(map[string]memObject)}
}

func (m *MemoryStorage) Container() string { return m.container }

func (m *MemoryStorage) EnsureContainer(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.created = true
	m.mu.Unlock()
	return nil
}

func (m *MemoryStorage) Upload(ctx context.Context, key string, reader io.Reader, _ int64, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("read upload %q: %w", key, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.created {
		return fmt.Errorf("upload %q into %q: %w", key, m.container, ErrContainerNotFound)
	}
	m.objects[key] = memObject{data: data, contentType: contentType}
	return nil
}

func (m *MemoryStorage) List(ctx context.Context) ([]Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.created {
		return nil, fmt.Errorf("list %q: %w", m.container, ErrContainerNotFound)
	}
	out := make([]Object, 0, len(m.objects))
	for k, o := range m.objects {
		out = append(out, Object{Key: k, Size: int64(len(o.data))})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// Get returns a copy of the stored bytes and content type for key.
func (m *MemoryStorage) Get(key string) ([]byte, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.objects[key]
	if !ok {
		return nil, "", false
	}
	return append([]byte(nil), o.data...), o.contentType, true
}
