package storage

import (
	"context"
	"errors"
	"strings"
	"sync"

	mediaapp "github.com/jeenmata/impex/internal/application/media"
)

var _ mediaapp.ObjectStorage = (*MemoryObjectStorage)(nil)

// Object is a stored file
type Object struct {
	Data        []byte
	ContentType string
}

// MemoryObjectStorage keeps uploads in process memory and serves them from
// the API's /uploads route. It is used when object storage is not configured.
type MemoryObjectStorage struct {
	mu      sync.RWMutex
	objects map[string]Object
	baseURL string
}

// NewMemoryObjectStorage creates an empty store whose public URLs start
// with baseURL, e.g. "/uploads"
func NewMemoryObjectStorage(baseURL string) *MemoryObjectStorage {
	return &MemoryObjectStorage{
		objects: make(map[string]Object),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Upload stores a copy of data under key
func (s *MemoryObjectStorage) Upload(_ context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = Object{Data: append([]byte(nil), data...), ContentType: contentType}
	return nil
}

// DeleteObject removes an object. Missing keys are ignored.
func (s *MemoryObjectStorage) DeleteObject(_ context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// Get returns the object stored under key
func (s *MemoryObjectStorage) Get(key string) (Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	return obj, ok
}

// PublicURL returns baseURL/key
func (s *MemoryObjectStorage) PublicURL(key string) string {
	return s.baseURL + "/" + key
}
