package attachment

import (
	"context"
	"errors"
	"sync"

	"todo-api/internal/domain/gateway/storage"
)

// flakyStorage wraps a FileStorage and fails Remove for the configured paths.
type flakyStorage struct {
	storage.FileStorage
	mu       sync.Mutex
	failures map[string]error
	removed  []string
}

func newFlakyStorage(inner storage.FileStorage) *flakyStorage {
	return &flakyStorage{FileStorage: inner, failures: make(map[string]error)}
}

func (s *flakyStorage) failRemove(path string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = err
}

func (s *flakyStorage) heal(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, path)
}

func (s *flakyStorage) Remove(ctx context.Context, path string) error {
	s.mu.Lock()
	err, failing := s.failures[path]
	s.mu.Unlock()
	if failing {
		return err
	}

	if err := s.FileStorage.Remove(ctx, path); err != nil {
		return err
	}
	s.mu.Lock()
	s.removed = append(s.removed, path)
	s.mu.Unlock()
	return nil
}

var errPermission = errors.New("permission denied")
