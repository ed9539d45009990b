package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"todo-api/internal/domain/gateway/storage"
	"todo-api/internal/domain/model"
)

// AferoStorage implements storage.FileStorage on top of an afero filesystem.
type AferoStorage struct {
	fs afero.Fs
}

var _ storage.FileStorage = (*AferoStorage)(nil)

func NewAferoStorage(fs afero.Fs) *AferoStorage {
	return &AferoStorage{fs: fs}
}

// NewLocalStorage roots the storage at dir on the OS filesystem, creating it if needed.
func NewLocalStorage(dir string) (*AferoStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory %s: %w", dir, err)
	}
	return NewAferoStorage(afero.NewBasePathFs(afero.NewOsFs(), dir)), nil
}

func (s *AferoStorage) Create(_ context.Context, path string, content io.Reader) (int64, error) {
	if err := s.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("creating directory for %s: %w", path, err)
	}

	file, err := s.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) || errors.Is(err, afero.ErrFileExists) {
			return 0, storage.ErrExist
		}
		return 0, fmt.Errorf("creating %s: %w", path, err)
	}

	written, copyErr := io.Copy(file, content)
	closeErr := file.Close()
	if copyErr != nil || closeErr != nil {
		_ = s.fs.Remove(path)
		return 0, fmt.Errorf("writing %s: %w", path, errors.Join(copyErr, closeErr))
	}
	return written, nil
}

func (s *AferoStorage) Open(_ context.Context, path string) (io.ReadCloser, error) {
	file, err := s.fs.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, storage.ErrNotExist
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return file, nil
}

func (s *AferoStorage) Remove(_ context.Context, path string) error {
	if err := s.fs.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return storage.ErrNotExist
		}
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}

func (s *AferoStorage) Health(_ context.Context) model.ComponentHealthStatus {
	info, err := s.fs.Stat(string(filepath.Separator))
	if err != nil {
		return model.ComponentHealthStatus{
			Status:  model.StatusDown,
			Details: map[string]string{"message": err.Error()},
		}
	}
	if !info.IsDir() {
		return model.ComponentHealthStatus{
			Status:  model.StatusDown,
			Details: map[string]string{"message": "upload root is not a directory"},
		}
	}
	return model.ComponentHealthStatus{
		Status:  model.StatusUp,
		Details: map[string]string{"message": string(model.StatusUp)},
	}
}
