package storage

import (
	"context"
	"errors"
	"io"

	"todo-api/internal/domain/model"
)

var (
	// ErrNotExist is returned when the requested path is absent.
	ErrNotExist = errors.New("file does not exist")
	// ErrExist is returned by Create when the path is already taken.
	ErrExist = errors.New("file already exists")
)

// FileStorage keeps attachment bytes under paths relative to the upload root.
type FileStorage interface {
	// Create writes a new file and never overwrites an existing one.
	Create(ctx context.Context, path string, content io.Reader) (int64, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Remove(ctx context.Context, path string) error
	Health(ctx context.Context) model.ComponentHealthStatus
}
