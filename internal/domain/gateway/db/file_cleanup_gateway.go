package db

import (
	"context"

	"todo-api/internal/domain/entity"
)

// FileCleanupGateway is the operation log of attachment files pending removal.
type FileCleanupGateway interface {
	Create(ctx context.Context, cleanup *entity.FileCleanup) error
	FindPending(ctx context.Context, maxAttempts int, limit int) ([]entity.FileCleanup, error)
	MarkFailed(ctx context.Context, id string, reason string) error
	Delete(ctx context.Context, id string) error
	DeleteExhausted(ctx context.Context, maxAttempts int) ([]entity.FileCleanup, error)
}
