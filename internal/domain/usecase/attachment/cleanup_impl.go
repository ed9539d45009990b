package attachment

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"todo-api/internal/domain/gateway/db"
	"todo-api/internal/domain/gateway/storage"
	"todo-api/pkg/log"
	"todo-api/pkg/msg"
)

type cleanupUseCase struct {
	storage     storage.FileStorage
	cleanups    db.FileCleanupGateway
	maxAttempts int
	batchSize   int
}

func NewCleanupUseCase(fileStorage storage.FileStorage, cleanups db.FileCleanupGateway, maxAttempts int, batchSize int) CleanupUseCase {
	if maxAttempts <= 0 {
		maxAttempts = 10
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return &cleanupUseCase{
		storage:     fileStorage,
		cleanups:    cleanups,
		maxAttempts: maxAttempts,
		batchSize:   batchSize,
	}
}

func (uc *cleanupUseCase) RetryPending(ctx context.Context) (*CleanupReport, error) {
	report := &CleanupReport{}

	dropped, err := uc.cleanups.DeleteExhausted(ctx, uc.maxAttempts)
	if err != nil {
		return nil, err
	}
	for _, cleanup := range dropped {
		log.Error(msg.GetMessage("attachment.cleanup.dropped", cleanup.Path, cleanup.Attempts),
			zap.String("path", cleanup.Path), zap.String("last_error", cleanup.LastError))
	}
	report.Dropped = len(dropped)

	pending, err := uc.cleanups.FindPending(ctx, uc.maxAttempts, uc.batchSize)
	if err != nil {
		return nil, err
	}

	for _, cleanup := range pending {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}

		removeErr := uc.storage.Remove(ctx, cleanup.Path)
		if removeErr == nil || errors.Is(removeErr, storage.ErrNotExist) {
			if err := uc.cleanups.Delete(ctx, cleanup.ID); err != nil {
				return report, err
			}
			report.Removed++
			continue
		}

		if err := uc.cleanups.MarkFailed(ctx, cleanup.ID, removeErr.Error()); err != nil {
			return report, err
		}
		report.Pending++
	}

	return report, nil
}
