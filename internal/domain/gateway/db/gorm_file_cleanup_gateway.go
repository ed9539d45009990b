package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"todo-api/internal/domain/entity"
)

type GormFileCleanupGateway struct {
	DB *gorm.DB
}

var _ FileCleanupGateway = (*GormFileCleanupGateway)(nil)

func NewGormFileCleanupGateway(db *gorm.DB) *GormFileCleanupGateway {
	return &GormFileCleanupGateway{DB: db}
}

func (gateway *GormFileCleanupGateway) Create(ctx context.Context, cleanup *entity.FileCleanup) error {
	if err := gateway.DB.WithContext(ctx).Create(cleanup).Error; err != nil {
		return fmt.Errorf("recording file cleanup for %s: %w", cleanup.Path, err)
	}
	return nil
}

func (gateway *GormFileCleanupGateway) FindPending(ctx context.Context, maxAttempts int, limit int) ([]entity.FileCleanup, error) {
	pending := make([]entity.FileCleanup, 0)
	err := gateway.DB.WithContext(ctx).
		Where("attempts < ?", maxAttempts).
		Order("created_at ASC").
		Limit(limit).
		Find(&pending).Error
	if err != nil {
		return nil, fmt.Errorf("listing pending file cleanups: %w", err)
	}
	return pending, nil
}

func (gateway *GormFileCleanupGateway) MarkFailed(ctx context.Context, id string, reason string) error {
	err := gateway.DB.WithContext(ctx).
		Model(&entity.FileCleanup{ID: id}).
		Updates(map[string]any{
			"attempts":   gorm.Expr("attempts + ?", 1),
			"last_error": reason,
		}).Error
	if err != nil {
		return fmt.Errorf("marking file cleanup %s as failed: %w", id, err)
	}
	return nil
}

func (gateway *GormFileCleanupGateway) Delete(ctx context.Context, id string) error {
	if err := gateway.DB.WithContext(ctx).Delete(&entity.FileCleanup{ID: id}).Error; err != nil {
		return fmt.Errorf("deleting file cleanup %s: %w", id, err)
	}
	return nil
}

// DeleteExhausted removes and returns the rows that reached maxAttempts.
func (gateway *GormFileCleanupGateway) DeleteExhausted(ctx context.Context, maxAttempts int) ([]entity.FileCleanup, error) {
	exhausted := make([]entity.FileCleanup, 0)
	err := gateway.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("attempts >= ?", maxAttempts).Find(&exhausted).Error; err != nil {
			return err
		}
		if len(exhausted) == 0 {
			return nil
		}
		ids := make([]string, len(exhausted))
		for i := range exhausted {
			ids[i] = exhausted[i].ID
		}
		return tx.Where("id IN ?", ids).Delete(&entity.FileCleanup{}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("dropping exhausted file cleanups: %w", err)
	}
	return exhausted, nil
}
