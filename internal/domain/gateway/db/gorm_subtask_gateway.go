package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"todo-api/internal/domain/entity"
)

type GormSubTaskGateway struct {
	DB *gorm.DB
}

var _ SubTaskGateway = (*GormSubTaskGateway)(nil)

func NewGormSubTaskGateway(db *gorm.DB) *GormSubTaskGateway {
	return &GormSubTaskGateway{DB: db}
}

func (gateway *GormSubTaskGateway) FindAllByTodo(ctx context.Context, todoID string) ([]entity.SubTask, error) {
	subTasks := make([]entity.SubTask, 0)
	err := gateway.DB.WithContext(ctx).
		Where("parent_todo = ?", todoID).
		Order("created_at ASC").
		Find(&subTasks).Error
	if err != nil {
		return nil, fmt.Errorf("listing subtasks of todo %s: %w", todoID, err)
	}
	return subTasks, nil
}

func (gateway *GormSubTaskGateway) FindByIDAndTodo(ctx context.Context, id string, todoID string) (*entity.SubTask, error) {
	var subTask entity.SubTask
	err := gateway.DB.WithContext(ctx).
		Where("id = ? AND parent_todo = ?", id, todoID).
		First(&subTask).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding subtask %s: %w", id, err)
	}
	return &subTask, nil
}

func (gateway *GormSubTaskGateway) Create(ctx context.Context, subTask *entity.SubTask) error {
	if err := gateway.DB.WithContext(ctx).Create(subTask).Error; err != nil {
		return fmt.Errorf("creating subtask: %w", err)
	}
	return nil
}

// Update never touches parent_todo, which is immutable after creation.
func (gateway *GormSubTaskGateway) Update(ctx context.Context, subTask *entity.SubTask) error {
	err := gateway.DB.WithContext(ctx).
		Model(subTask).
		Where("parent_todo = ?", subTask.ParentTodo).
		Select("content", "is_completed", "attachments", "links", "updated_at").
		Updates(subTask).Error
	if err != nil {
		return fmt.Errorf("updating subtask %s: %w", subTask.ID, err)
	}
	return nil
}

func (gateway *GormSubTaskGateway) Delete(ctx context.Context, id string, todoID string) (bool, error) {
	result := gateway.DB.WithContext(ctx).
		Where("id = ? AND parent_todo = ?", id, todoID).
		Delete(&entity.SubTask{})
	if result.Error != nil {
		return false, fmt.Errorf("deleting subtask %s: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}
