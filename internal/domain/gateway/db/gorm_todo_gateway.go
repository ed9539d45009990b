package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"todo-api/internal/domain/entity"
)

type GormTodoGateway struct {
	DB *gorm.DB
}

var _ TodoGateway = (*GormTodoGateway)(nil)

func NewGormTodoGateway(db *gorm.DB) *GormTodoGateway {
	return &GormTodoGateway{DB: db}
}

func orderedSubTasks(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

func (gateway *GormTodoGateway) FindAllByAuthor(ctx context.Context, author string) ([]entity.Todo, error) {
	todos := make([]entity.Todo, 0)
	err := gateway.DB.WithContext(ctx).
		Preload("SubTasks", orderedSubTasks).
		Where("author = ?", author).
		Order("created_at ASC").
		Find(&todos).Error
	if err != nil {
		return nil, fmt.Errorf("listing todos: %w", err)
	}
	return todos, nil
}

func (gateway *GormTodoGateway) FindByIDAndAuthor(ctx context.Context, id string, author string) (*entity.Todo, error) {
	var todo entity.Todo
	err := gateway.DB.WithContext(ctx).
		Preload("SubTasks", orderedSubTasks).
		Where("id = ? AND author = ?", id, author).
		First(&todo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding todo %s: %w", id, err)
	}
	return &todo, nil
}

func (gateway *GormTodoGateway) Create(ctx context.Context, todo *entity.Todo) error {
	if err := gateway.DB.WithContext(ctx).Omit("SubTasks").Create(todo).Error; err != nil {
		return fmt.Errorf("creating todo: %w", err)
	}
	return nil
}

// Update writes every mutable column; concurrent writers resolve last-write-wins.
func (gateway *GormTodoGateway) Update(ctx context.Context, todo *entity.Todo) error {
	err := gateway.DB.WithContext(ctx).
		Model(todo).
		Where("author = ?", todo.Author).
		Select("content", "priority", "is_completed", "attachments", "links", "updated_at").
		Updates(todo).Error
	if err != nil {
		return fmt.Errorf("updating todo %s: %w", todo.ID, err)
	}
	return nil
}

func (gateway *GormTodoGateway) DeleteWithSubTasks(ctx context.Context, id string, author string) (*entity.Todo, error) {
	var deleted *entity.Todo
	err := gateway.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var todo entity.Todo
		err := tx.Preload("SubTasks", orderedSubTasks).
			Where("id = ? AND author = ?", id, author).
			First(&todo).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := tx.Where("parent_todo = ?", id).Delete(&entity.SubTask{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ? AND author = ?", id, author).Delete(&entity.Todo{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			deleted = &todo
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("deleting todo %s: %w", id, err)
	}
	return deleted, nil
}
