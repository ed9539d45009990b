package db

import (
	"context"

	"todo-api/internal/domain/entity"
)

// SubTaskGateway persists subtasks. Callers must have resolved the parent todo with
// the ownership predicate before using it.
type SubTaskGateway interface {
	FindAllByTodo(ctx context.Context, todoID string) ([]entity.SubTask, error)
	FindByIDAndTodo(ctx context.Context, id string, todoID string) (*entity.SubTask, error)
	Create(ctx context.Context, subTask *entity.SubTask) error
	Update(ctx context.Context, subTask *entity.SubTask) error
	Delete(ctx context.Context, id string, todoID string) (bool, error)
}
