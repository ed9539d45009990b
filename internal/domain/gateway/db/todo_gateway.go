package db

import (
	"context"

	"todo-api/internal/domain/entity"
)

// TodoGateway persists todos. Every lookup is scoped by author; a todo owned by someone
// else is indistinguishable from a missing one (nil, nil).
type TodoGateway interface {
	FindAllByAuthor(ctx context.Context, author string) ([]entity.Todo, error)
	FindByIDAndAuthor(ctx context.Context, id string, author string) (*entity.Todo, error)
	Create(ctx context.Context, todo *entity.Todo) error
	Update(ctx context.Context, todo *entity.Todo) error
	// DeleteWithSubTasks removes the todo and all its subtasks in one transaction. It returns
	// the removed todo with the subtasks read inside that transaction, or nil when none matched.
	DeleteWithSubTasks(ctx context.Context, id string, author string) (*entity.Todo, error)
}
