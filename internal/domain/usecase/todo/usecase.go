package todo

import (
	"context"
	"io"

	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/model"
)

// UseCase manages the caller's todos. Every method resolves the todo with the
// ownership predicate first; a todo owned by someone else is reported as not found.
type UseCase interface {
	Create(ctx context.Context, identity model.Identity, dto model.CreateTodoDTO) (*entity.Todo, error)
	FindAll(ctx context.Context, identity model.Identity) ([]entity.Todo, error)
	FindByID(ctx context.Context, identity model.Identity, id string) (*entity.Todo, error)
	Update(ctx context.Context, identity model.Identity, id string, dto model.UpdateTodoDTO) (*entity.Todo, error)
	Delete(ctx context.Context, identity model.Identity, id string) error
	ToggleStatus(ctx context.Context, identity model.Identity, id string) (*entity.Todo, error)

	AddAttachment(ctx context.Context, identity model.Identity, id string, upload model.FileUpload) (*entity.Todo, error)
	RemoveAttachment(ctx context.Context, identity model.Identity, id string, attachmentID string) (*entity.Todo, error)
	// GetAttachment returns the record and a reader the caller must close.
	GetAttachment(ctx context.Context, identity model.Identity, id string, attachmentID string) (*entity.Attachment, io.ReadCloser, error)

	AddLink(ctx context.Context, identity model.Identity, id string, dto model.CreateLinkDTO) (*entity.Todo, error)
	RemoveLink(ctx context.Context, identity model.Identity, id string, linkID string) (*entity.Todo, error)
}
