package subtask

import (
	"context"
	"io"

	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/model"
)

// UseCase manages subtasks under a todo owned by the caller. The parent todo is always
// resolved with the ownership predicate before the subtask is looked up.
type UseCase interface {
	Create(ctx context.Context, identity model.Identity, todoID string, dto model.CreateSubTaskDTO) (*entity.SubTask, error)
	FindAll(ctx context.Context, identity model.Identity, todoID string) ([]entity.SubTask, error)
	FindByID(ctx context.Context, identity model.Identity, todoID string, id string) (*entity.SubTask, error)
	Update(ctx context.Context, identity model.Identity, todoID string, id string, dto model.UpdateSubTaskDTO) (*entity.SubTask, error)
	Delete(ctx context.Context, identity model.Identity, todoID string, id string) error
	ToggleStatus(ctx context.Context, identity model.Identity, todoID string, id string) (*entity.SubTask, error)

	AddAttachment(ctx context.Context, identity model.Identity, todoID string, id string, upload model.FileUpload) (*entity.SubTask, error)
	RemoveAttachment(ctx context.Context, identity model.Identity, todoID string, id string, attachmentID string) (*entity.SubTask, error)
	GetAttachment(ctx context.Context, identity model.Identity, todoID string, id string, attachmentID string) (*entity.Attachment, io.ReadCloser, error)

	AddLink(ctx context.Context, identity model.Identity, todoID string, id string, dto model.CreateLinkDTO) (*entity.SubTask, error)
	RemoveLink(ctx context.Context, identity model.Identity, todoID string, id string, linkID string) (*entity.SubTask, error)
}
