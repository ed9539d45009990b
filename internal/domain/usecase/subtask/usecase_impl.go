package subtask

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"todo-api/internal/domain/apperror"
	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/gateway/db"
	"todo-api/internal/domain/model"
	"todo-api/internal/domain/usecase/attachment"
	"todo-api/internal/domain/usecase/link"
	"todo-api/internal/domain/usecase/todo"
	"todo-api/pkg/msg"
)

type subTaskUseCase struct {
	todos       db.TodoGateway
	subTasks    db.SubTaskGateway
	attachments attachment.Manager
	now         func() time.Time
}

func NewSubTaskUseCase(todos db.TodoGateway, subTasks db.SubTaskGateway, attachments attachment.Manager) UseCase {
	return &subTaskUseCase{
		todos:       todos,
		subTasks:    subTasks,
		attachments: attachments,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (uc *subTaskUseCase) Create(ctx context.Context, identity model.Identity, todoID string, dto model.CreateSubTaskDTO) (*entity.SubTask, error) {
	parent, err := uc.parent(ctx, identity, todoID)
	if err != nil {
		return nil, err
	}
	content, err := todo.Content(dto.Content)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	subTask := &entity.SubTask{
		ID:          uuid.NewString(),
		ParentTodo:  parent.ID,
		Content:     content,
		Attachments: []entity.Attachment{},
		Links:       []entity.Link{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.subTasks.Create(ctx, subTask); err != nil {
		return nil, internal(err)
	}
	return subTask, nil
}

func (uc *subTaskUseCase) FindAll(ctx context.Context, identity model.Identity, todoID string) ([]entity.SubTask, error) {
	parent, err := uc.parent(ctx, identity, todoID)
	if err != nil {
		return nil, err
	}

	subTasks, err := uc.subTasks.FindAllByTodo(ctx, parent.ID)
	if err != nil {
		return nil, internal(err)
	}
	for i := range subTasks {
		normalize(&subTasks[i])
	}
	return subTasks, nil
}

func (uc *subTaskUseCase) FindByID(ctx context.Context, identity model.Identity, todoID string, id string) (*entity.SubTask, error) {
	parent, err := uc.parent(ctx, identity, todoID)
	if err != nil {
		return nil, err
	}

	subTask, err := uc.subTasks.FindByIDAndTodo(ctx, id, parent.ID)
	if err != nil {
		return nil, internal(err)
	}
	if subTask == nil {
		return nil, apperror.NotFound(msg.GetMessage("subtask.error.not-found"))
	}
	normalize(subTask)
	return subTask, nil
}

func (uc *subTaskUseCase) Update(ctx context.Context, identity model.Identity, todoID string, id string, dto model.UpdateSubTaskDTO) (*entity.SubTask, error) {
	subTask, err := uc.FindByID(ctx, identity, todoID, id)
	if err != nil {
		return nil, err
	}

	if dto.Content != nil {
		content, err := todo.Content(*dto.Content)
		if err != nil {
			return nil, err
		}
		subTask.Content = content
	}
	if dto.IsCompleted != nil {
		subTask.IsCompleted = *dto.IsCompleted
	}
	return uc.save(ctx, subTask)
}

func (uc *subTaskUseCase) Delete(ctx context.Context, identity model.Identity, todoID string, id string) error {
	subTask, err := uc.FindByID(ctx, identity, todoID, id)
	if err != nil {
		return err
	}

	deleted, err := uc.subTasks.Delete(ctx, subTask.ID, subTask.ParentTodo)
	if err != nil {
		return internal(err)
	}
	if !deleted {
		return apperror.NotFound(msg.GetMessage("subtask.error.not-found"))
	}

	uc.attachments.RemoveAll(ctx, subTask.Attachments)
	return nil
}

func (uc *subTaskUseCase) ToggleStatus(ctx context.Context, identity model.Identity, todoID string, id string) (*entity.SubTask, error) {
	subTask, err := uc.FindByID(ctx, identity, todoID, id)
	if err != nil {
		return nil, err
	}
	subTask.IsCompleted = !subTask.IsCompleted
	return uc.save(ctx, subTask)
}

func (uc *subTaskUseCase) AddAttachment(ctx context.Context, identity model.Identity, todoID string, id string, upload model.FileUpload) (*entity.SubTask, error) {
	subTask, err := uc.FindByID(ctx, identity, todoID, id)
	if err != nil {
		return nil, err
	}

	stored, err := uc.attachments.Store(ctx, upload)
	if err != nil {
		return nil, err
	}

	subTask.Attachments = append(subTask.Attachments, *stored)
	saved, err := uc.save(ctx, subTask)
	if err != nil {
		uc.attachments.Remove(ctx, *stored)
		return nil, err
	}
	return saved, nil
}

func (uc *subTaskUseCase) RemoveAttachment(ctx context.Context, identity model.Identity, todoID string, id string, attachmentID string) (*entity.SubTask, error) {
	subTask, err := uc.FindByID(ctx, identity, todoID, id)
	if err != nil {
		return nil, err
	}

	index := entity.FindAttachment(subTask.Attachments, attachmentID)
	if index < 0 {
		return nil, apperror.NotFound(msg.GetMessage("attachment.error.not-found"))
	}
	removed := subTask.Attachments[index]
	subTask.Attachments = append(subTask.Attachments[:index:index], subTask.Attachments[index+1:]...)

	saved, err := uc.save(ctx, subTask)
	if err != nil {
		return nil, err
	}
	uc.attachments.Remove(ctx, removed)
	return saved, nil
}

func (uc *subTaskUseCase) GetAttachment(ctx context.Context, identity model.Identity, todoID string, id string, attachmentID string) (*entity.Attachment, io.ReadCloser, error) {
	subTask, err := uc.FindByID(ctx, identity, todoID, id)
	if err != nil {
		return nil, nil, err
	}

	index := entity.FindAttachment(subTask.Attachments, attachmentID)
	if index < 0 {
		return nil, nil, apperror.NotFound(msg.GetMessage("attachment.error.not-found"))
	}
	found := subTask.Attachments[index]

	reader, err := uc.attachments.Open(ctx, found)
	if err != nil {
		return nil, nil, err
	}
	return &found, reader, nil
}

func (uc *subTaskUseCase) AddLink(ctx context.Context, identity model.Identity, todoID string, id string, dto model.CreateLinkDTO) (*entity.SubTask, error) {
	subTask, err := uc.FindByID(ctx, identity, todoID, id)
	if err != nil {
		return nil, err
	}

	created, err := link.New(dto)
	if err != nil {
		return nil, err
	}
	subTask.Links = append(subTask.Links, *created)
	return uc.save(ctx, subTask)
}

func (uc *subTaskUseCase) RemoveLink(ctx context.Context, identity model.Identity, todoID string, id string, linkID string) (*entity.SubTask, error) {
	subTask, err := uc.FindByID(ctx, identity, todoID, id)
	if err != nil {
		return nil, err
	}

	links, err := link.Remove(subTask.Links, linkID)
	if err != nil {
		return nil, err
	}
	subTask.Links = links
	return uc.save(ctx, subTask)
}

func (uc *subTaskUseCase) parent(ctx context.Context, identity model.Identity, todoID string) (*entity.Todo, error) {
	parent, err := uc.todos.FindByIDAndAuthor(ctx, todoID, identity.UserID)
	if err != nil {
		return nil, internal(err)
	}
	if parent == nil {
		return nil, apperror.NotFound(msg.GetMessage("todo.error.not-found"))
	}
	return parent, nil
}

func (uc *subTaskUseCase) save(ctx context.Context, subTask *entity.SubTask) (*entity.SubTask, error) {
	subTask.UpdatedAt = uc.now()
	if err := uc.subTasks.Update(ctx, subTask); err != nil {
		return nil, internal(err)
	}
	return subTask, nil
}

func normalize(subTask *entity.SubTask) {
	if subTask.Attachments == nil {
		subTask.Attachments = []entity.Attachment{}
	}
	if subTask.Links == nil {
		subTask.Links = []entity.Link{}
	}
}

func internal(err error) error {
	return apperror.Internal(msg.GetMessage("response.internal"), err)
}
