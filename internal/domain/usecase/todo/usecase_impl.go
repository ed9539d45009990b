package todo

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"todo-api/internal/domain/apperror"
	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/gateway/db"
	"todo-api/internal/domain/model"
	"todo-api/internal/domain/usecase/attachment"
	"todo-api/internal/domain/usecase/link"
	"todo-api/pkg/log"
	"todo-api/pkg/msg"
)

type todoUseCase struct {
	todos       db.TodoGateway
	attachments attachment.Manager
	now         func() time.Time
}

func NewTodoUseCase(todos db.TodoGateway, attachments attachment.Manager) UseCase {
	return &todoUseCase{
		todos:       todos,
		attachments: attachments,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (uc *todoUseCase) Create(ctx context.Context, identity model.Identity, dto model.CreateTodoDTO) (*entity.Todo, error) {
	content, err := Content(dto.Content)
	if err != nil {
		return nil, err
	}
	priority, err := parsePriority(dto.Priority)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	todo := &entity.Todo{
		ID:          uuid.NewString(),
		Author:      identity.UserID,
		Content:     content,
		Priority:    priority,
		SubTasks:    []entity.SubTask{},
		Attachments: []entity.Attachment{},
		Links:       []entity.Link{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.todos.Create(ctx, todo); err != nil {
		return nil, internal(err)
	}
	return todo, nil
}

func (uc *todoUseCase) FindAll(ctx context.Context, identity model.Identity) ([]entity.Todo, error) {
	todos, err := uc.todos.FindAllByAuthor(ctx, identity.UserID)
	if err != nil {
		return nil, internal(err)
	}
	for i := range todos {
		normalize(&todos[i])
	}
	return todos, nil
}

func (uc *todoUseCase) FindByID(ctx context.Context, identity model.Identity, id string) (*entity.Todo, error) {
	todo, err := uc.todos.FindByIDAndAuthor(ctx, id, identity.UserID)
	if err != nil {
		return nil, internal(err)
	}
	if todo == nil {
		return nil, apperror.NotFound(msg.GetMessage("todo.error.not-found"))
	}
	normalize(todo)
	return todo, nil
}

func (uc *todoUseCase) Update(ctx context.Context, identity model.Identity, id string, dto model.UpdateTodoDTO) (*entity.Todo, error) {
	todo, err := uc.FindByID(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	if dto.Content != nil {
		content, err := Content(*dto.Content)
		if err != nil {
			return nil, err
		}
		todo.Content = content
	}
	if dto.Priority != nil {
		priority, err := parsePriority(*dto.Priority)
		if err != nil {
			return nil, err
		}
		todo.Priority = priority
	}
	if dto.IsCompleted != nil {
		todo.IsCompleted = *dto.IsCompleted
	}

	return uc.save(ctx, todo)
}

func (uc *todoUseCase) Delete(ctx context.Context, identity model.Identity, id string) error {
	todo, err := uc.todos.DeleteWithSubTasks(ctx, id, identity.UserID)
	if err != nil {
		return internal(err)
	}
	if todo == nil {
		return apperror.NotFound(msg.GetMessage("todo.error.not-found"))
	}

	// Records are gone; file removal is best-effort from here on.
	uc.attachments.RemoveAll(ctx, todo.Attachments)
	for _, subTask := range todo.SubTasks {
		uc.attachments.RemoveAll(ctx, subTask.Attachments)
	}

	log.Info("Todo deleted", zap.String("todo_id", todo.ID), zap.Int("subtasks", len(todo.SubTasks)))
	return nil
}

func (uc *todoUseCase) ToggleStatus(ctx context.Context, identity model.Identity, id string) (*entity.Todo, error) {
	todo, err := uc.FindByID(ctx, identity, id)
	if err != nil {
		return nil, err
	}
	todo.IsCompleted = !todo.IsCompleted
	return uc.save(ctx, todo)
}

func (uc *todoUseCase) AddAttachment(ctx context.Context, identity model.Identity, id string, upload model.FileUpload) (*entity.Todo, error) {
	todo, err := uc.FindByID(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	stored, err := uc.attachments.Store(ctx, upload)
	if err != nil {
		return nil, err
	}

	todo.Attachments = append(todo.Attachments, *stored)
	saved, err := uc.save(ctx, todo)
	if err != nil {
		uc.attachments.Remove(ctx, *stored)
		return nil, err
	}
	return saved, nil
}

func (uc *todoUseCase) RemoveAttachment(ctx context.Context, identity model.Identity, id string, attachmentID string) (*entity.Todo, error) {
	todo, err := uc.FindByID(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	index := entity.FindAttachment(todo.Attachments, attachmentID)
	if index < 0 {
		return nil, apperror.NotFound(msg.GetMessage("attachment.error.not-found"))
	}
	removed := todo.Attachments[index]
	todo.Attachments = append(todo.Attachments[:index:index], todo.Attachments[index+1:]...)

	saved, err := uc.save(ctx, todo)
	if err != nil {
		return nil, err
	}
	uc.attachments.Remove(ctx, removed)
	return saved, nil
}

func (uc *todoUseCase) GetAttachment(ctx context.Context, identity model.Identity, id string, attachmentID string) (*entity.Attachment, io.ReadCloser, error) {
	todo, err := uc.FindByID(ctx, identity, id)
	if err != nil {
		return nil, nil, err
	}

	index := entity.FindAttachment(todo.Attachments, attachmentID)
	if index < 0 {
		return nil, nil, apperror.NotFound(msg.GetMessage("attachment.error.not-found"))
	}
	found := todo.Attachments[index]

	reader, err := uc.attachments.Open(ctx, found)
	if err != nil {
		return nil, nil, err
	}
	return &found, reader, nil
}

func (uc *todoUseCase) AddLink(ctx context.Context, identity model.Identity, id string, dto model.CreateLinkDTO) (*entity.Todo, error) {
	todo, err := uc.FindByID(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	created, err := link.New(dto)
	if err != nil {
		return nil, err
	}
	todo.Links = append(todo.Links, *created)
	return uc.save(ctx, todo)
}

func (uc *todoUseCase) RemoveLink(ctx context.Context, identity model.Identity, id string, linkID string) (*entity.Todo, error) {
	todo, err := uc.FindByID(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	links, err := link.Remove(todo.Links, linkID)
	if err != nil {
		return nil, err
	}
	todo.Links = links
	return uc.save(ctx, todo)
}

func (uc *todoUseCase) save(ctx context.Context, todo *entity.Todo) (*entity.Todo, error) {
	todo.UpdatedAt = uc.now()
	if err := uc.todos.Update(ctx, todo); err != nil {
		return nil, internal(err)
	}
	return todo, nil
}

// Content trims the submitted content and rejects it when nothing is left.
func Content(raw string) (string, error) {
	content := strings.TrimSpace(raw)
	if content == "" {
		return "", apperror.Validation(msg.GetMessage("todo.error.empty-content"))
	}
	return content, nil
}

func parsePriority(raw string) (entity.Priority, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return entity.PriorityMedium, nil
	}
	priority := entity.Priority(value)
	if !priority.Valid() {
		return "", apperror.Validation(msg.GetMessage("todo.error.invalid-priority", raw))
	}
	return priority, nil
}

func normalize(todo *entity.Todo) {
	if todo.SubTasks == nil {
		todo.SubTasks = []entity.SubTask{}
	}
	if todo.Attachments == nil {
		todo.Attachments = []entity.Attachment{}
	}
	if todo.Links == nil {
		todo.Links = []entity.Link{}
	}
	for i := range todo.SubTasks {
		if todo.SubTasks[i].Attachments == nil {
			todo.SubTasks[i].Attachments = []entity.Attachment{}
		}
		if todo.SubTasks[i].Links == nil {
			todo.SubTasks[i].Links = []entity.Link{}
		}
	}
}

func internal(err error) error {
	return apperror.Internal(msg.GetMessage("response.internal"), err)
}
