package todo

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-api/internal/domain/apperror"
	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/gateway/db"
	"todo-api/internal/domain/model"
	"todo-api/internal/domain/usecase/attachment"
	"todo-api/internal/infra/database"
	infrastorage "todo-api/internal/infra/storage"
)

var (
	alice = model.Identity{UserID: "alice", Email: "alice@example.com", Role: entity.RoleUser}
	bob   = model.Identity{UserID: "bob", Email: "bob@example.com", Role: entity.RoleUser}
)

type fixture struct {
	useCase     UseCase
	fs          afero.Fs
	subTasks    db.SubTaskGateway
	todos       db.TodoGateway
	cleanups    db.FileCleanupGateway
	attachments attachment.Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conn := database.OpenTest(t)
	fs := afero.NewMemMapFs()
	todos := db.NewGormTodoGateway(conn)
	cleanups := db.NewGormFileCleanupGateway(conn)
	attachments := attachment.NewManager(infrastorage.NewAferoStorage(fs), cleanups, attachment.DefaultMaxSize)
	return &fixture{
		useCase:     NewTodoUseCase(todos, attachments),
		fs:          fs,
		subTasks:    db.NewGormSubTaskGateway(conn),
		todos:       todos,
		cleanups:    cleanups,
		attachments: attachments,
	}
}

func (f *fixture) create(t *testing.T, identity model.Identity, content string) *entity.Todo {
	t.Helper()
	todo, err := f.useCase.Create(context.Background(), identity, model.CreateTodoDTO{Content: content})
	require.NoError(t, err)
	return todo
}

func (f *fixture) exists(t *testing.T, path string) bool {
	t.Helper()
	ok, err := afero.Exists(f.fs, path)
	require.NoError(t, err)
	return ok
}

func textFile(name string) model.FileUpload {
	content := []byte("hello")
	return model.FileUpload{
		OriginalName: name,
		Size:         int64(len(content)),
		MimeType:     "text/plain",
		Content:      bytes.NewReader(content),
	}
}

func requireKind(t *testing.T, err error, kind apperror.Kind) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, apperror.Is(err, kind), "expected %s, got %v", kind, err)
}

func TestCreate_TrimsAndRoundTrips(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.useCase.Create(ctx, alice, model.CreateTodoDTO{Content: "  buy milk \n", Priority: " HIGH "})
	require.NoError(t, err)

	found, err := f.useCase.FindByID(ctx, alice, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "buy milk", found.Content)
	assert.Equal(t, entity.PriorityHigh, found.Priority)
	assert.Equal(t, "alice", found.Author)
	assert.False(t, found.IsCompleted)
	assert.NotNil(t, found.SubTasks)
	assert.NotNil(t, found.Attachments)
	assert.NotNil(t, found.Links)
}

func TestCreate_DefaultsPriorityToMedium(t *testing.T) {
	f := newFixture(t)

	created := f.create(t, alice, "walk the dog")

	assert.Equal(t, entity.PriorityMedium, created.Priority)
}

func TestCreate_RejectsInvalidInput(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		dto  model.CreateTodoDTO
	}{
		{"empty content", model.CreateTodoDTO{Content: ""}},
		{"whitespace content", model.CreateTodoDTO{Content: " \t\n "}},
		{"unknown priority", model.CreateTodoDTO{Content: "x", Priority: "urgent"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.useCase.Create(context.Background(), alice, tt.dto)
			requireKind(t, err, apperror.KindValidation)
		})
	}
}

func TestFindAll_OnlyOwnTodosInCreationOrder(t *testing.T) {
	f := newFixture(t)
	first := f.create(t, alice, "first")
	f.create(t, bob, "not yours")
	second := f.create(t, alice, "second")

	todos, err := f.useCase.FindAll(context.Background(), alice)
	require.NoError(t, err)

	require.Len(t, todos, 2)
	assert.Equal(t, first.ID, todos[0].ID)
	assert.Equal(t, second.ID, todos[1].ID)
}

func TestForeignTodoIsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owned := f.create(t, alice, "private")
	content := "hijacked"

	_, err := f.useCase.FindByID(ctx, bob, owned.ID)
	requireKind(t, err, apperror.KindNotFound)

	_, err = f.useCase.Update(ctx, bob, owned.ID, model.UpdateTodoDTO{Content: &content})
	requireKind(t, err, apperror.KindNotFound)

	_, err = f.useCase.ToggleStatus(ctx, bob, owned.ID)
	requireKind(t, err, apperror.KindNotFound)

	_, err = f.useCase.AddLink(ctx, bob, owned.ID, model.CreateLinkDTO{URL: "https://go.dev"})
	requireKind(t, err, apperror.KindNotFound)

	_, err = f.useCase.AddAttachment(ctx, bob, owned.ID, textFile("a.txt"))
	requireKind(t, err, apperror.KindNotFound)

	err = f.useCase.Delete(ctx, bob, owned.ID)
	requireKind(t, err, apperror.KindNotFound)

	_, err = f.useCase.FindByID(ctx, bob, uuid.NewString())
	requireKind(t, err, apperror.KindNotFound)

	found, err := f.useCase.FindByID(ctx, alice, owned.ID)
	require.NoError(t, err)
	assert.Equal(t, "private", found.Content)
	assert.Empty(t, found.Links)
	assert.Empty(t, found.Attachments)
}

func TestUpdate_AppliesOnlyProvidedFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := f.create(t, alice, "draft")
	completed := true
	priority := "low"

	updated, err := f.useCase.Update(ctx, alice, created.ID, model.UpdateTodoDTO{IsCompleted: &completed, Priority: &priority})
	require.NoError(t, err)
	assert.Equal(t, "draft", updated.Content)
	assert.True(t, updated.IsCompleted)

	found, err := f.useCase.FindByID(ctx, alice, created.ID)
	require.NoError(t, err)
	assert.True(t, found.IsCompleted)
	assert.Equal(t, entity.PriorityLow, found.Priority)

	blank := "   "
	_, err = f.useCase.Update(ctx, alice, created.ID, model.UpdateTodoDTO{Content: &blank})
	requireKind(t, err, apperror.KindValidation)
}

func TestToggleStatus_TwiceRestoresOriginal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := f.create(t, alice, "toggle me")

	toggled, err := f.useCase.ToggleStatus(ctx, alice, created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsCompleted)

	toggled, err = f.useCase.ToggleStatus(ctx, alice, created.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsCompleted)

	found, err := f.useCase.FindByID(ctx, alice, created.ID)
	require.NoError(t, err)
	assert.False(t, found.IsCompleted)
}

func TestAttachmentLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := f.create(t, alice, "with file")

	updated, err := f.useCase.AddAttachment(ctx, alice, created.ID, textFile("notes.txt"))
	require.NoError(t, err)
	require.Len(t, updated.Attachments, 1)
	stored := updated.Attachments[0]
	assert.True(t, f.exists(t, stored.Path))

	found, reader, err := f.useCase.GetAttachment(ctx, alice, created.ID, stored.ID)
	require.NoError(t, err)
	content, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.NoError(t, reader.Close())
	assert.Equal(t, "hello", string(content))
	assert.Equal(t, "notes.txt", found.OriginalName)

	_, _, err = f.useCase.GetAttachment(ctx, bob, created.ID, stored.ID)
	requireKind(t, err, apperror.KindNotFound)

	_, err = f.useCase.RemoveAttachment(ctx, alice, created.ID, "unknown")
	requireKind(t, err, apperror.KindNotFound)

	updated, err = f.useCase.RemoveAttachment(ctx, alice, created.ID, stored.ID)
	require.NoError(t, err)
	assert.Empty(t, updated.Attachments)
	assert.False(t, f.exists(t, stored.Path))
}

func TestAddAttachment_RejectsDisallowedType(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, alice, "no binaries")
	upload := textFile("setup.exe")
	upload.MimeType = "application/x-msdownload"

	_, err := f.useCase.AddAttachment(context.Background(), alice, created.ID, upload)

	requireKind(t, err, apperror.KindValidation)
	found, err := f.useCase.FindByID(context.Background(), alice, created.ID)
	require.NoError(t, err)
	assert.Empty(t, found.Attachments)
}

func TestRemoveAttachment_MissingFileStillRemovesRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := f.create(t, alice, "lost file")
	updated, err := f.useCase.AddAttachment(ctx, alice, created.ID, textFile("gone.txt"))
	require.NoError(t, err)
	require.NoError(t, f.fs.Remove(updated.Attachments[0].Path))

	updated, err = f.useCase.RemoveAttachment(ctx, alice, created.ID, updated.Attachments[0].ID)

	require.NoError(t, err)
	assert.Empty(t, updated.Attachments)
}

func TestLinks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := f.create(t, alice, "read later")

	updated, err := f.useCase.AddLink(ctx, alice, created.ID, model.CreateLinkDTO{URL: "https://go.dev/doc/effective_go"})
	require.NoError(t, err)
	require.Len(t, updated.Links, 1)
	assert.Equal(t, "go.dev", updated.Links[0].Title)

	_, err = f.useCase.AddLink(ctx, alice, created.ID, model.CreateLinkDTO{URL: "not a url"})
	requireKind(t, err, apperror.KindValidation)

	_, err = f.useCase.RemoveLink(ctx, alice, created.ID, "unknown")
	requireKind(t, err, apperror.KindNotFound)

	updated, err = f.useCase.RemoveLink(ctx, alice, created.ID, updated.Links[0].ID)
	require.NoError(t, err)
	assert.Empty(t, updated.Links)

	found, err := f.useCase.FindByID(ctx, alice, created.ID)
	require.NoError(t, err)
	assert.Empty(t, found.Links)
}

// addSubTaskWithFile stores a subtask holding one attachment, bypassing the subtask usecase.
func (f *fixture) addSubTaskWithFile(t *testing.T, todoID string, name string) *entity.SubTask {
	t.Helper()
	ctx := context.Background()
	stored, err := f.attachments.Store(ctx, textFile(name))
	require.NoError(t, err)

	now := time.Now().UTC()
	subTask := &entity.SubTask{
		ID:          uuid.NewString(),
		ParentTodo:  todoID,
		Content:     name,
		Attachments: []entity.Attachment{*stored},
		Links:       []entity.Link{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, f.subTasks.Create(ctx, subTask))
	return subTask
}

func TestDelete_CascadesToSubTasksAndFiles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := f.create(t, alice, "parent")
	first := f.addSubTaskWithFile(t, created.ID, "first.txt")
	second := f.addSubTaskWithFile(t, created.ID, "second.txt")

	// One backing file has already disappeared; the delete must still succeed.
	require.NoError(t, f.fs.Remove(first.Attachments[0].Path))

	err := f.useCase.Delete(ctx, alice, created.ID)
	require.NoError(t, err)

	_, err = f.useCase.FindByID(ctx, alice, created.ID)
	requireKind(t, err, apperror.KindNotFound)

	remaining, err := f.subTasks.FindAllByTodo(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	assert.False(t, f.exists(t, second.Attachments[0].Path))

	pending, err := f.cleanups.FindPending(ctx, 10, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestDelete_FileRemovalFailureIsQueued(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := f.create(t, alice, "parent")
	subTask := f.addSubTaskWithFile(t, created.ID, "locked.txt")

	readOnly := attachment.NewManager(infrastorage.NewAferoStorage(afero.NewReadOnlyFs(f.fs)), f.cleanups, attachment.DefaultMaxSize)
	useCase := NewTodoUseCase(f.todos, readOnly)

	require.NoError(t, useCase.Delete(ctx, alice, created.ID))

	_, err := useCase.FindByID(ctx, alice, created.ID)
	requireKind(t, err, apperror.KindNotFound)

	pending, err := f.cleanups.FindPending(ctx, 10, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, subTask.Attachments[0].Path, pending[0].Path)
	assert.True(t, f.exists(t, subTask.Attachments[0].Path))
}

// lateSubTaskGateway adds a subtask right before the cascade delete starts.
type lateSubTaskGateway struct {
	db.TodoGateway
	beforeDelete func()
}

func (g *lateSubTaskGateway) DeleteWithSubTasks(ctx context.Context, id string, author string) (*entity.Todo, error) {
	g.beforeDelete()
	return g.TodoGateway.DeleteWithSubTasks(ctx, id, author)
}

func TestDelete_RemovesFilesOfSubTaskAddedBeforeCascade(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := f.create(t, alice, "parent")

	var late *entity.SubTask
	gateway := &lateSubTaskGateway{
		TodoGateway:  f.todos,
		beforeDelete: func() { late = f.addSubTaskWithFile(t, created.ID, "late.txt") },
	}
	useCase := NewTodoUseCase(gateway, f.attachments)

	require.NoError(t, useCase.Delete(ctx, alice, created.ID))

	require.NotNil(t, late)
	assert.False(t, f.exists(t, late.Attachments[0].Path))

	remaining, err := f.subTasks.FindAllByTodo(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
