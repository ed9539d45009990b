package attachment

import (
	"context"
	"io"

	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/model"
)

// Manager keeps attachment files consistent with the records embedded in todos and subtasks.
type Manager interface {
	// Store validates and writes the upload, returning the record to embed.
	Store(ctx context.Context, upload model.FileUpload) (*entity.Attachment, error)
	Open(ctx context.Context, attachment entity.Attachment) (io.ReadCloser, error)
	// Remove deletes the backing file; failures are logged and queued for retry, never returned.
	Remove(ctx context.Context, attachment entity.Attachment)
	RemoveAll(ctx context.Context, attachments []entity.Attachment)
}

// CleanupUseCase retries file removals recorded in the operation log.
type CleanupUseCase interface {
	RetryPending(ctx context.Context) (*CleanupReport, error)
}

type CleanupReport struct {
	Removed int `json:"removed"`
	Pending int `json:"pending"`
	Dropped int `json:"dropped"`
}
