package attachment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"todo-api/internal/domain/apperror"
	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/gateway/db"
	"todo-api/internal/domain/gateway/storage"
	"todo-api/internal/domain/model"
	"todo-api/pkg/log"
	"todo-api/pkg/msg"
)

const (
	// Directory, relative to the upload root, holding every attachment.
	Directory = "attachments"
	// DefaultMaxSize is the upload limit when none is configured.
	DefaultMaxSize int64 = 10 << 20

	maxBaseNameLength = 64
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

type manager struct {
	storage  storage.FileStorage
	cleanups db.FileCleanupGateway
	maxSize  int64
	now      func() time.Time
}

func NewManager(fileStorage storage.FileStorage, cleanups db.FileCleanupGateway, maxSize int64) Manager {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &manager{
		storage:  fileStorage,
		cleanups: cleanups,
		maxSize:  maxSize,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (m *manager) validate(upload model.FileUpload) (string, error) {
	if upload.Content == nil {
		return "", apperror.Validation(msg.GetMessage("attachment.error.missing-file"))
	}
	if upload.Size > m.maxSize {
		return "", apperror.Validation(msg.GetMessage("attachment.error.too-large", upload.Size, m.maxSize))
	}

	mediaType := resolveMimeType(upload.MimeType, upload.OriginalName)
	if !isAllowed(mediaType) {
		return "", apperror.Validation(msg.GetMessage("attachment.error.type-not-allowed", mediaType))
	}
	return mediaType, nil
}

func (m *manager) Store(ctx context.Context, upload model.FileUpload) (*entity.Attachment, error) {
	mediaType, err := m.validate(upload)
	if err != nil {
		return nil, err
	}

	filename := uniqueFilename(upload.OriginalName)
	relativePath := path.Join(Directory, filename)

	// One byte over the limit is enough to detect a lying Content-Length.
	written, err := m.storage.Create(ctx, relativePath, io.LimitReader(upload.Content, m.maxSize+1))
	if err != nil {
		return nil, apperror.Internal(msg.GetMessage("response.internal"), err)
	}
	if written > m.maxSize {
		m.Remove(ctx, entity.Attachment{Path: relativePath})
		return nil, apperror.Validation(msg.GetMessage("attachment.error.too-large", written, m.maxSize))
	}

	return &entity.Attachment{
		ID:           uuid.NewString(),
		Filename:     filename,
		OriginalName: filepath.Base(upload.OriginalName),
		Path:         relativePath,
		Size:         written,
		MimeType:     mediaType,
		UploadedAt:   m.now(),
	}, nil
}

func (m *manager) Open(ctx context.Context, attachment entity.Attachment) (io.ReadCloser, error) {
	reader, err := m.storage.Open(ctx, attachment.Path)
	if errors.Is(err, storage.ErrNotExist) {
		return nil, apperror.NotFound(msg.GetMessage("attachment.error.not-found"))
	}
	if err != nil {
		return nil, apperror.Internal(msg.GetMessage("response.internal"), err)
	}
	return reader, nil
}

func (m *manager) Remove(ctx context.Context, attachment entity.Attachment) {
	err := m.storage.Remove(ctx, attachment.Path)
	if err == nil {
		return
	}
	if errors.Is(err, storage.ErrNotExist) {
		log.Warn(msg.GetMessage("attachment.error.file-missing", attachment.Path))
		return
	}

	log.Error(msg.GetMessage("attachment.error.file-removal-failed", attachment.Path, err.Error()),
		zap.String("path", attachment.Path), zap.Error(err))

	cleanup := &entity.FileCleanup{
		ID:        uuid.NewString(),
		Path:      attachment.Path,
		LastError: err.Error(),
	}
	if recordErr := m.cleanups.Create(ctx, cleanup); recordErr != nil {
		log.Error("Failed to record pending file cleanup", zap.String("path", attachment.Path), zap.Error(recordErr))
	}
}

func (m *manager) RemoveAll(ctx context.Context, attachments []entity.Attachment) {
	for _, attachment := range attachments {
		m.Remove(ctx, attachment)
	}
}

// uniqueFilename derives a collision-resistant on-disk name from the client filename.
func uniqueFilename(original string) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	ext := strings.ToLower(filepath.Ext(base))
	if ext == "." || len(ext) > 16 || unsafeFilenameChars.MatchString(ext[min(1, len(ext)):]) {
		ext = ""
	}

	name := strings.TrimSuffix(base, filepath.Ext(base))
	name = strings.Trim(unsafeFilenameChars.ReplaceAllString(name, "-"), "-.")
	if len(name) > maxBaseNameLength {
		name = name[:maxBaseNameLength]
	}
	if name == "" {
		name = "file"
	}
	return fmt.Sprintf("%s-%s%s", name, uuid.NewString(), ext)
}
