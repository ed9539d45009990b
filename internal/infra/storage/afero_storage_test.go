package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-api/internal/domain/gateway/storage"
	"todo-api/internal/domain/model"
)

func TestAferoStorage_CreateOpenRemove(t *testing.T) {
	ctx := context.Background()
	s := NewAferoStorage(afero.NewMemMapFs())

	written, err := s.Create(ctx, "attachments/report-1.pdf", strings.NewReader("%PDF-1.7"))
	require.NoError(t, err)
	assert.Equal(t, int64(8), written)

	reader, err := s.Open(ctx, "attachments/report-1.pdf")
	require.NoError(t, err)
	content, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.NoError(t, reader.Close())
	assert.Equal(t, "%PDF-1.7", string(content))

	require.NoError(t, s.Remove(ctx, "attachments/report-1.pdf"))
	assert.ErrorIs(t, s.Remove(ctx, "attachments/report-1.pdf"), storage.ErrNotExist)

	_, err = s.Open(ctx, "attachments/report-1.pdf")
	assert.ErrorIs(t, err, storage.ErrNotExist)
}

func TestAferoStorage_CreateNeverOverwrites(t *testing.T) {
	ctx := context.Background()
	s := NewAferoStorage(afero.NewMemMapFs())

	_, err := s.Create(ctx, "attachments/a.txt", strings.NewReader("first"))
	require.NoError(t, err)

	_, err = s.Create(ctx, "attachments/a.txt", strings.NewReader("second"))
	assert.ErrorIs(t, err, storage.ErrExist)

	reader, err := s.Open(ctx, "attachments/a.txt")
	require.NoError(t, err)
	defer reader.Close()
	content, _ := io.ReadAll(reader)
	assert.Equal(t, "first", string(content))
}

func TestNewLocalStorage(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, model.StatusUp, s.Health(context.Background()).Status)

	_, err = s.Create(context.Background(), "attachments/x.txt", strings.NewReader("x"))
	require.NoError(t, err)
}
