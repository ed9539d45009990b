package db

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-api/internal/domain/entity"
	"todo-api/internal/infra/database"
)

func TestGormFileCleanupGateway_Lifecycle(t *testing.T) {
	ctx := context.Background()
	gateway := NewGormFileCleanupGateway(database.OpenTest(t))

	cleanup := &entity.FileCleanup{ID: uuid.NewString(), Path: "attachments/a.png", LastError: "permission denied"}
	require.NoError(t, gateway.Create(ctx, cleanup))

	pending, err := gateway.FindPending(ctx, 2, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, 0, pending[0].Attempts)

	require.NoError(t, gateway.MarkFailed(ctx, cleanup.ID, "still locked"))
	require.NoError(t, gateway.MarkFailed(ctx, cleanup.ID, "still locked"))

	pending, err = gateway.FindPending(ctx, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)

	exhausted, err := gateway.DeleteExhausted(ctx, 2)
	require.NoError(t, err)
	require.Len(t, exhausted, 1)
	assert.Equal(t, "still locked", exhausted[0].LastError)

	pending, err = gateway.FindPending(ctx, 100, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
