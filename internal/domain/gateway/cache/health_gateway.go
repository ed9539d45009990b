package cache

import (
	"context"

	"todo-api/internal/domain/model"
)

type HealthGateway interface {
	Health(ctx context.Context) model.ComponentHealthStatus
}
