package health

import (
	"context"

	"todo-api/internal/domain/gateway/cache"
	"todo-api/internal/domain/gateway/db"
	"todo-api/internal/domain/gateway/storage"
	"todo-api/internal/domain/model"
)

type healthUseCase struct {
	dbGateway      db.HealthDBGateway
	cacheGateway   cache.HealthGateway
	storageGateway storage.FileStorage
}

func NewHealthUseCase(dbGateway db.HealthDBGateway, cacheGateway cache.HealthGateway, storageGateway storage.FileStorage) UseCase {
	return &healthUseCase{
		dbGateway:      dbGateway,
		cacheGateway:   cacheGateway,
		storageGateway: storageGateway,
	}
}

func (useCase *healthUseCase) CheckHealth(ctx context.Context) model.HealthResponse {
	dbHealth := useCase.dbGateway.Health(ctx)
	cacheHealth := useCase.cacheGateway.Health(ctx)
	storageHealth := useCase.storageGateway.Health(ctx)

	// A disabled cache does not make the service unhealthy.
	overallStatus := model.StatusUp
	if dbHealth.Status != model.StatusUp ||
		storageHealth.Status != model.StatusUp ||
		(cacheHealth.Status != model.StatusUp && cacheHealth.Status != model.StatusDisabled) {
		overallStatus = model.StatusDown
	}

	return model.HealthResponse{
		Status:   overallStatus,
		Database: dbHealth,
		Cache:    cacheHealth,
		Storage:  storageHealth,
	}
}
