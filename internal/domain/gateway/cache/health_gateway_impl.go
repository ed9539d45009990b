package cache

import (
	"context"

	"todo-api/internal/domain/model"
	"todo-api/pkg/redis"
)

type RedisHealthGateway struct {
	checker *redis.HealthChecker
}

var _ HealthGateway = (*RedisHealthGateway)(nil)

func NewRedisHealthGateway(client *redis.Client) *RedisHealthGateway {
	return &RedisHealthGateway{checker: redis.NewHealthChecker(client)}
}

func (gateway *RedisHealthGateway) Health(ctx context.Context) model.ComponentHealthStatus {
	check := gateway.checker.HealthCheck(ctx)

	status := model.StatusDown
	if check.Status == redis.StatusUp {
		status = model.StatusUp
	}
	return model.ComponentHealthStatus{
		Status:  status,
		Details: check.Details,
	}
}

// DisabledHealthGateway reports a cache that was turned off in configuration.
type DisabledHealthGateway struct{}

var _ HealthGateway = DisabledHealthGateway{}

func (DisabledHealthGateway) Health(context.Context) model.ComponentHealthStatus {
	return model.ComponentHealthStatus{
		Status:  model.StatusDisabled,
		Details: map[string]string{"message": "redis disabled by configuration"},
	}
}
