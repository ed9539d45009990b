package db

import (
	"context"

	"todo-api/internal/domain/entity"
)

// UserGateway persists users. Lookups return nil, nil when nothing matches.
type UserGateway interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
}
