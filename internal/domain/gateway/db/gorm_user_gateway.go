package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"todo-api/internal/domain/entity"
)

// ErrDuplicateKey is returned when a unique constraint rejects a write.
var ErrDuplicateKey = errors.New("duplicate key")

type GormUserGateway struct {
	DB *gorm.DB
}

var _ UserGateway = (*GormUserGateway)(nil)

func NewGormUserGateway(db *gorm.DB) *GormUserGateway {
	return &GormUserGateway{DB: db}
}

func (gateway *GormUserGateway) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	err := gateway.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding user %s: %w", id, err)
	}
	return &user, nil
}

func (gateway *GormUserGateway) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := gateway.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding user by email: %w", err)
	}
	return &user, nil
}

func (gateway *GormUserGateway) Create(ctx context.Context, user *entity.User) error {
	err := gateway.DB.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateKey
	}
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

func (gateway *GormUserGateway) Update(ctx context.Context, user *entity.User) error {
	err := gateway.DB.WithContext(ctx).
		Model(user).
		Select("name", "gender", "avatar", "password_hash", "updated_at").
		Updates(user).Error
	if err != nil {
		return fmt.Errorf("updating user %s: %w", user.ID, err)
	}
	return nil
}
