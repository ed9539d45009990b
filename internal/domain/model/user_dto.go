package model

import "todo-api/internal/domain/entity"

type RegisterDTO struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Gender   string `json:"gender" validate:"omitempty,oneof=male female other"`
}

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileDTO struct {
	Name     *string `json:"name" validate:"omitnil,min=1,max=100"`
	Gender   *string `json:"gender" validate:"omitempty,oneof=male female other"`
	Password *string `json:"password" validate:"omitempty,min=8,max=72"`
}

// AuthResult is returned by register and login.
type AuthResult struct {
	User  *entity.User `json:"user"`
	Token string       `json:"token"`
}
