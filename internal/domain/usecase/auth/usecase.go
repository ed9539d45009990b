package auth

import (
	"context"

	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/model"
)

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer mints and verifies session tokens.
type TokenIssuer interface {
	Issue(identity model.Identity) (string, error)
	Verify(token string) (*model.Identity, error)
}

type UseCase interface {
	Register(ctx context.Context, dto model.RegisterDTO) (*model.AuthResult, error)
	Login(ctx context.Context, dto model.LoginDTO) (*model.AuthResult, error)
	// Authenticate is the session gate: it turns a raw token into the caller's identity.
	Authenticate(ctx context.Context, token string) (*model.Identity, error)
	CurrentUser(ctx context.Context, identity model.Identity) (*entity.User, error)
	UpdateProfile(ctx context.Context, identity model.Identity, dto model.UpdateProfileDTO) (*entity.User, error)
}
