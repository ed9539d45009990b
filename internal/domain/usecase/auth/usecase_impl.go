package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"todo-api/internal/domain/apperror"
	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/gateway/db"
	"todo-api/internal/domain/model"
	"todo-api/internal/infra/security"
	"todo-api/pkg/log"
	"todo-api/pkg/msg"
	"todo-api/pkg/validation"
)

const avatarBaseURL = "https://avatar.iran.liara.run"

type authUseCase struct {
	users  db.UserGateway
	hasher PasswordHasher
	tokens TokenIssuer
}

func NewAuthUseCase(users db.UserGateway, hasher PasswordHasher, tokens TokenIssuer) UseCase {
	return &authUseCase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

func (uc *authUseCase) Register(ctx context.Context, dto model.RegisterDTO) (*model.AuthResult, error) {
	dto.Name = strings.TrimSpace(dto.Name)
	dto.Email = normalizeEmail(dto.Email)
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	existing, err := uc.users.FindByEmail(ctx, dto.Email)
	if err != nil {
		return nil, internal(err)
	}
	if existing != nil {
		return nil, apperror.Conflict(msg.GetMessage("user.error.email-taken", dto.Email))
	}

	hash, err := uc.hasher.Hash(dto.Password)
	if err != nil {
		return nil, internal(err)
	}

	user := &entity.User{
		ID:           uuid.NewString(),
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: hash,
		Role:         entity.RoleUser,
		Gender:       dto.Gender,
		Avatar:       defaultAvatar(dto.Name, dto.Gender),
	}
	if err := uc.users.Create(ctx, user); err != nil {
		if errors.Is(err, db.ErrDuplicateKey) {
			return nil, apperror.Conflict(msg.GetMessage("user.error.email-taken", dto.Email))
		}
		return nil, internal(err)
	}

	log.Info("User registered", zap.String("user_id", user.ID))
	return uc.issue(user)
}

func (uc *authUseCase) Login(ctx context.Context, dto model.LoginDTO) (*model.AuthResult, error) {
	dto.Email = normalizeEmail(dto.Email)
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	user, err := uc.users.FindByEmail(ctx, dto.Email)
	if err != nil {
		return nil, internal(err)
	}
	if user == nil {
		return nil, apperror.NotFound(msg.GetMessage("user.error.not-found"))
	}

	if err := uc.hasher.Compare(user.PasswordHash, dto.Password); err != nil {
		if errors.Is(err, security.ErrPasswordMismatch) {
			return nil, apperror.Unauthorized(msg.GetMessage("user.error.wrong-password"))
		}
		return nil, internal(err)
	}

	return uc.issue(user)
}

func (uc *authUseCase) Authenticate(ctx context.Context, token string) (*model.Identity, error) {
	if token == "" {
		return nil, apperror.Unauthorized(msg.GetMessage("user.error.token-missing"))
	}

	claims, err := uc.tokens.Verify(token)
	if err != nil {
		return nil, apperror.Unauthorized(msg.GetMessage("user.error.token-invalid"))
	}

	user, err := uc.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, internal(err)
	}
	if user == nil {
		return nil, apperror.Unauthorized(msg.GetMessage("user.error.token-user-missing"))
	}

	return &model.Identity{UserID: user.ID, Email: user.Email, Role: user.Role}, nil
}

func (uc *authUseCase) CurrentUser(ctx context.Context, identity model.Identity) (*entity.User, error) {
	user, err := uc.users.FindByID(ctx, identity.UserID)
	if err != nil {
		return nil, internal(err)
	}
	if user == nil {
		return nil, apperror.NotFound(msg.GetMessage("user.error.not-found"))
	}
	return user, nil
}

func (uc *authUseCase) UpdateProfile(ctx context.Context, identity model.Identity, dto model.UpdateProfileDTO) (*entity.User, error) {
	if dto.Name != nil {
		trimmed := strings.TrimSpace(*dto.Name)
		if trimmed == "" {
			return nil, apperror.Validation(msg.GetMessage("validation.blank", "name"))
		}
		dto.Name = &trimmed
	}
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	user, err := uc.CurrentUser(ctx, identity)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		user.Name = *dto.Name
	}
	if dto.Gender != nil {
		user.Gender = *dto.Gender
	}
	if dto.Password != nil {
		hash, err := uc.hasher.Hash(*dto.Password)
		if err != nil {
			return nil, internal(err)
		}
		user.PasswordHash = hash
	}

	if err := uc.users.Update(ctx, user); err != nil {
		return nil, internal(err)
	}
	return user, nil
}

func (uc *authUseCase) issue(user *entity.User) (*model.AuthResult, error) {
	token, err := uc.tokens.Issue(model.Identity{UserID: user.ID, Email: user.Email, Role: user.Role})
	if err != nil {
		return nil, internal(fmt.Errorf("issuing token: %w", err))
	}
	return &model.AuthResult{User: user, Token: token}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func defaultAvatar(name string, gender string) string {
	username := url.QueryEscape(name)
	switch gender {
	case "male":
		return avatarBaseURL + "/public/boy?username=" + username
	case "female":
		return avatarBaseURL + "/public/girl?username=" + username
	default:
		return avatarBaseURL + "/username?username=" + username
	}
}

func internal(err error) error {
	return apperror.Internal(msg.GetMessage("response.internal"), err)
}
