package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"todo-api/internal/domain/apperror"
	"todo-api/internal/domain/model"
	"todo-api/pkg/msg"
)

const identityKey = "identity"

// Authenticator resolves a raw session token into the caller's identity.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.Identity, error)
}

// Session rejects requests without a valid session and stores the caller's identity
// in the echo context. The token is read from the cookie first, then from a bearer header.
func Session(authenticator Authenticator, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := authenticator.Authenticate(c.Request().Context(), tokenFrom(c, cookieName))
			if err != nil {
				return err
			}
			c.Set(identityKey, *identity)
			return next(c)
		}
	}
}

// IdentityFrom returns the identity stored by Session.
func IdentityFrom(c echo.Context) (model.Identity, error) {
	identity, ok := c.Get(identityKey).(model.Identity)
	if !ok {
		return model.Identity{}, apperror.Unauthorized(msg.GetMessage("user.error.token-missing"))
	}
	return identity, nil
}

func tokenFrom(c echo.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if scheme, token, found := strings.Cut(header, " "); found && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return ""
}
