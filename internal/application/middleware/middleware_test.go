package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-api/internal/domain/apperror"
	"todo-api/internal/domain/model"
	"todo-api/pkg/redis"
)

type stubAuthenticator struct {
	tokens map[string]model.Identity
	seen   []string
}

func (s *stubAuthenticator) Authenticate(_ context.Context, token string) (*model.Identity, error) {
	s.seen = append(s.seen, token)
	identity, ok := s.tokens[token]
	if !ok {
		return nil, apperror.Unauthorized("bad token")
	}
	return &identity, nil
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler("development")
	return e
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) model.Response {
	t.Helper()
	var response model.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	return response
}

func TestSession(t *testing.T) {
	authenticator := &stubAuthenticator{tokens: map[string]model.Identity{
		"good": {UserID: "u1", Email: "a@b.com", Role: "user"},
	}}
	e := newEcho()
	e.GET("/me", func(c echo.Context) error {
		identity, err := IdentityFrom(c)
		if err != nil {
			return err
		}
		return c.String(http.StatusOK, identity.UserID)
	}, Session(authenticator, "token"))

	tests := []struct {
		name       string
		prepare    func(*http.Request)
		wantStatus int
		wantBody   string
	}{
		{
			name:       "cookie",
			prepare:    func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "token", Value: "good"}) },
			wantStatus: http.StatusOK,
			wantBody:   "u1",
		},
		{
			name:       "bearer header",
			prepare:    func(r *http.Request) { r.Header.Set(echo.HeaderAuthorization, "Bearer good") },
			wantStatus: http.StatusOK,
			wantBody:   "u1",
		},
		{
			name:       "missing token",
			prepare:    func(*http.Request) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			prepare:    func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "token", Value: "forged"}) },
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			tt.prepare(req)
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
				return
			}
			response := decode(t, rec)
			assert.False(t, response.Success)
			assert.Equal(t, tt.wantStatus, response.StatusCode)
		})
	}
}

func TestIdentityFrom_WithoutSession(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, err := IdentityFrom(c)

	assert.True(t, apperror.Is(err, apperror.KindUnauthorized))
}

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantStack  bool
	}{
		{"validation", apperror.Validation("content is required"), http.StatusBadRequest, false},
		{"not found", apperror.NotFound("Todo not found"), http.StatusNotFound, false},
		{"conflict", apperror.Conflict("taken"), http.StatusConflict, false},
		{"echo body limit", echo.ErrStatusRequestEntityTooLarge, http.StatusRequestEntityTooLarge, false},
		{"unknown error", errors.New("disk on fire"), http.StatusInternalServerError, true},
		{"wrapped internal", apperror.Internal("Internal server error", errors.New("db down")), http.StatusInternalServerError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEcho()
			e.GET("/", func(echo.Context) error { return tt.err })
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			response := decode(t, rec)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantStatus, response.StatusCode)
			assert.False(t, response.Success)
			assert.Equal(t, map[string]any{}, response.Data)
			assert.Equal(t, tt.wantStack, response.Stack != "")
			assert.NotContains(t, response.Message, "disk on fire")
		})
	}
}

func TestHTTPErrorHandler_MultipartOverLimitIsValidation(t *testing.T) {
	e := newEcho()
	e.POST("/", func(echo.Context) error { return echo.ErrStatusRequestEntityTooLarge })
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("--x--"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEMultipartForm+"; boundary=x")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	response := decode(t, rec)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	assert.Equal(t, "Upload exceeds the allowed request size", response.Message)
}

func TestHTTPErrorHandler_UnknownRoute(t *testing.T) {
	e := newEcho()
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	response := decode(t, rec)
	assert.Equal(t, http.StatusNotFound, response.StatusCode)
	assert.Equal(t, "Route not found", response.Message)
}

func TestHTTPErrorHandler_ProductionHidesStack(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler("production")
	e.GET("/", func(echo.Context) error { return errors.New("boom") })
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	response := decode(t, rec)
	assert.Equal(t, http.StatusInternalServerError, response.StatusCode)
	assert.Empty(t, response.Stack)
}

func TestRateLimit(t *testing.T) {
	server := miniredis.RunT(t)
	port, err := strconv.Atoi(server.Port())
	require.NoError(t, err)
	client, err := redis.NewClient(redis.NewRedisConfig().WithHost(server.Host()).WithPort(port))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	limiter := redis.NewRateLimiter(client, redis.NewRateLimiterOptions().WithMaxRequests(2).WithWindow(time.Minute))
	e := newEcho()
	e.POST("/login", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, RateLimit(limiter, "auth"))

	statuses := make([]int, 0, 3)
	for range 3 {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
		statuses = append(statuses, rec.Code)
		if rec.Code == http.StatusTooManyRequests {
			assert.NotEmpty(t, rec.Header().Get("Retry-After"))
		}
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, statuses)
}

func TestRateLimit_NilLimiterIsNoop(t *testing.T) {
	e := newEcho()
	e.POST("/login", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, RateLimit(nil, "auth"))

	for range 20 {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
}
