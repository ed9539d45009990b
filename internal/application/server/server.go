package server

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"todo-api/internal/application/middleware"
	"todo-api/pkg/resource"
	"todo-api/pkg/validation"
)

// Config holds the HTTP settings shared by the binary and the controller tests.
type Config struct {
	Env         string
	ContextPath string
	// BodyLimit bounds every non-multipart body.
	BodyLimit string
	// UploadBodyLimit bounds multipart bodies. It sits above the attachment size limit so
	// oversized files reach the attachment validation.
	UploadBodyLimit string
}

// NewConfig reads the server settings from application properties.
func NewConfig() Config {
	return Config{
		Env:             resource.GetString("app.env"),
		ContextPath:     resource.GetString("app.server.context-path"),
		BodyLimit:       resource.GetString("app.server.body-limit"),
		UploadBodyLimit: resource.GetString("app.server.upload-body-limit"),
	}
}

// New builds the echo instance with the error handler, validator and middleware chain,
// and returns it with the API group mounted on the context path.
func New(config Config) (*echo.Echo, *echo.Group) {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.NewHTTPErrorHandler(config.Env)
	e.Validator = validation.EchoValidator{}

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	middleware.SetupRequestLogger(e)
	e.Use(echomw.BodyLimitWithConfig(echomw.BodyLimitConfig{
		Skipper: middleware.IsMultipart,
		Limit:   config.BodyLimit,
	}))
	e.Use(echomw.BodyLimitWithConfig(echomw.BodyLimitConfig{
		Skipper: func(c echo.Context) bool { return !middleware.IsMultipart(c) },
		Limit:   config.UploadBodyLimit,
	}))

	return e, e.Group(config.ContextPath)
}
