package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"todo-api/internal/domain/apperror"
	"todo-api/internal/domain/model"
	"todo-api/pkg/log"
	"todo-api/pkg/msg"
)

// NewHTTPErrorHandler renders every error as the response envelope. Outside production
// internal failures carry a stack trace.
func NewHTTPErrorHandler(env string) echo.HTTPErrorHandler {
	exposeStack := env != "production"

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		response := toResponse(err)
		// Uploads over the multipart body limit are an invalid file, not a transport failure.
		if response.StatusCode == http.StatusRequestEntityTooLarge && IsMultipart(c) {
			response = model.NewErrorResponse(http.StatusBadRequest, msg.GetMessage("request.error.upload-too-large"))
		}
		if response.StatusCode >= http.StatusInternalServerError {
			log.Error("Request failed with internal error",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				zap.Error(err),
			)
			if exposeStack {
				response.Stack = err.Error() + "\n" + string(debug.Stack())
			}
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(response.StatusCode)
		} else {
			writeErr = c.JSON(response.StatusCode, response)
		}
		if writeErr != nil {
			log.Error("Failed to write error response", zap.Error(writeErr))
		}
	}
}

// IsMultipart reports whether the request carries a multipart form body.
func IsMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}

func toResponse(err error) model.Response {
	if appErr, ok := apperror.As(err); ok {
		return model.NewErrorResponse(appErr.StatusCode(), appErr.Message)
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return model.NewErrorResponse(httpErr.Code, httpErrorMessage(httpErr))
	}

	return model.NewErrorResponse(http.StatusInternalServerError, msg.GetMessage("response.internal"))
}

func httpErrorMessage(httpErr *echo.HTTPError) string {
	switch httpErr.Code {
	case http.StatusNotFound:
		return msg.GetMessage("response.route-not-found")
	case http.StatusRequestEntityTooLarge:
		return msg.GetMessage("response.payload-too-large")
	case http.StatusBadRequest:
		return msg.GetMessage("response.bad-request")
	case http.StatusInternalServerError:
		return msg.GetMessage("response.internal")
	}
	if message, ok := httpErr.Message.(string); ok && message != "" {
		return message
	}
	return http.StatusText(httpErr.Code)
}
