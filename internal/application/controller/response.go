package controller

import (
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/labstack/echo/v4"

	"todo-api/internal/application/middleware"
	"todo-api/internal/domain/apperror"
	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/model"
	"todo-api/pkg/msg"
)

// attachmentField is the multipart field carrying an uploaded file.
const attachmentField = "attachment"

func respond(c echo.Context, status int, messageKey string, data any) error {
	return c.JSON(status, model.NewResponse(status, msg.GetMessage(messageKey), data))
}

func bind(c echo.Context, dto any) error {
	if err := c.Bind(dto); err != nil {
		return apperror.Validation(msg.GetMessage("request.error.invalid-body"))
	}
	return nil
}

// identity reads the caller resolved by the session middleware.
func identity(c echo.Context) (model.Identity, error) {
	return middleware.IdentityFrom(c)
}

// readUpload opens the multipart attachment; the caller closes the returned file.
func readUpload(c echo.Context) (model.FileUpload, io.Closer, error) {
	header, err := c.FormFile(attachmentField)
	if err != nil {
		return model.FileUpload{}, nil, apperror.Validation(msg.GetMessage("attachment.error.missing-file"))
	}
	file, err := header.Open()
	if err != nil {
		return model.FileUpload{}, nil, apperror.Internal(msg.GetMessage("response.internal"), err)
	}
	return model.FileUpload{
		OriginalName: header.Filename,
		Size:         header.Size,
		MimeType:     header.Header.Get(echo.HeaderContentType),
		Content:      file,
	}, file, nil
}

// inlineTypes are rendered by browsers without running scripts; everything else downloads.
var inlineTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

func contentDisposition(attachment *entity.Attachment) string {
	kind := "attachment"
	if inlineTypes[attachment.MimeType] {
		kind = "inline"
	}
	if disposition := mime.FormatMediaType(kind, map[string]string{"filename": attachment.OriginalName}); disposition != "" {
		return disposition
	}
	return kind
}

func streamAttachment(c echo.Context, attachment *entity.Attachment, content io.ReadCloser) error {
	defer content.Close()

	header := c.Response().Header()
	header.Set(echo.HeaderContentDisposition, contentDisposition(attachment))
	header.Set(echo.HeaderXContentTypeOptions, "nosniff")
	header.Set(echo.HeaderContentLength, fmt.Sprint(attachment.Size))
	return c.Stream(http.StatusOK, attachment.MimeType, content)
}
