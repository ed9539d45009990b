// Package link builds and removes the URL references embedded in todos and subtasks.
package link

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"todo-api/internal/domain/apperror"
	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/model"
	"todo-api/pkg/msg"
)

// New validates the dto and returns the link to append.
func New(dto model.CreateLinkDTO) (*entity.Link, error) {
	rawURL := strings.TrimSpace(dto.URL)
	if rawURL == "" {
		return nil, apperror.Validation(msg.GetMessage("link.error.empty-url"))
	}

	parsed, err := url.ParseRequestURI(rawURL)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, apperror.Validation(msg.GetMessage("link.error.invalid-url", rawURL))
	}

	title := strings.TrimSpace(dto.Title)
	if title == "" {
		title = parsed.Hostname()
	}

	return &entity.Link{
		ID:          uuid.NewString(),
		Title:       title,
		URL:         rawURL,
		Description: strings.TrimSpace(dto.Description),
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// Remove returns links without the one identified by linkID.
func Remove(links []entity.Link, linkID string) ([]entity.Link, error) {
	for i := range links {
		if links[i].ID == linkID {
			remaining := make([]entity.Link, 0, len(links)-1)
			remaining = append(remaining, links[:i]...)
			return append(remaining, links[i+1:]...), nil
		}
	}
	return nil, apperror.NotFound(msg.GetMessage("link.error.not-found"))
}
