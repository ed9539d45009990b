package link

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-api/internal/domain/apperror"
	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/model"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		dto       model.CreateLinkDTO
		wantTitle string
		wantKind  apperror.Kind
	}{
		{name: "title defaults to host", dto: model.CreateLinkDTO{URL: "https://go.dev/doc/effective_go"}, wantTitle: "go.dev"},
		{name: "host without port", dto: model.CreateLinkDTO{URL: "http://localhost:8080/x"}, wantTitle: "localhost"},
		{name: "explicit title kept", dto: model.CreateLinkDTO{Title: "  Docs ", URL: "https://go.dev"}, wantTitle: "Docs"},
		{name: "missing url", dto: model.CreateLinkDTO{Title: "x"}, wantKind: apperror.KindValidation},
		{name: "relative url", dto: model.CreateLinkDTO{URL: "/just/a/path"}, wantKind: apperror.KindValidation},
		{name: "no scheme", dto: model.CreateLinkDTO{URL: "go.dev"}, wantKind: apperror.KindValidation},
		{name: "unsupported scheme", dto: model.CreateLinkDTO{URL: "javascript:alert(1)"}, wantKind: apperror.KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.dto)
			if tt.wantKind != "" {
				assert.True(t, apperror.Is(err, tt.wantKind), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, got.Title)
			assert.NotEmpty(t, got.ID)
		})
	}
}

func TestRemove(t *testing.T) {
	links := []entity.Link{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	remaining, err := Remove(links, "b")
	require.NoError(t, err)
	assert.Equal(t, []entity.Link{{ID: "a"}, {ID: "c"}}, remaining)
	assert.Len(t, links, 3)

	_, err = Remove(remaining, "b")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}
