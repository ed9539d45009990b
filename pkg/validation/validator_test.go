package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-api/internal/domain/apperror"
	"todo-api/internal/domain/model"
)

func TestStruct_RegisterDTO(t *testing.T) {
	tests := []struct {
		name    string
		dto     model.RegisterDTO
		wantMsg string
	}{
		{
			name:    "missing name",
			dto:     model.RegisterDTO{Email: "a@b.io", Password: "password1"},
			wantMsg: "name is required",
		},
		{
			name:    "malformed email",
			dto:     model.RegisterDTO{Name: "Ana", Email: "not-an-email", Password: "password1"},
			wantMsg: "email must be a valid email address",
		},
		{
			name:    "short password",
			dto:     model.RegisterDTO{Name: "Ana", Email: "a@b.io", Password: "short"},
			wantMsg: "password must be at least 8 characters long",
		},
		{
			name:    "unknown gender",
			dto:     model.RegisterDTO{Name: "Ana", Email: "a@b.io", Password: "password1", Gender: "robot"},
			wantMsg: "gender must be one of: male female other",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.dto)
			require.Error(t, err)

			appErr, ok := apperror.As(err)
			require.True(t, ok)
			assert.Equal(t, apperror.KindValidation, appErr.Kind)
			assert.Equal(t, tt.wantMsg, appErr.Message)
		})
	}
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(model.RegisterDTO{Name: "Ana", Email: "ana@example.com", Password: "password1"}))

	short := "abc"
	assert.Error(t, Struct(model.UpdateProfileDTO{Password: &short}))
	assert.NoError(t, Struct(model.UpdateProfileDTO{}))

	empty := ""
	assert.Error(t, Struct(model.UpdateProfileDTO{Name: &empty}))
}

func TestStruct_UnknownTagUsesGenericMessage(t *testing.T) {
	type profileLinks struct {
		Website string `json:"website" validate:"url"`
	}

	err := Struct(profileLinks{Website: "not a url"})

	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, "website is invalid", appErr.Message)
}
