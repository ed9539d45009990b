package model

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResponse_SuccessDerivedFromStatus(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{http.StatusOK, true},
		{http.StatusCreated, true},
		{http.StatusFound, true},
		{http.StatusBadRequest, false},
		{http.StatusNotFound, false},
		{http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, NewResponse(tt.status, "msg", nil).Success)
		})
	}
}

func TestNewErrorResponse_EmptyDataObject(t *testing.T) {
	body, err := json.Marshal(NewErrorResponse(http.StatusNotFound, "Todo not found"))
	require.NoError(t, err)

	assert.JSONEq(t, `{"success":false,"statusCode":404,"message":"Todo not found","data":{}}`, string(body))
}
