package model

import "net/http"

// Response is the envelope every endpoint answers with.
type Response struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
	Stack      string `json:"stack,omitempty"`
}

// NewResponse builds an envelope; success is derived from the status code.
func NewResponse(statusCode int, message string, data any) Response {
	if data == nil {
		data = map[string]any{}
	}
	return Response{
		Success:    statusCode < http.StatusBadRequest,
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
	}
}

// NewErrorResponse builds a failure envelope with empty data.
func NewErrorResponse(statusCode int, message string) Response {
	return NewResponse(statusCode, message, nil)
}
