package handler

import "github.com/storefront/backend/internal/interfaces/http/dto"

// Envelope shapes used only by the swag annotations. The handlers write dto.Response.

// APIResponse is the envelope of a single-record response
type APIResponse[T any] struct {
	Success bool `json:"success" example:"true"`
	Data    T    `json:"data"`
}

// ListResponse is the envelope of a paged list; meta describes the whole result set
type ListResponse[T any] struct {
	Success bool      `json:"success" example:"true"`
	Data    []T       `json:"data"`
	Meta    *dto.Meta `json:"meta"`
}

// ErrorResponse is the envelope of every 4xx and 5xx answer
type ErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Error   *dto.ErrorInfo `json:"error"`
}
