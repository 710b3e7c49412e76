package handler

import "taskapi/internal/schema"

// Response is the uniform JSON envelope every endpoint returns.
type Response struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    any                 `json:"data,omitempty"`
	Count   *int                `json:"count,omitempty"`
	Errors  []schema.FieldError `json:"errors,omitempty"`
	Error   string              `json:"error,omitempty"`
}
