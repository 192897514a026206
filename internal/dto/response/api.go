package response

import (
	"time"
)

// Meta carries pagination details for list endpoints.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NewMeta computes pagination metadata from a page request and total count.
func NewMeta(page, limit int, total int64) *Meta {
	if limit < 1 {
		limit = 10
	}
	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}
	return &Meta{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

// ApiResponse is the generic envelope every endpoint responds with.
type ApiResponse[T any] struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message,omitempty"`
	Data      T         `json:"data,omitempty"`
	Errors    any       `json:"errors,omitempty"`
	Meta      *Meta     `json:"meta,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewSuccess creates a successful response with a message.
func NewSuccess[T any](data T, message string) ApiResponse[T] {
	return ApiResponse[T]{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewSuccessWithData creates a successful response with just data.
func NewSuccessWithData[T any](data T) ApiResponse[T] {
	return ApiResponse[T]{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewPaged creates a successful list response carrying pagination meta.
func NewPaged[T any](items []T, page, limit int, total int64) ApiResponse[[]T] {
	return ApiResponse[[]T]{
		Success:   true,
		Data:      items,
		Meta:      NewMeta(page, limit, total),
		Timestamp: time.Now(),
	}
}

// NewError creates an error response.
func NewError[T any](message string) ApiResponse[T] {
	return ApiResponse[T]{
		Success:   false,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewErrorWithDetails creates an error response with field-level details.
func NewErrorWithDetails[T any](message string, errors any) ApiResponse[T] {
	return ApiResponse[T]{
		Success:   false,
		Message:   message,
		Errors:    errors,
		Timestamp: time.Now(),
	}
}
