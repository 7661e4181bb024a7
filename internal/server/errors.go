// Package server provides the HTTP REST API for the screening engine.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/screening-agent/internal/conversation"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnauthorized indicates a missing or invalid admin token
type ErrUnauthorized struct{}

func (e *ErrUnauthorized) Error() string {
	return "missing or invalid admin token"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var notFound *conversation.NotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound
	}

	switch err.(type) {
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
