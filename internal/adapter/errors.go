package adapter

import (
	"errors"
	"fmt"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
)

// APIError is a non-2xx response of the auth API.
type APIError struct {
	StatusCode int
	Title      string
	Details    string

	kind error
}

func (e *APIError) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("http %d: %s", e.StatusCode, e.Title)
	}
	return fmt.Sprintf("%s: %s", e.Title, e.Details)
}

func (e *APIError) Unwrap() error {
	return e.kind
}
