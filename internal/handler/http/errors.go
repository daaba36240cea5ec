// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"
)

// Sentinel errors used by the authorization gate when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned when the incoming request does
	// not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the header is not
	// exactly "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrInvalidJSON is reported for request bodies that are not valid JSON.
	ErrInvalidJSON = errors.New("invalid JSON was passed")
)

// AuthErrorKind classifies a rejection by the authorization gate.
type AuthErrorKind int

const (
	// MissingAuth means no Authorization header was sent.
	MissingAuth AuthErrorKind = iota
	// MalformedAuth means the header is not "Bearer <token>".
	MalformedAuth
	// InvalidToken means the bearer token failed verification.
	InvalidToken
)

// AuthError is the error produced by the authorization gate.
// Reason is set for [InvalidToken] only.
type AuthError struct {
	Kind   AuthErrorKind
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return e.title()
	}
	return e.title() + ": " + e.Err.Error()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Status is 401 for a missing or malformed header and 403 for a token that
// failed verification.
func (e *AuthError) Status() int {
	if e.Kind == InvalidToken {
		return http.StatusForbidden
	}
	return http.StatusUnauthorized
}

func (e *AuthError) title() string {
	switch e.Kind {
	case MissingAuth:
		return "Authorization required"
	case MalformedAuth:
		return "Invalid token format"
	default:
		return "Invalid token"
	}
}

func (e *AuthError) details() string {
	switch e.Kind {
	case MissingAuth:
		return "A Bearer token must be provided"
	case MalformedAuth:
		return "Expected format: Bearer <token>"
	default:
		return e.Reason
	}
}
