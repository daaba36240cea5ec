// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client side of the auth API.
//
// [ServerAdapter] hides the transport from the terminal client. The HTTP
// implementation ([NewHTTPServerAdapter]) maps non-2xx responses to the
// sentinel errors in errors.go, so callers can use [errors.Is] (e.g.
// [ErrConflict] for 409, [ErrUnauthorized] for 401), and to [*APIError] for
// the server supplied message.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-auth-service/models"
)

// ServerAdapter talks to the auth API on behalf of one user session.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the stored bearer token, or "".
	Token() string

	// Register creates a user. The server requires a bearer token for it, so
	// a token must be set first.
	Register(ctx context.Context, credentials models.Credentials) (models.UserResponse, error)

	// Login authenticates and stores the returned token via SetToken.
	Login(ctx context.Context, credentials models.LoginCredentials) (models.LoginResponse, error)

	// Me returns the user the stored token belongs to.
	Me(ctx context.Context) (models.UserResponse, error)
}
