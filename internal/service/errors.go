package service

import (
	"errors"
	"fmt"
)

var (
	// ErrTokenCreationFailed wraps failures of signing a new token.
	ErrTokenCreationFailed = errors.New("token creation failed")

	// ErrVersionIsNotSpecified is returned by [NewHealthService] when the
	// application version is empty.
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// ValidationError reports request data that violates a business rule:
// missing fields or a password that is too short or too long.
type ValidationError struct {
	Title   string
	Details string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Title, e.Details)
}

// AuthenticationReason tells apart the two ways a login can fail. It is
// only ever logged; clients see the same message for both.
type AuthenticationReason int

const (
	ReasonUserNotFound AuthenticationReason = iota
	ReasonBadPassword
)

func (r AuthenticationReason) String() string {
	if r == ReasonBadPassword {
		return "bad password"
	}
	return "user not found"
}

// AuthenticationError is returned by Login when the credentials do not match
// a stored account.
type AuthenticationError struct {
	Reason AuthenticationReason
}

func (e *AuthenticationError) Error() string {
	return "invalid credentials"
}

// NotFoundError reports that the user behind a valid token no longer exists.
type NotFoundError struct {
	UserID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("user with ID %s does not exist", e.UserID)
}
