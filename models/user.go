package models

import "time"

// User represents an account entity used for authentication.
// The password hash never leaves the server: it is excluded from JSON and
// responses are built from [UserResponse].
type User struct {
	// UserID is the opaque unique identifier of the user (UUIDv7 string).
	UserID string `json:"id"`

	// Username is unique across all users.
	Username string `json:"username"`

	// Email is unique across all users and is the login identifier.
	Email string `json:"email"`

	// PasswordHash is the bcrypt digest of the user's password.
	// It MUST never be plaintext and MUST never be serialized.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Credentials is the ephemeral credential submission of a registration or
// login request. It exists only for the duration of a request.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginCredentials is the subset of [Credentials] accepted by login.
type LoginCredentials struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Session is the result of a successful login.
type Session struct {
	Token Token
	User  User
}
