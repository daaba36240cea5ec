package models

// UserResponse is the public projection of a [User].
// It intentionally has no password field.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// NewUserResponse builds the public projection of user.
func NewUserResponse(user User) UserResponse {
	return UserResponse{
		ID:       user.UserID,
		Username: user.Username,
		Email:    user.Email,
	}
}

// UserEnvelope is returned by POST /register and GET /me.
type UserEnvelope struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
}

// LoginResponse is returned by POST /login.
type LoginResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	// Error is a short category string, e.g. "Validation failed".
	Error string `json:"error"`

	// Details is a human-readable explanation.
	Details string `json:"details"`
}
