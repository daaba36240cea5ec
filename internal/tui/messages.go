package tui

import (
	"github.com/MKhiriev/go-auth-service/models"
	tea "github.com/charmbracelet/bubbletea"
)

// NavigateTo switches the active page. Payload, if set, is delivered to the
// new page right after its Init.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

// LoginResult is produced by the login form.
type LoginResult struct {
	Session models.LoginResponse
	Err     error
}

// RegisterResult is produced by the registration form.
type RegisterResult struct {
	User models.UserResponse
	Err  error
}

// ProfileResult carries the answer of GET /me.
type ProfileResult struct {
	User models.UserResponse
	Err  error
}

// Notice is a one-line status shown by the menu.
type Notice string

type copiedMsg struct {
	err error
}
