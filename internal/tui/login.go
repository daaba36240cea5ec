// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-auth-service/internal/adapter"
	"github.com/MKhiriev/go-auth-service/models"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// LoginModel is the Bubble Tea model for the login screen. It renders the
// email and password inputs and dispatches an async login command on
// submission. A successful login opens the profile page.
type LoginModel struct {
	ctx    context.Context
	server adapter.ServerAdapter

	form form
}

func NewLoginModel(ctx context.Context, server adapter.ServerAdapter) *LoginModel {
	return &LoginModel{
		ctx:    ctx,
		server: server,
		form: newForm(
			formField{label: "Email", limit: 254},
			formField{label: "Password", limit: 256, password: true},
		),
	}
}

func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles:
//   - [LoginResult]: on success opens the profile, otherwise shows the error.
//   - esc: back to the menu.
//   - tab / shift+tab: focus movement.
//   - enter: checks that both fields are set and logs in.
func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(LoginResult); ok {
		m.form.submitting = false
		if result.Err != nil {
			m.form.errMsg = humanizeError(result.Err)
			return m, nil
		}
		m.form.reset()
		return m, func() tea.Msg { return NavigateTo{Page: pageProfile} }
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case matches(keyMsg, keys.esc):
			m.form.reset()
			return m, func() tea.Msg { return NavigateTo{Page: pageMenu} }
		case matches(keyMsg, keys.tab):
			m.form.focusNext()
			return m, nil
		case matches(keyMsg, keys.backtab):
			m.form.focusPrev()
			return m, nil
		case matches(keyMsg, keys.enter):
			if m.form.submitting {
				return m, nil
			}

			credentials := models.LoginCredentials{
				Email:    strings.TrimSpace(m.form.value(0)),
				Password: m.form.value(1),
			}
			if credentials.Email == "" || credentials.Password == "" {
				m.form.errMsg = "Email and password are required"
				return m, nil
			}

			m.form.errMsg = ""
			m.form.submitting = true
			return m, m.cmdLogin(credentials)
		}
	}

	return m, m.form.updateInput(msg)
}

func (m *LoginModel) View() string {
	return renderPage("LOG IN", m.form.view("Log in"), "esc: back │ tab: next field │ enter: submit")
}

func (m *LoginModel) cmdLogin(credentials models.LoginCredentials) tea.Cmd {
	ctx := m.ctx
	server := m.server

	return func() tea.Msg {
		session, err := server.Login(ctx, credentials)
		return LoginResult{Session: session, Err: err}
	}
}
