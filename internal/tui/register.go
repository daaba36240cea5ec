package tui

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-auth-service/internal/adapter"
	"github.com/MKhiriev/go-auth-service/models"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// RegisterModel creates a user on behalf of an already logged in session.
type RegisterModel struct {
	ctx    context.Context
	server adapter.ServerAdapter

	form form
}

func NewRegisterModel(ctx context.Context, server adapter.ServerAdapter) *RegisterModel {
	return &RegisterModel{
		ctx:    ctx,
		server: server,
		form: newForm(
			formField{label: "Username", limit: 64},
			formField{label: "Email", limit: 254},
			formField{label: "Password", limit: 72, password: true},
		),
	}
}

func (m *RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(RegisterResult); ok {
		m.form.submitting = false
		if result.Err != nil {
			m.form.errMsg = humanizeError(result.Err)
			return m, nil
		}
		m.form.reset()
		notice := Notice("User " + result.User.Username + " registered")
		return m, func() tea.Msg { return NavigateTo{Page: pageMenu, Payload: notice} }
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
			if m.server.Token() == "" {
				m.form.errMsg = "Registration requires a session: log in first"
				return m, nil
			}

			credentials := models.Credentials{
				Username: strings.TrimSpace(m.form.value(0)),
				Email:    strings.TrimSpace(m.form.value(1)),
				Password: m.form.value(2),
			}
			if credentials.Username == "" || credentials.Email == "" || credentials.Password == "" {
				m.form.errMsg = "All fields (username, email, password) are required"
				return m, nil
			}

			m.form.errMsg = ""
			m.form.submitting = true
			return m, m.cmdRegister(credentials)
		}
	}

	return m, m.form.updateInput(msg)
}

func (m *RegisterModel) View() string {
	return renderPage("REGISTER A USER", m.form.view("Register"), "esc: back │ tab: next field │ enter: submit")
}

func (m *RegisterModel) cmdRegister(credentials models.Credentials) tea.Cmd {
	ctx := m.ctx
	server := m.server

	return func() tea.Msg {
		user, err := server.Register(ctx, credentials)
		return RegisterResult{User: user, Err: err}
	}
}
