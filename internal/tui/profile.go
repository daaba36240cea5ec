package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-auth-service/internal/adapter"
	"github.com/MKhiriev/go-auth-service/models"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

func copyToClipboard(text string) error {
	return clipboard.WriteAll(text)
}

// ProfileModel shows the user behind the current token.
type ProfileModel struct {
	ctx    context.Context
	server adapter.ServerAdapter
	copyFn func(string) error

	user    *models.UserResponse
	loading bool
	errMsg  string
	status  string
}

func NewProfileModel(ctx context.Context, server adapter.ServerAdapter, copyFn func(string) error) *ProfileModel {
	return &ProfileModel{ctx: ctx, server: server, copyFn: copyFn}
}

// Init fetches the profile each time the page is opened.
func (m *ProfileModel) Init() tea.Cmd {
	m.status = ""
	if m.server.Token() == "" {
		m.user = nil
		m.loading = false
		m.errMsg = "Not logged in"
		return nil
	}
	m.loading = true
	m.errMsg = ""
	return m.cmdFetch()
}

func (m *ProfileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ProfileResult:
		m.loading = false
		if msg.Err != nil {
			m.user = nil
			m.errMsg = humanizeError(msg.Err)
			return m, nil
		}
		user := msg.User
		m.user = &user
		m.errMsg = ""
		return m, nil
	case copiedMsg:
		if msg.err != nil {
			m.errMsg = "copy failed: " + msg.err.Error()
		} else {
			m.status = "token copied to clipboard"
		}
		return m, nil
	case tea.KeyMsg:
		switch {
		case matches(msg, keys.esc):
			return m, func() tea.Msg { return NavigateTo{Page: pageMenu} }
		case matches(msg, keys.refresh):
			return m, m.Init()
		case matches(msg, keys.copy):
			token := m.server.Token()
			if token == "" {
				return m, nil
			}
			copyFn := m.copyFn
			return m, func() tea.Msg { return copiedMsg{err: copyFn(token)} }
		}
	}

	return m, nil
}

func (m *ProfileModel) View() string {
	var b strings.Builder

	switch {
	case m.loading:
		b.WriteString("Loading...")
	case m.user != nil:
		b.WriteString(fmt.Sprintf("ID       │ %s\n", m.user.ID))
		b.WriteString(fmt.Sprintf("Username │ %s\n", m.user.Username))
		b.WriteString(fmt.Sprintf("Email    │ %s\n", m.user.Email))
		b.WriteString(fmt.Sprintf("Token    │ %s", fitText(m.server.Token(), 40)))
	}

	if m.status != "" {
		b.WriteString("\n\n")
		b.WriteString(renderSuccess(m.status))
	}
	if m.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(renderError(m.errMsg))
	}

	return renderPage("WHO AM I", b.String(), "esc: back │ r: refresh │ c: copy token")
}

func (m *ProfileModel) cmdFetch() tea.Cmd {
	ctx := m.ctx
	server := m.server

	return func() tea.Msg {
		user, err := server.Me(ctx)
		return ProfileResult{User: user, Err: err}
	}
}
