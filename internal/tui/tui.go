// Package tui is the interactive terminal front end of the auth client.
//
// Pages are independent Bubble Tea models; [RootModel] routes between them
// on [NavigateTo] messages.
package tui

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-auth-service/internal/adapter"
	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/MKhiriev/go-auth-service/models"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUserQuit = errors.New("user quit the program")

const (
	pageMenu     = "menu"
	pageLogin    = "login"
	pageRegister = "register"
	pageProfile  = "profile"
)

type TUI struct {
	server    adapter.ServerAdapter
	buildInfo models.BuildInfo
	logger    *logger.Logger
}

func New(server adapter.ServerAdapter, buildInfo models.BuildInfo, logger *logger.Logger) *TUI {
	return &TUI{server: server, buildInfo: buildInfo, logger: logger}
}

// newRootModel builds every page around the shared server adapter.
func (t *TUI) newRootModel(ctx context.Context) RootModel {
	pages := map[string]tea.Model{
		pageMenu:     NewMenuModel(),
		pageLogin:    NewLoginModel(ctx, t.server),
		pageRegister: NewRegisterModel(ctx, t.server),
		pageProfile:  NewProfileModel(ctx, t.server, copyToClipboard),
	}
	return NewRootModel(pages, pageMenu, t.buildInfo)
}

// Run blocks until the user quits.
func (t *TUI) Run(ctx context.Context) error {
	finalModel, err := tea.NewProgram(t.newRootModel(ctx), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		t.logger.Debug().Msg("user quit the client")
	}
	return nil
}
