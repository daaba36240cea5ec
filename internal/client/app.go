package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/MKhiriev/go-auth-service/internal/tui"
)

// Runner is the interactive front end driven by [App].
type Runner interface {
	Run(ctx context.Context) error
}

type App struct {
	ui     Runner
	logger *logger.Logger
}

func NewApp(ui Runner, logger *logger.Logger) *App {
	return &App{ui: ui, logger: logger}
}

// Run blocks until the user quits or the process receives SIGTERM,
// SIGINT or SIGQUIT.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	return a.run(ctx)
}

func (a *App) run(ctx context.Context) error {
	a.logger.Info().Msg("client started")

	err := a.ui.Run(ctx)
	switch {
	case err == nil, errors.Is(err, tui.ErrUserQuit):
		a.logger.Info().Msg("client stopped")
		return nil
	case errors.Is(err, context.Canceled):
		a.logger.Info().Msg("client interrupted")
		return nil
	default:
		a.logger.Err(err).Msg("client run error")
		return fmt.Errorf("run tui: %w", err)
	}
}

// OpenLogFile opens path for appending, or returns nil when path is empty.
func OpenLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, nil
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}
