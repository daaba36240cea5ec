package adapter

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/MKhiriev/go-auth-service/internal/config"
	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/MKhiriev/go-auth-service/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *resty.Client

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

func NewHTTPServerAdapter(cfg *config.ClientConfig, logger *logger.Logger) ServerAdapter {
	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.ServerURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")

	a := &httpServerAdapter{client: cli, logger: logger}
	a.SetToken(cfg.Token)
	return a
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) Register(ctx context.Context, credentials models.Credentials) (models.UserResponse, error) {
	var envelope models.UserEnvelope
	resp, err := h.authedRequest(ctx).
		SetBody(credentials).
		SetResult(&envelope).
		Post("/register")
	if err != nil {
		return models.UserResponse{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserResponse{}, err
	}

	h.logger.Debug().Str("username", envelope.User.Username).Msg("user registered")
	return envelope.User, nil
}

func (h *httpServerAdapter) Login(ctx context.Context, credentials models.LoginCredentials) (models.LoginResponse, error) {
	var session models.LoginResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(credentials).
		SetResult(&session).
		Post("/login")
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.LoginResponse{}, err
	}

	h.SetToken(session.Token)
	return session, nil
}

func (h *httpServerAdapter) Me(ctx context.Context) (models.UserResponse, error) {
	var envelope models.UserEnvelope
	resp, err := h.authedRequest(ctx).
		SetResult(&envelope).
		Get("/me")
	if err != nil {
		return models.UserResponse{}, fmt.Errorf("me request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserResponse{}, err
	}

	return envelope.User, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}
