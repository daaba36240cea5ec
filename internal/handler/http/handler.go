package http

import (
	"github.com/MKhiriev/go-auth-service/internal/config"
	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/MKhiriev/go-auth-service/internal/metrics"
	"github.com/MKhiriev/go-auth-service/internal/service"
)

type Handler struct {
	services *service.Services
	metrics  *metrics.Metrics

	// development enables internal error details in 500 responses.
	development bool

	logger *logger.Logger
}

func NewHandler(services *service.Services, m *metrics.Metrics, cfg config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:    services,
		metrics:     m,
		development: cfg.IsDevelopment(),
		logger:      logger,
	}
}
