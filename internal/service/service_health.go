package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-auth-service/internal/config"
	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/MKhiriev/go-auth-service/internal/store"
)

type healthService struct {
	appVersion string
	pinger     store.Pinger

	logger *logger.Logger
}

func NewHealthService(pinger store.Pinger, cfg config.App, logger *logger.Logger) (HealthService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &healthService{
		appVersion: cfg.Version,
		pinger:     pinger,
		logger:     logger,
	}, nil
}

func (s *healthService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}

// Ready reports nil when the database answers a ping.
func (s *healthService) Ready(ctx context.Context) error {
	if err := s.pinger.PingContext(ctx); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Msg("readiness check failed")
		return fmt.Errorf("database is not reachable: %w", err)
	}

	return nil
}
