package service

import (
	"github.com/MKhiriev/go-auth-service/internal/config"
	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/MKhiriev/go-auth-service/internal/store"
	"github.com/MKhiriev/go-auth-service/internal/utils"
)

type Services struct {
	AuthService   AuthService
	HealthService HealthService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	healthService, err := NewHealthService(storages.Pinger(), cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:   NewAuthService(storages.UserRepository, utils.NewBcryptHasher(utils.PasswordHashCost), cfg.App, logger),
		HealthService: healthService,
	}, nil
}
