package service

import (
	"context"

	"github.com/MKhiriev/go-auth-service/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService implements registration, login and identity lookup.
type AuthService interface {
	RegisterUser(ctx context.Context, credentials models.Credentials) (models.User, error)
	Login(ctx context.Context, credentials models.LoginCredentials) (models.Session, error)
	GetCurrentUser(ctx context.Context, userID string) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// HealthService reports build information and readiness of the service.
type HealthService interface {
	GetAppVersion(ctx context.Context) string
	Ready(ctx context.Context) error
}

// PasswordHasher turns plaintext passwords into salted digests and checks
// them.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}
