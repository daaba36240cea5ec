package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-auth-service/internal/config"
	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/MKhiriev/go-auth-service/internal/utils"
)

// Storages groups the repositories handed to the service layer together with
// the pool they share.
type Storages struct {
	UserRepository UserRepository

	db *DB
}

// NewStorages connects to the configured database, verifies it is reachable
// and applies pending migrations. Any failure is returned so that startup can
// abort.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Str("driver", cfg.DB.Driver).Msg("creating new storages...")

	var (
		db  *DB
		err error
	)
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		db, err = NewConnectPostgres(ctx, cfg.DB, logger)
	case config.DriverSQLite:
		db, err = NewConnectSQLite(ctx, cfg.DB, logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.DB.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("%s connection error: %w", cfg.DB.Driver, err)
	}

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return newStorages(db, utils.NewUUIDGenerator(), logger), nil
}

func newStorages(db *DB, ids IDGenerator, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository: NewUserRepository(db, ids, logger),
		db:             db,
	}
}

// Pinger exposes the shared pool for readiness checks.
func (s *Storages) Pinger() Pinger {
	return s.db
}

// Close releases the connection pool.
func (s *Storages) Close() error {
	return s.db.Close()
}
