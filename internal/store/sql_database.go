package store

import (
	"context"
	"database/sql"

	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/MKhiriev/go-auth-service/migrations"
	"github.com/Masterminds/squirrel"
)

// DB wraps the process-wide connection pool together with the dialect
// specific pieces the repositories need.
type DB struct {
	*sql.DB
	dialect     string
	builder     squirrel.StatementBuilderType
	conflictsOf func(err error) (field string, ok bool)
	logger      *logger.Logger
}

func newDB(conn *sql.DB, dialect string, placeholder squirrel.PlaceholderFormat, conflictsOf func(error) (string, bool), log *logger.Logger) *DB {
	return &DB{
		DB:          conn,
		dialect:     dialect,
		builder:     squirrel.StatementBuilder.PlaceholderFormat(placeholder),
		conflictsOf: conflictsOf,
		logger:      log,
	}
}

// Migrate applies all pending schema migrations.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Migrate(ctx, db.DB, db.dialect)
}

// Dialect returns the goose dialect name of the connection.
func (db *DB) Dialect() string {
	return db.dialect
}
