package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-auth-service/internal/config"
	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"
)

const dialectSQLite = "sqlite3"

// NewConnectSQLite opens an embedded SQLite database. The pool is limited to
// a single connection so that ":memory:" databases are shared by every
// query.
func NewConnectSQLite(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}
	conn.SetMaxOpenConns(1)

	// ping database
	if err = ping(ctx, conn, cfg); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		conn.Close()
		return nil, err
	}
	log.Debug().Str("func", "NewConnectSQLite").Msg("connected to database successfully")

	return newDB(conn, dialectSQLite, squirrel.Question, sqliteConflict, log), nil
}

// sqliteConflict recognises "UNIQUE constraint failed: users.<column>".
func sqliteConflict(err error) (string, bool) {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) || sqliteErr.ExtendedCode != sqlite3.ErrConstraintUnique {
		return "", false
	}

	return conflictField(sqliteErr.Error()), true
}
