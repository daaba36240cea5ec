package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/MKhiriev/go-auth-service/internal/config"
	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const dialectPostgres = "pgx"

func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	// establish connection
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occurred during database connection")
		return nil, fmt.Errorf("error occurred during database connection: %w", err)
	}

	// setup connections
	if cfg.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
		conn.SetMaxIdleConns(cfg.MaxOpenConns)
	}

	// ping database
	if err = ping(ctx, conn, cfg); err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		conn.Close()
		return nil, err
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	return newDB(conn, dialectPostgres, squirrel.Dollar, postgresConflict, log), nil
}

func ping(ctx context.Context, conn *sql.DB, cfg config.DB) error {
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	if err := conn.PingContext(ctx); err != nil {
		return fmt.Errorf("database is unreachable: %w", err)
	}

	return nil
}

func postgresError(err error) string {
	var pgErr *pgconn.PgError
	// if postgres returns error
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

// detailKey matches the column list of a unique_violation detail,
// e.g. "Key (email)=(bob@example.com) already exists.".
var detailKey = regexp.MustCompile(`^Key \(([^)]+)\)=`)

// postgresConflict reports the user column behind a unique_violation. The
// column is derived from the violated constraint name (users_username_key,
// users_email_key). The detail is consulted only when the server did not
// report a constraint name; it carries the rejected value, so only its key
// part is read.
func postgresConflict(err error) (string, bool) {
	if postgresError(err) != pgerrcode.UniqueViolation {
		return "", false
	}

	var pgErr *pgconn.PgError
	errors.As(err, &pgErr)

	if pgErr.ConstraintName != "" {
		return conflictField(pgErr.ConstraintName), true
	}

	if m := detailKey.FindStringSubmatch(pgErr.Detail); m != nil {
		return conflictField(m[1]), true
	}

	return conflictField(""), true
}

// conflictField picks "username" when the constraint name or column mentions
// it and falls back to "email" otherwise.
func conflictField(name string) string {
	if strings.Contains(strings.ToLower(name), "username") {
		return "username"
	}

	return "email"
}
