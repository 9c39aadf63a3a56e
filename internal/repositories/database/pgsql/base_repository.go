package pgsql

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolationCode is the SQLSTATE Postgres raises on unique-constraint
// conflicts.
const uniqueViolationCode = "23505"

// BaseRepository provides common functionality for all repositories.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// isUniqueViolation reports whether err is a unique-constraint conflict.
// The message check covers drivers and proxies that do not surface SQLSTATE.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "duplicate")
}
