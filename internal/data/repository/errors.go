// Package repository implements data access over raw SQL. This file
// defines sentinel errors shared by all repositories so that the
// service and handler layers can map storage failures onto the API
// error taxonomy with errors.Is instead of matching message strings.
package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a uniqueness constraint rejects a write,
// such as a taken email or an already-favorited (user, movie) pair.
var ErrDuplicate = errors.New("duplicate")

// ErrForeignKey is returned when an insert references a row that does
// not exist, e.g. favoriting a deleted movie.
var ErrForeignKey = errors.New("foreign key violation")

// ErrCheckFailed is returned when a CHECK constraint rejects a value,
// e.g. a release year outside 1888-2100.
var ErrCheckFailed = errors.New("check constraint failed")

// Postgres SQLSTATE codes for constraint violations.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// translateError maps pgconn errors onto the sentinel values above.
// Unrecognized errors pass through unchanged.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		return ErrDuplicate
	case codeForeignKeyViolation:
		return ErrForeignKey
	case codeCheckViolation:
		return ErrCheckFailed
	default:
		return err
	}
}
