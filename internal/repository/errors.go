// Package repository implements all database queries for the backend.
// It uses pgx directly (no ORM) for transparency and performance.
package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrAlreadyExists is returned when a unique constraint is violated.
var ErrAlreadyExists = errors.New("already exists")

// ErrReferenced is returned when a row cannot be deleted because other rows
// still point at it.
var ErrReferenced = errors.New("still referenced")

// ErrUnavailable is returned on transient lock or serialization failures.
// The whole operation is safe to retry.
var ErrUnavailable = errors.New("store temporarily unavailable")

// wrapPg translates well-known PostgreSQL error codes into the sentinel
// errors above; anything else is wrapped as-is.
func wrapPg(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s: %w", op, ErrReferenced)
		case "55P03", "40001", "40P01": // lock timeout, serialization, deadlock
			return fmt.Errorf("%s: %w", op, ErrUnavailable)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
