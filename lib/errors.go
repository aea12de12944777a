package lib

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun/driver/pgdriver"
)

// Database errors
var (
	ErrConflict = errors.New("conflict")
	ErrNotFound = errors.New("not found")
)

// Verification errors
var (
	ErrMissingToken    = errors.New("token is required")
	ErrTokenNotFound   = errors.New("unknown token")
	ErrAlreadyVerified = errors.New("email already verified")
	ErrExpiredToken    = errors.New("verification token expired")
	ErrDeviceMismatch  = errors.New("device mismatch")
	ErrNotVerified     = errors.New("email not verified for this token")
)

// Admin auth errors
var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

func MapPgError(err error) error {
	switch pgSQLState(err) {
	case "23505": // unique_violation
		return ErrConflict
	case "P0002": // no_data_found
		return ErrNotFound
	}
	return err
}

func pgSQLState(err error) string {
	var pgdErr pgdriver.Error
	if errors.As(err, &pgdErr) {
		return pgdErr.Field('C')
	}
	var pgcErr *pgconn.PgError
	if errors.As(err, &pgcErr) {
		return pgcErr.Code
	}
	return ""
}

func IsUniqueViolation(err error) bool {
	return errors.Is(err, ErrConflict)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
