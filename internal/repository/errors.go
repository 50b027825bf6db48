package repository

import (
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

var (
	ErrAlreadyExists = errors.New("already exists")
	ErrNotFound      = errors.New("not found")
)

const (
	pgUniqueViolation    = "23505"
	pgInvalidTextForType = "22P02"
)

// translate maps driver errors onto repository errors. A malformed uuid can never
// match a row, so it is reported as not found.
func translate(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrAlreadyExists
		case pgInvalidTextForType:
			return ErrNotFound
		}
	}

	return err
}
