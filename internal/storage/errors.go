package storage

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrLoginExists           = errors.New("login already exists")
	ErrVendorNotFound        = errors.New("vendor not found")
	ErrPayoutNotFound        = errors.New("payout not found")
	ErrPayoutReferenceExists = errors.New("payout reference already exists")
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// nullUUID превращает uuid.Nil в SQL NULL.
func nullUUID(id uuid.UUID) any {
	if id == uuid.Nil {
		return nil
	}
	return id
}
