package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/osu-parks/parks-api/internal/domain"
)

// PostgreSQL error codes
const (
	// foreignKeyViolationCode is the PostgreSQL error code for foreign key violations
	foreignKeyViolationCode = "23503"
)

// IsForeignKeyViolation checks if the given error is a PostgreSQL foreign key constraint violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}

// MapWriteError converts a foreign key violation raised by op on resource into a
// *domain.ForeignKeyViolationError. Any other error is returned unmodified.
func MapWriteError(err error, op, resource string) error {
	if !IsForeignKeyViolation(err) {
		return err
	}
	var pgErr *pgconn.PgError
	errors.As(err, &pgErr)
	return &domain.ForeignKeyViolationError{
		Op:         op,
		Resource:   resource,
		Constraint: pgErr.ConstraintName,
		Err:        err,
	}
}

// CheckRowsAffected returns notFound when an UPDATE or DELETE touched no rows.
func CheckRowsAffected(result sql.Result, notFound error) error {
	if result == nil {
		return fmt.Errorf("nil result provided to CheckRowsAffected")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return notFound
	}
	return nil
}
