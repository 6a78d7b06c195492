package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/epandurski/swpt-payments/internal/domain/coordinatorerr"
)

// pgUniqueViolation is the SQLSTATE Postgres returns for a unique index
// conflict, used to detect redelivered creates that races past the
// application-level existence check.
const pgUniqueViolation = "23505"

// TranslatePGError turns a unique-constraint violation into a conflict
// error the service layer can match with errors.Is/As; anything else
// passes through unchanged for the caller to wrap.
func TranslatePGError(err error, entityType string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return coordinatorerr.EntityConflictError{
			EntityType: entityType,
			Message:    "duplicate key: " + pgErr.ConstraintName,
			Err:        err,
		}
	}

	return err
}
