package repositories

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError
	}
	return nil
}

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// constraintError maps a postgres constraint violation to a sentinel error.
// Returns nil when err is not a pq error matching the given constraint.
func constraintError(err error, code pq.ErrorCode, constraint string, sentinel error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code == code && pqErr.Constraint == constraint {
			return sentinel
		}
	}
	return nil
}
