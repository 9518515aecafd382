package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	lderr "github.com/LumenDesk/lumendesk-core/pkg/errors"
)

// integrityViolationClass is the SQLSTATE class for integrity constraint
// violations (unique, foreign key, check, not-null).
const integrityViolationClass = "23"

// uniqueViolationCode is the SQLSTATE for unique constraint violations.
const uniqueViolationCode = "23505"

// ClassifyError maps a database error onto the error taxonomy:
//
//   - pgx.ErrNoRows: NotFound for the given operation
//   - SQLSTATE 23505 (unique violation): Conflict on the constraint
//   - other SQLSTATE class 23 (integrity violation): BusinessRule
//   - context deadline exceeded: Timeout
//   - context canceled: Canceled
//   - anything else: Database, with the SQLSTATE as source when known
//
// The operation parameter names the database operation for error display
// ("query", "exec", "begin"). The original error is preserved as the
// cause so callers can still match with errors.Is against pgx sentinels.
//
// ClassifyError returns nil for a nil error. It is applied by all Client
// methods; it is exported so callers can classify scan-time errors from
// [pgx.Row.Scan], which the Client cannot intercept.
func ClassifyError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var kind lderr.AppError
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		kind = lderr.NotFound("Row", operation)
	case errors.Is(err, context.DeadlineExceeded):
		kind = lderr.Timeout(operation, 0)
	case errors.Is(err, context.Canceled):
		kind = lderr.Canceled(operation, "context canceled")
	default:
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			kind = classifyPgError(pgErr, operation)
		} else {
			kind = lderr.Database(operation, err.Error())
		}
	}

	return lderr.New(kind).WithCause(err).WithContext("operation", operation)
}

// classifyPgError maps a server-reported error by its SQLSTATE.
func classifyPgError(pgErr *pgconn.PgError, operation string) lderr.AppError {
	switch {
	case pgErr.Code == uniqueViolationCode:
		return lderr.Conflict(constraintResource(pgErr), pgErr.Message)
	case strings.HasPrefix(pgErr.Code, integrityViolationClass):
		return lderr.BusinessRule(constraintResource(pgErr), pgErr.Message)
	default:
		return &lderr.DatabaseError{
			Operation: operation,
			Message:   pgErr.Message,
			Source:    pgErr.Code,
		}
	}
}

// constraintResource names the violated constraint for error display,
// preferring the constraint name, then the table, then the SQLSTATE.
func constraintResource(pgErr *pgconn.PgError) string {
	if pgErr.ConstraintName != "" {
		return pgErr.ConstraintName
	}
	if pgErr.TableName != "" {
		return pgErr.TableName
	}
	return pgErr.Code
}
