package neo4j

import (
	"context"
	"errors"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	lderr "github.com/LumenDesk/lumendesk-core/pkg/errors"
)

// constraintValidationFailed is the suffix of the Neo4j status code reported
// when a CREATE or MERGE violates a uniqueness or existence constraint
// (Neo.ClientError.Schema.ConstraintValidationFailed).
const constraintValidationFailed = "Schema.ConstraintValidationFailed"

// serviceUnavailable is the suffix of the Neo4j status code reported when
// the server cannot service requests (Neo.TransientError.General.ServiceUnavailable).
const serviceUnavailable = "ServiceUnavailable"

// ClassifyError maps a graph database error onto the error taxonomy:
//
//   - Schema.ConstraintValidationFailed: Conflict on the violated constraint
//   - ServiceUnavailable or driver connectivity failure: Network
//   - context deadline exceeded: Timeout
//   - context canceled: Canceled
//   - anything else: Database, with the Neo4j status code as source when known
//
// The operation parameter names the database operation for error display
// ("execute_read", "execute_write", "run"). The target parameter is the
// server URI used for network error display. The original error is
// preserved as the cause so callers can still match with errors.As against
// driver error types.
//
// ClassifyError returns nil for a nil error.
func ClassifyError(err error, operation, target string) error {
	if err == nil {
		return nil
	}

	var kind lderr.AppError
	var dbErr *neo4j.Neo4jError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = lderr.Timeout(operation, 0)
	case errors.Is(err, context.Canceled):
		kind = lderr.Canceled(operation, "context canceled")
	case errors.As(err, &dbErr):
		kind = classifyNeo4jError(dbErr, operation, target)
	case neo4j.IsConnectivityError(err):
		kind = lderr.Network(target, err.Error())
	default:
		kind = lderr.Database(operation, err.Error())
	}

	return lderr.New(kind).WithCause(err).WithContext("operation", operation)
}

// classifyNeo4jError maps a server-reported error by its status code.
func classifyNeo4jError(dbErr *neo4j.Neo4jError, operation, target string) lderr.AppError {
	switch {
	case strings.Contains(dbErr.Code, constraintValidationFailed):
		return lderr.Conflict(constraintResource(dbErr), dbErr.Msg)
	case strings.Contains(dbErr.Code, serviceUnavailable):
		return lderr.Network(target, dbErr.Msg)
	default:
		return &lderr.DatabaseError{
			Operation: operation,
			Message:   dbErr.Msg,
			Source:    dbErr.Code,
		}
	}
}

// constraintResource extracts the constraint name from the server message
// when present, falling back to the full status code. Neo4j reports
// constraint violations as:
//
//	... already exists with label `User` and property `email` = 'x'
//
// which carries no stable constraint name, so the resource is the status
// code unless the message names a constraint explicitly.
func constraintResource(dbErr *neo4j.Neo4jError) string {
	const marker = "constraint `"
	msg := dbErr.Msg
	if i := strings.Index(msg, marker); i >= 0 {
		rest := msg[i+len(marker):]
		if j := strings.Index(rest, "`"); j >= 0 {
			return rest[:j]
		}
	}
	return dbErr.Code
}
