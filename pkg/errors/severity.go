package errors

import (
	"log/slog"
)

// Severity grades how serious a handled or recorded error is.
type Severity string

const (
	// SeverityInfo marks observations that are not failures.
	SeverityInfo Severity = "Info"

	// SeverityWarning marks expected, recoverable failures.
	SeverityWarning Severity = "Warning"

	// SeverityError marks failures that need attention.
	SeverityError Severity = "Error"

	// SeverityCritical marks process-level failures. It is reserved for
	// crash capture and is never assigned by classification.
	SeverityCritical Severity = "Critical"
)

// Level maps the severity to its slog level. Critical maps above
// [slog.LevelError] so handlers can route it separately.
func (s Severity) Level() slog.Level {
	switch s {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	case SeverityCritical:
		return slog.LevelError + 4
	default:
		return slog.LevelError
	}
}

// Classify returns the severity for a handled error.
//
// Not-found and validation kinds, and everything in the application
// family, are expected failure modes and grade as Warning. Infrastructure
// and plugin kinds, and errors carrying no taxonomy kind at all, grade as
// Error. Classification never returns Critical.
func Classify(err error) Severity {
	k, ok := AsAppError(err)
	if !ok {
		return SeverityError
	}
	switch k.(type) {
	case *NotFoundError, *ValidationError:
		return SeverityWarning
	}
	if k.Family() == FamilyApplication {
		return SeverityWarning
	}
	return SeverityError
}
