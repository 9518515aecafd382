package errors

import (
	"errors"
)

// AsAppError attempts to find a taxonomy kind in err's chain.
// Returns the kind and true if found, nil and false otherwise.
//
// Example:
//
//	if k, ok := errors.AsAppError(err); ok {
//	    log.Printf("error code: %s", k.Code())
//	}
func AsAppError(err error) (AppError, bool) {
	var k AppError
	if errors.As(err, &k) {
		return k, true
	}
	return nil, false
}

// AsError attempts to find an *Error wrapper in err's chain.
// Returns the Error and true if found, nil and false otherwise.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// GetCode returns the taxonomy code carried anywhere in err's chain.
// If err carries no taxonomy kind, or is nil, returns [CodeUnknown].
//
// Example:
//
//	if errors.GetCode(err) == errors.CodeNotFound {
//	    // handle not found
//	}
func GetCode(err error) Code {
	if k, ok := AsAppError(err); ok {
		return k.Code()
	}
	return CodeUnknown
}

// HasCode checks whether err carries the specified taxonomy code.
func HasCode(err error, code Code) bool {
	return GetCode(err) == code
}

// IsNotFound checks whether err's chain carries a not-found kind.
//
// Example:
//
//	if errors.IsNotFound(err) {
//	    // surface as a missing-entity response
//	}
func IsNotFound(err error) bool {
	var k *NotFoundError
	return errors.As(err, &k)
}

// IsValidation checks whether err's chain carries a validation kind.
func IsValidation(err error) bool {
	var k *ValidationError
	return errors.As(err, &k)
}

// IsConflict checks whether err's chain carries a conflict kind.
func IsConflict(err error) bool {
	var k *ConflictError
	return errors.As(err, &k)
}

// IsDatabase checks whether err's chain carries a database kind.
func IsDatabase(err error) bool {
	var k *DatabaseError
	return errors.As(err, &k)
}

// IsTimeout checks whether err's chain carries a timeout kind.
//
// Example:
//
//	if errors.IsTimeout(err) {
//	    // retry with backoff
//	}
func IsTimeout(err error) bool {
	var k *TimeoutError
	return errors.As(err, &k)
}

// IsCanceled checks whether err's chain carries a canceled kind.
func IsCanceled(err error) bool {
	var k *CanceledError
	return errors.As(err, &k)
}

// IsInternal checks whether err's chain carries an internal kind.
//
// Example:
//
//	if errors.IsInternal(err) {
//	    // log details, return a generic message to the client
//	}
func IsInternal(err error) bool {
	var k *InternalError
	return errors.As(err, &k)
}

// IsRetryable checks whether err represents a failure worth retrying.
// Timeout and network kinds are considered retryable.
func IsRetryable(err error) bool {
	if IsTimeout(err) {
		return true
	}
	var k *NetworkError
	return errors.As(err, &k)
}
