package errors

// This file holds the pure adapters that move plain errors into the
// taxonomy. All of them are nil-safe: a nil err passes through unchanged
// and closures are never invoked for it.

// Coerce returns the taxonomy kind carried in err's chain, or an internal
// kind wrapping err's message when it carries none. Coerce(nil) is nil.
func Coerce(err error) AppError {
	if err == nil {
		return nil
	}
	if k, ok := AsAppError(err); ok {
		return k
	}
	return Internal(err.Error())
}

// Context wraps err with a message prefix, preserving its taxonomy kind.
// The resulting message is "msg: original". Errors without a kind are
// classified internal; the original error stays reachable through the
// cause chain.
func Context(err error, msg string) error {
	if err == nil {
		return nil
	}
	if e, ok := AsError(err); ok {
		c := e.clone()
		c.Message = msg + ": " + e.Message
		return c
	}
	wrapped := NewMessage(Coerce(err), msg+": "+err.Error())
	if _, ok := AsAppError(err); !ok {
		wrapped = wrapped.WithCause(err)
	}
	return wrapped
}

// ContextFunc is the lazy form of [Context]: f is evaluated only when err
// is non-nil, so building an expensive message costs nothing on the
// success path.
func ContextFunc(err error, f func() string) error {
	if err == nil {
		return nil
	}
	return Context(err, f())
}

// MapNotFound replaces err with a not-found kind described by f. The
// original error is deliberately discarded: use this at lookup boundaries
// where any failure means the resource is absent and the underlying detail
// must not leak to callers.
func MapNotFound(err error, f func() string) error {
	if err == nil {
		return nil
	}
	return New(NotFound("Resource", f()))
}

// MapValidation replaces err with a validation kind for the given field.
// Like [MapNotFound], the original error is deliberately discarded.
func MapValidation(err error, field, message string) error {
	if err == nil {
		return nil
	}
	return New(Validation(field, message))
}

// OkOrNotFound converts an optional lookup result to a value-or-error pair,
// producing a not-found kind when the value is absent.
//
// Example:
//
//	user, ok := cache[id]
//	u, err := errors.OkOrNotFound(user, ok, "User", id)
func OkOrNotFound[T any](v T, ok bool, entity, id string) (T, error) {
	if ok {
		return v, nil
	}
	var zero T
	return zero, New(NotFound(entity, id))
}

// Handle folds a value-or-error pair into a single result. It is total:
// exactly one of onSuccess or onFailure runs, and onFailure always receives
// a taxonomy kind (non-taxonomy errors are coerced to internal).
func Handle[T, R any](v T, err error, onSuccess func(T) R, onFailure func(AppError) R) R {
	if err != nil {
		return onFailure(Coerce(err))
	}
	return onSuccess(v)
}
