package errors

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ErrorValue is the serializable form of an error, carrying the metadata
// needed for cross-boundary communication. It is a plain value: the With*
// builders return modified copies and never mutate the receiver, so an
// ErrorValue can be shared freely across goroutines.
//
// The zero optionals (Details, Field, Cause, Context) are omitted from the
// wire form entirely rather than serialized as null.
type ErrorValue struct {
	// Code is the machine-readable error code.
	Code Code `json:"code"`

	// Message is the human-readable error message.
	Message string `json:"message"`

	// Details carries optional technical detail beyond the message.
	Details string `json:"details,omitempty"`

	// Field names the input field that caused the error, for validation
	// failures.
	Field string `json:"field,omitempty"`

	// Cause describes the underlying failure, for chained errors.
	Cause string `json:"cause,omitempty"`

	// Context holds additional key-value metadata.
	Context map[string]string `json:"context,omitempty"`
}

// NewValue returns an ErrorValue with the given code and message.
func NewValue(code Code, message string) ErrorValue {
	return ErrorValue{Code: code, Message: message}
}

// WithDetails returns a copy with Details set.
func (v ErrorValue) WithDetails(details string) ErrorValue {
	v.Details = details
	return v
}

// WithField returns a copy with Field set.
func (v ErrorValue) WithField(field string) ErrorValue {
	v.Field = field
	return v
}

// WithCause returns a copy with Cause set.
func (v ErrorValue) WithCause(cause string) ErrorValue {
	v.Cause = cause
	return v
}

// WithContext returns a copy with the key-value pair added to Context.
// Writing an existing key overwrites its value. The receiver's context map
// is copied, not shared.
func (v ErrorValue) WithContext(key, value string) ErrorValue {
	ctx := make(map[string]string, len(v.Context)+1)
	for k, val := range v.Context {
		ctx[k] = val
	}
	ctx[key] = value
	v.Context = ctx
	return v
}

// ContextValue returns the context value for key, and whether it is set.
func (v ErrorValue) ContextValue(key string) (string, bool) {
	val, ok := v.Context[key]
	return val, ok
}

// ToResponse returns the wire form consumed by external clients: a JSON
// object with code and message always present and the optional fields
// omitted when empty.
func (v ErrorValue) ToResponse() ([]byte, error) {
	return json.Marshal(v)
}

// String formats the value as "[CODE] message" with details appended in
// parentheses when present.
func (v ErrorValue) String() string {
	if v.Details != "" {
		return fmt.Sprintf("[%s] %s (%s)", v.Code, v.Message, v.Details)
	}
	return fmt.Sprintf("[%s] %s", v.Code, v.Message)
}

// ToValue converts a taxonomy kind to its serializable form. The message is
// the kind's display string; structured fields move into the value's
// optionals (a validation kind's rejected input becomes Details, a database
// kind's driver failure becomes Cause, identifying fields become Context).
func ToValue(k AppError) ErrorValue {
	v := NewValue(k.Code(), k.Error())
	switch e := k.(type) {
	case *NotFoundError:
		return v.WithContext("entity", e.Entity).WithContext("id", e.ID)
	case *ValidationError:
		v = v.WithField(e.Field)
		if e.Value != "" {
			v = v.WithDetails(e.Value)
		}
		return v
	case *BusinessRuleError:
		return v.WithContext("rule", e.Rule)
	case *ConflictError:
		return v.WithContext("resource", e.Resource)
	case *DatabaseError:
		v = v.WithContext("operation", e.Operation)
		if e.Source != "" {
			v = v.WithCause(e.Source)
		}
		return v
	case *FileSystemError:
		return v.WithContext("path", e.Path).WithContext("operation", e.Operation)
	case *NetworkError:
		v = v.WithContext("url", e.URL)
		if e.Status != 0 {
			v = v.WithContext("status", strconv.Itoa(e.Status))
		}
		return v
	case *SerializationError:
		return v.WithContext("format", e.Format)
	case *InvalidStateError:
		return v.WithContext("state", e.State).WithContext("expected", e.Expected)
	case *TimeoutError:
		v = v.WithContext("operation", e.Operation)
		if e.Timeout > 0 {
			v = v.WithContext("timeout_ms", strconv.FormatInt(e.Timeout.Milliseconds(), 10))
		}
		return v
	case *CanceledError:
		return v.WithContext("operation", e.Operation).WithContext("reason", e.Reason)
	case *InternalError:
		return v
	case *PluginNotFoundError:
		return v.WithContext("plugin_id", e.PluginID)
	case *PluginLoadError:
		return v.WithContext("plugin_id", e.PluginID)
	case *PluginInitError:
		return v.WithContext("plugin_id", e.PluginID)
	case *PluginDependencyError:
		return v.WithContext("plugin_id", e.PluginID).WithContext("dependency", e.Dependency)
	default:
		// The interface is sealed; an unknown kind is a programming error.
		return v
	}
}
