package errors

import (
	"fmt"
	"sort"
	"strings"
)

// Error wraps a taxonomy kind with a message, an optional chained cause,
// annotation context, and an optionally captured stack. It is the value
// application code passes around and the Handler consumes.
//
// Error is immutable: the With* builders return modified copies, so an
// Error can be shared across goroutines once created.
//
// Error participates in the standard error chain twice over: Unwrap yields
// both the kind and the cause, so errors.As finds the taxonomy leaf and
// errors.Is still matches sentinel causes deeper in the chain.
type Error struct {
	// Kind is the taxonomy leaf classifying this failure.
	Kind AppError

	// Message is the human-readable message. Defaults to the kind's
	// display string.
	Message string

	// Cause is the chained underlying error, if any.
	Cause error

	// Context holds annotation key-value pairs attached along the way.
	// This is call-path annotation, distinct from the identifying context
	// an ErrorValue carries.
	Context map[string]string

	// Trace is the captured stack, when WithStack was called.
	Trace Stack
}

// New returns an Error for the given kind, with the kind's display string
// as the message.
func New(kind AppError) *Error {
	return &Error{Kind: kind, Message: kind.Error()}
}

// NewMessage returns an Error for the given kind with a custom message.
func NewMessage(kind AppError, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Error implements the error interface, returning the message.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the kind and the cause, so both are visible to errors.As
// and errors.Is.
func (e *Error) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Cause != nil {
		out = append(out, e.Cause)
	}
	return out
}

// Code returns the kind's machine-readable code, or [CodeUnknown] if the
// Error somehow carries no kind.
func (e *Error) Code() Code {
	if e.Kind == nil {
		return CodeUnknown
	}
	return e.Kind.Code()
}

func (e *Error) clone() *Error {
	c := *e
	if e.Context != nil {
		c.Context = make(map[string]string, len(e.Context))
		for k, v := range e.Context {
			c.Context[k] = v
		}
	}
	return &c
}

// WithContext returns a copy with the key-value pair added to the
// annotation context. Writing an existing key overwrites its value.
func (e *Error) WithContext(key, value string) *Error {
	c := e.clone()
	if c.Context == nil {
		c.Context = make(map[string]string, 1)
	}
	c.Context[key] = value
	return c
}

// WithCause returns a copy with the chained cause set.
func (e *Error) WithCause(cause error) *Error {
	c := e.clone()
	c.Cause = cause
	return c
}

// WithStack returns a copy carrying the stack captured at the call site.
func (e *Error) WithStack() *Error {
	c := e.clone()
	c.Trace = CaptureStack(1)
	return c
}

// ContextValue returns the annotation value for key, and whether it is set.
func (e *Error) ContextValue(key string) (string, bool) {
	v, ok := e.Context[key]
	return v, ok
}

// FormatFull renders the error in its multiline log form: message, code,
// sorted context, cause, and stack when captured.
func (e *Error) FormatFull() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Error: %s\n", e.Message)
	fmt.Fprintf(&b, "Code: %s\n", e.Code())

	if len(e.Context) > 0 {
		b.WriteString("Context:\n")
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "  %s: %s\n", k, e.Context[k])
		}
	}

	if e.Cause != nil {
		fmt.Fprintf(&b, "Source: %s\n", e.Cause)
	}

	if len(e.Trace) > 0 {
		b.WriteString("Backtrace:\n")
		b.WriteString(e.Trace.String())
	}

	return b.String()
}

// Format implements fmt.Formatter. Use %v for the message, %+v for the
// multiline form produced by FormatFull.
func (e *Error) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			fmt.Fprint(s, e.FormatFull())
			return
		}
		fallthrough
	case 's':
		fmt.Fprint(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}
