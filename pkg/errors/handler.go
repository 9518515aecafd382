package errors

import (
	"context"
	"encoding/json"
	"log/slog"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Recorder receives handled errors for history tracking. It is satisfied
// by the tracker package; the indirection keeps this package free of a
// dependency on it.
type Recorder interface {
	// RecordError records err as seen at the named source. Implementations
	// must not panic and must tolerate concurrent calls.
	RecordError(source string, err error)
}

// handlerSource labels entries recorded by the Handler.
const handlerSource = "HANDLER"

// Handler is the centralized error processor: it converts any error into
// a wire-safe [ErrorResponse], logs it at the classified severity, and
// optionally records it into an error history.
//
// A Handler is immutable after construction and safe for concurrent use.
type Handler struct {
	includeBacktrace bool
	includeSource    bool
	codeOverrides    map[Code]string
	logger           *slog.Logger
	recorder         Recorder
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithBacktrace controls whether responses include a captured stack when
// the error carries one. Intended for debug builds; stacks expose internal
// structure and must not reach production clients.
func WithBacktrace(enable bool) HandlerOption {
	return func(h *Handler) { h.includeBacktrace = enable }
}

// WithSource controls whether responses include the chained cause's
// message. Cause messages may contain driver-level detail; enable only
// where that is acceptable.
func WithSource(enable bool) HandlerOption {
	return func(h *Handler) { h.includeSource = enable }
}

// WithErrorCode registers a response-only override: errors carrying the
// canonical code are reported to clients under external instead. Logging
// and classification keep the canonical code.
func WithErrorCode(canonical Code, external string) HandlerOption {
	return func(h *Handler) { h.codeOverrides[canonical] = external }
}

// WithLogger sets the logger used for handled errors.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(h *Handler) { h.logger = logger }
}

// WithTracker sets a recorder that receives every handled error.
// By default handled errors are not recorded anywhere.
func WithTracker(r Recorder) HandlerOption {
	return func(h *Handler) { h.recorder = r }
}

// NewHandler returns a Handler with the given options applied.
func NewHandler(opts ...HandlerOption) *Handler {
	h := &Handler{
		codeOverrides: make(map[Code]string),
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle processes err and returns its wire-safe response. It never fails:
// any error, including one carrying no taxonomy kind, produces a complete
// response. Handle(nil) reports an unknown error rather than panicking.
func (h *Handler) Handle(err error) ErrorResponse {
	return h.HandleContext(context.Background(), err)
}

// HandleContext is [Handler.Handle] with a context. When ctx carries a
// recording span, the error is additionally recorded on it and the span
// status is set to error.
func (h *Handler) HandleContext(ctx context.Context, err error) ErrorResponse {
	e := h.coerce(err)
	sev := Classify(e)

	resp := ErrorResponse{
		Error: ErrorData{
			Code:    h.mapCode(e.Code()),
			Message: e.Message,
			Kind:    KindOf(e.Kind),
			Context: e.Context,
		},
	}
	if h.includeSource && e.Cause != nil {
		resp.Error.Source = e.Cause.Error()
	}
	if h.includeBacktrace && len(e.Trace) > 0 {
		resp.Error.Backtrace = e.Trace.String()
	}

	if err != nil {
		if span := trace.SpanFromContext(ctx); span.IsRecording() {
			span.RecordError(err)
			span.SetStatus(codes.Error, e.Message)
		}
		if h.recorder != nil {
			h.recorder.RecordError(handlerSource, err)
		}
	}

	h.log(ctx, e, sev)
	return resp
}

// coerce normalizes any error into an *Error the handler can process.
// An *Error constructed without a kind gets an internal kind substituted,
// the same treatment [Coerce] gives a plain error.
func (h *Handler) coerce(err error) *Error {
	if err == nil {
		return NewMessage(Internal("unknown error"), "unknown error")
	}
	if e, ok := AsError(err); ok {
		if e.Kind == nil {
			c := e.clone()
			if c.Message == "" {
				c.Message = "unknown error"
			}
			c.Kind = Internal(c.Message)
			return c
		}
		return e
	}
	return New(Coerce(err))
}

// log emits the two-line form: message with code, then context when present.
func (h *Handler) log(ctx context.Context, e *Error, sev Severity) {
	lvl := sev.Level()
	h.logger.Log(ctx, lvl, e.Message, slog.String("code", string(e.Code())))
	if len(e.Context) > 0 {
		h.logger.Log(ctx, lvl, "error context", slog.Any("context", e.Context))
	}
}

func (h *Handler) mapCode(code Code) string {
	if mapped, ok := h.codeOverrides[code]; ok {
		return mapped
	}
	return string(code)
}

// ErrorResponse is the envelope handed across the UI bridge for a failed
// operation. Success is always false; it is serialized so clients can
// discriminate on a single field.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorData `json:"error"`
}

// ErrorData is the error payload of an [ErrorResponse].
type ErrorData struct {
	// Code is the machine-readable code, after any override mapping.
	Code string `json:"code"`

	// Message is the human-readable message.
	Message string `json:"message"`

	// Kind is the taxonomy position, e.g. "Domain::NotFound".
	Kind string `json:"kind"`

	// Context holds the error's annotation context, when present.
	Context map[string]string `json:"context,omitempty"`

	// Source is the chained cause's message. Populated only when the
	// handler was built with WithSource(true).
	Source string `json:"source,omitempty"`

	// Backtrace is the captured stack. Populated only when the handler
	// was built with WithBacktrace(true) and a stack was captured.
	Backtrace string `json:"backtrace,omitempty"`
}

// ToJSON serializes the response for the UI bridge.
func (r ErrorResponse) ToJSON() ([]byte, error) {
	return json.Marshal(r)
}
