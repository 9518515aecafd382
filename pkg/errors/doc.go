// Package errors provides the structured error core for the LumenDesk
// desktop platform: a closed four-family error taxonomy, a serializable
// error value, a context-carrying error wrapper, and a centralized handler
// that turns any error into a wire-safe response and a severity-classified
// log emission.
//
// # Error Taxonomy
//
// Every failure in the platform belongs to exactly one of four families:
//
//   - Domain errors: business-rule violations, validation failures,
//     missing entities, conflicts — user-correctable
//   - Infrastructure errors: database, file system, network, and
//     serialization failures — environment problems
//   - Application errors: invalid state, timeouts, cancellations, and
//     internal failures — programming or orchestration problems
//   - Plugin errors: extension loading and initialization failures
//
// Each leaf variant carries typed fields and maps to exactly one stable
// [Code] and one human-readable display string.
//
// # Error Codes
//
// Codes are stable, append-only identifiers. The canonical string form
// (e.g. "NOT_FOUND") is the external contract consumed by the UI bridge
// and RPC boundaries; the numeric value returned by [Code.Number] is used
// only for internal bucketing (1000s storage, 2000s configuration, 3000s
// serialization, 4000s validation, 5000s not-found, 6000s system, 7000s
// plugin).
//
// # Usage
//
// Create a taxonomy error and enrich it:
//
//	err := errors.New(errors.NotFound("User", "123")).
//	    WithContext("request_id", reqID)
//
// Check the error family at a recovery boundary:
//
//	if errors.IsNotFound(err) {
//	    // present a user-facing message
//	}
//
// Hand the error to the centralized handler at the top of the stack:
//
//	resp := handler.Handle(err)
//	bridge.Send(resp)
package errors
