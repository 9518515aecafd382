package errors

// Code is a machine-readable error code identifying one failure leaf in
// the taxonomy. The string form is the canonical wire representation and
// is what external consumers pattern-match against.
//
// Codes are designed to be:
//   - Stable: a code is never renumbered or renamed once assigned
//   - Append-only: new failure kinds get new codes
//   - Machine-readable: suitable for automated error handling on both
//     sides of the UI bridge
type Code string

// Error codes, grouped by numeric range (see [Code.Number]):
//
//	1000s — storage failures
//	2000s — configuration failures
//	3000s — serialization failures
//	4000s — validation and business-rule failures
//	5000s — not-found failures
//	6000s — system and internal failures
//	7000s — plugin system failures
const (
	// Storage failures (1000s).

	// CodeDatabase indicates a database operation failed.
	CodeDatabase Code = "DATABASE_ERROR"

	// CodeFileSystem indicates a file system operation failed.
	CodeFileSystem Code = "FILE_SYSTEM_ERROR"

	// Configuration failures (2000s).

	// CodeConfigNotFound indicates a configuration file or key is missing.
	CodeConfigNotFound Code = "CONFIG_NOT_FOUND"

	// CodeConfigInvalid indicates a configuration value failed to parse
	// or validate.
	CodeConfigInvalid Code = "CONFIG_INVALID"

	// CodeConfigMissingField indicates a required configuration field
	// was not provided.
	CodeConfigMissingField Code = "CONFIG_MISSING_FIELD"

	// Serialization failures (3000s).

	// CodeSerialization indicates an encode or decode operation failed.
	CodeSerialization Code = "SERIALIZATION_ERROR"

	// Validation failures (4000s).

	// CodeValidation indicates input failed a validation rule.
	CodeValidation Code = "VALIDATION_ERROR"

	// CodeBusinessRule indicates a domain business rule was violated.
	CodeBusinessRule Code = "BUSINESS_RULE_VIOLATION"

	// CodeConflict indicates an operation conflicts with existing state
	// (e.g. a uniqueness constraint).
	CodeConflict Code = "CONFLICT"

	// Not-found failures (5000s).

	// CodeNotFound indicates a requested entity does not exist.
	CodeNotFound Code = "NOT_FOUND"

	// System and internal failures (6000s).

	// CodeInvalidState indicates an operation was attempted in a state
	// that does not permit it.
	CodeInvalidState Code = "INVALID_STATE"

	// CodeTimeout indicates an operation exceeded its time limit.
	CodeTimeout Code = "TIMEOUT"

	// CodeCanceled indicates an operation was canceled before completion.
	CodeCanceled Code = "CANCELED"

	// CodeNetwork indicates a network request failed.
	CodeNetwork Code = "NETWORK_ERROR"

	// CodeInternal indicates an unexpected internal failure.
	CodeInternal Code = "INTERNAL_ERROR"

	// Plugin system failures (7000s).

	// CodePluginNotFound indicates the requested plugin is not registered.
	CodePluginNotFound Code = "PLUGIN_NOT_FOUND"

	// CodePluginLoadFailed indicates a plugin could not be loaded.
	CodePluginLoadFailed Code = "PLUGIN_LOAD_FAILED"

	// CodePluginInitFailed indicates a plugin failed to initialize.
	CodePluginInitFailed Code = "PLUGIN_INIT_FAILED"

	// CodePluginDependencyMissing indicates a plugin dependency is not
	// available.
	CodePluginDependencyMissing Code = "PLUGIN_DEPENDENCY_MISSING"

	// CodeUnknown is the fallback for errors that carry no taxonomy code.
	CodeUnknown Code = "UNKNOWN"
)

// codeNumbers maps each code to its numeric bucket value. Numeric values
// are internal only; the wire contract is the string form.
var codeNumbers = map[Code]int{
	CodeDatabase:                1000,
	CodeFileSystem:              1100,
	CodeConfigNotFound:          2000,
	CodeConfigInvalid:           2001,
	CodeConfigMissingField:      2002,
	CodeSerialization:           3000,
	CodeValidation:              4000,
	CodeBusinessRule:            4001,
	CodeConflict:                4002,
	CodeNotFound:                5000,
	CodeInvalidState:            6000,
	CodeTimeout:                 6001,
	CodeCanceled:                6002,
	CodeNetwork:                 6100,
	CodeInternal:                6999,
	CodePluginNotFound:          7000,
	CodePluginLoadFailed:        7001,
	CodePluginInitFailed:        7002,
	CodePluginDependencyMissing: 7003,
	CodeUnknown:                 9999,
}

// String returns the canonical string form of the code.
func (c Code) String() string {
	return string(c)
}

// Number returns the numeric bucket value of the code, or 0 if the code
// is not a registered platform code.
func (c Code) Number() int {
	return codeNumbers[c]
}

// Valid reports whether c is a registered platform code.
func (c Code) Valid() bool {
	_, ok := codeNumbers[c]
	return ok
}
