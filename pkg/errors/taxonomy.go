package errors

import (
	"fmt"
	"time"
)

// Family identifies the layer of the taxonomy an error kind belongs to.
type Family string

const (
	// FamilyDomain covers business logic failures.
	FamilyDomain Family = "Domain"

	// FamilyInfrastructure covers external system failures.
	FamilyInfrastructure Family = "Infrastructure"

	// FamilyApplication covers use case and orchestration failures.
	FamilyApplication Family = "Application"

	// FamilyPlugin covers plugin system failures.
	FamilyPlugin Family = "Plugin"
)

// AppError is the closed set of platform failure kinds. Every kind carries
// a stable [Code], belongs to exactly one [Family], and produces a fixed
// display string from its fields.
//
// The interface is sealed: only the kinds defined in this package implement
// it. Extend the taxonomy by adding a new kind here, never by implementing
// AppError elsewhere.
type AppError interface {
	error

	// Code returns the machine-readable code for this kind.
	Code() Code

	// Family returns the taxonomy family this kind belongs to.
	Family() Family

	// Variant returns the kind's name within its family, e.g. "NotFound".
	Variant() string

	// appError seals the interface to this package.
	appError()
}

// KindOf returns the wire form of an AppError's position in the taxonomy,
// e.g. "Domain::NotFound".
func KindOf(k AppError) string {
	return string(k.Family()) + "::" + k.Variant()
}

// ---- Domain kinds ----

// NotFoundError indicates a requested entity does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

// NotFound returns a NotFoundError for the given entity type and identifier.
func NotFound(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

func (e *NotFoundError) Code() Code      { return CodeNotFound }
func (e *NotFoundError) Family() Family  { return FamilyDomain }
func (e *NotFoundError) Variant() string { return "NotFound" }
func (e *NotFoundError) appError()       {}

// ValidationError indicates input failed a validation rule. Value is the
// offending input when it is safe to echo back; leave it empty otherwise.
type ValidationError struct {
	Field   string
	Message string
	Value   string
}

// Validation returns a ValidationError for the given field.
func Validation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ValidationValue returns a ValidationError that echoes the rejected value.
func ValidationValue(field, message, value string) *ValidationError {
	return &ValidationError{Field: field, Message: message, Value: value}
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("Validation failed for '%s': %s (value: %s)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("Validation failed for '%s': %s", e.Field, e.Message)
}

func (e *ValidationError) Code() Code      { return CodeValidation }
func (e *ValidationError) Family() Family  { return FamilyDomain }
func (e *ValidationError) Variant() string { return "Validation" }
func (e *ValidationError) appError()       {}

// BusinessRuleError indicates a named domain rule was violated.
type BusinessRuleError struct {
	Rule    string
	Message string
}

// BusinessRule returns a BusinessRuleError for the named rule.
func BusinessRule(rule, message string) *BusinessRuleError {
	return &BusinessRuleError{Rule: rule, Message: message}
}

func (e *BusinessRuleError) Error() string {
	return fmt.Sprintf("Business rule '%s' violated: %s", e.Rule, e.Message)
}

func (e *BusinessRuleError) Code() Code      { return CodeBusinessRule }
func (e *BusinessRuleError) Family() Family  { return FamilyDomain }
func (e *BusinessRuleError) Variant() string { return "BusinessRule" }
func (e *BusinessRuleError) appError()       {}

// ConflictError indicates an operation conflicts with existing state,
// typically a uniqueness constraint.
type ConflictError struct {
	Resource string
	Message  string
}

// Conflict returns a ConflictError for the named resource.
func Conflict(resource, message string) *ConflictError {
	return &ConflictError{Resource: resource, Message: message}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("Conflict on '%s': %s", e.Resource, e.Message)
}

func (e *ConflictError) Code() Code      { return CodeConflict }
func (e *ConflictError) Family() Family  { return FamilyDomain }
func (e *ConflictError) Variant() string { return "Conflict" }
func (e *ConflictError) appError()       {}

// ---- Infrastructure kinds ----

// DatabaseError indicates a database operation failed. Source optionally
// names the driver-level failure, e.g. a SQLSTATE code.
type DatabaseError struct {
	Operation string
	Message   string
	Source    string
}

// Database returns a DatabaseError for the given operation.
func Database(operation, message string) *DatabaseError {
	return &DatabaseError{Operation: operation, Message: message}
}

func (e *DatabaseError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("Database %s failed: %s (%s)", e.Operation, e.Message, e.Source)
	}
	return fmt.Sprintf("Database %s failed: %s", e.Operation, e.Message)
}

func (e *DatabaseError) Code() Code      { return CodeDatabase }
func (e *DatabaseError) Family() Family  { return FamilyInfrastructure }
func (e *DatabaseError) Variant() string { return "Database" }
func (e *DatabaseError) appError()       {}

// FileSystemError indicates a file system operation failed.
type FileSystemError struct {
	Path      string
	Operation string
	Message   string
}

// FileSystem returns a FileSystemError for the given operation and path.
func FileSystem(path, operation, message string) *FileSystemError {
	return &FileSystemError{Path: path, Operation: operation, Message: message}
}

func (e *FileSystemError) Error() string {
	return fmt.Sprintf("File system %s on '%s' failed: %s", e.Operation, e.Path, e.Message)
}

func (e *FileSystemError) Code() Code      { return CodeFileSystem }
func (e *FileSystemError) Family() Family  { return FamilyInfrastructure }
func (e *FileSystemError) Variant() string { return "FileSystem" }
func (e *FileSystemError) appError()       {}

// NetworkError indicates a network request failed. Status carries the HTTP
// status code when one was received; zero means no response arrived.
type NetworkError struct {
	URL     string
	Message string
	Status  int
}

// Network returns a NetworkError for the given URL.
func Network(url, message string) *NetworkError {
	return &NetworkError{URL: url, Message: message}
}

// NetworkStatus returns a NetworkError carrying a received HTTP status.
func NetworkStatus(url, message string, status int) *NetworkError {
	return &NetworkError{URL: url, Message: message, Status: status}
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("Network request to '%s' failed: %s (status: %d)", e.URL, e.Message, e.Status)
	}
	return fmt.Sprintf("Network request to '%s' failed: %s", e.URL, e.Message)
}

func (e *NetworkError) Code() Code      { return CodeNetwork }
func (e *NetworkError) Family() Family  { return FamilyInfrastructure }
func (e *NetworkError) Variant() string { return "Network" }
func (e *NetworkError) appError()       {}

// SerializationError indicates an encode or decode operation failed.
// Format names the encoding, e.g. "JSON" or "YAML".
type SerializationError struct {
	Format  string
	Message string
}

// Serialization returns a SerializationError for the named format.
func Serialization(format, message string) *SerializationError {
	return &SerializationError{Format: format, Message: message}
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("%s serialization failed: %s", e.Format, e.Message)
}

func (e *SerializationError) Code() Code      { return CodeSerialization }
func (e *SerializationError) Family() Family  { return FamilyInfrastructure }
func (e *SerializationError) Variant() string { return "Serialization" }
func (e *SerializationError) appError()       {}

// ---- Application kinds ----

// InvalidStateError indicates an operation was attempted in a state that
// does not permit it.
type InvalidStateError struct {
	State    string
	Expected string
}

// InvalidState returns an InvalidStateError for the observed and expected
// states.
func InvalidState(state, expected string) *InvalidStateError {
	return &InvalidStateError{State: state, Expected: expected}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("Invalid state: got '%s', expected '%s'", e.State, e.Expected)
}

func (e *InvalidStateError) Code() Code      { return CodeInvalidState }
func (e *InvalidStateError) Family() Family  { return FamilyApplication }
func (e *InvalidStateError) Variant() string { return "InvalidState" }
func (e *InvalidStateError) appError()       {}

// TimeoutError indicates an operation exceeded its time limit. Timeout is
// the limit that was exceeded; zero means the limit is not known at the
// point the error was raised.
type TimeoutError struct {
	Operation string
	Timeout   time.Duration
}

// Timeout returns a TimeoutError for the given operation and limit.
func Timeout(operation string, timeout time.Duration) *TimeoutError {
	return &TimeoutError{Operation: operation, Timeout: timeout}
}

func (e *TimeoutError) Error() string {
	if e.Timeout > 0 {
		return fmt.Sprintf("Operation '%s' timed out after %dms", e.Operation, e.Timeout.Milliseconds())
	}
	return fmt.Sprintf("Operation '%s' timed out", e.Operation)
}

func (e *TimeoutError) Code() Code      { return CodeTimeout }
func (e *TimeoutError) Family() Family  { return FamilyApplication }
func (e *TimeoutError) Variant() string { return "Timeout" }
func (e *TimeoutError) appError()       {}

// CanceledError indicates an operation was canceled before completion.
type CanceledError struct {
	Operation string
	Reason    string
}

// Canceled returns a CanceledError for the given operation.
func Canceled(operation, reason string) *CanceledError {
	return &CanceledError{Operation: operation, Reason: reason}
}

func (e *CanceledError) Error() string {
	return fmt.Sprintf("Operation '%s' canceled: %s", e.Operation, e.Reason)
}

func (e *CanceledError) Code() Code      { return CodeCanceled }
func (e *CanceledError) Family() Family  { return FamilyApplication }
func (e *CanceledError) Variant() string { return "Canceled" }
func (e *CanceledError) appError()       {}

// InternalError indicates an unexpected failure that callers cannot act on.
type InternalError struct {
	Message string
}

// Internal returns an InternalError with the given message.
func Internal(message string) *InternalError {
	return &InternalError{Message: message}
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("Internal error: %s", e.Message)
}

func (e *InternalError) Code() Code      { return CodeInternal }
func (e *InternalError) Family() Family  { return FamilyApplication }
func (e *InternalError) Variant() string { return "Internal" }
func (e *InternalError) appError()       {}

// ---- Plugin kinds ----

// PluginNotFoundError indicates the requested plugin is not registered.
type PluginNotFoundError struct {
	PluginID string
}

// PluginNotFound returns a PluginNotFoundError for the given plugin id.
func PluginNotFound(pluginID string) *PluginNotFoundError {
	return &PluginNotFoundError{PluginID: pluginID}
}

func (e *PluginNotFoundError) Error() string {
	return fmt.Sprintf("Plugin not found: %s", e.PluginID)
}

func (e *PluginNotFoundError) Code() Code      { return CodePluginNotFound }
func (e *PluginNotFoundError) Family() Family  { return FamilyPlugin }
func (e *PluginNotFoundError) Variant() string { return "NotFound" }
func (e *PluginNotFoundError) appError()       {}

// PluginLoadError indicates a plugin could not be loaded.
type PluginLoadError struct {
	PluginID string
	Message  string
}

// PluginLoadFailed returns a PluginLoadError for the given plugin id.
func PluginLoadFailed(pluginID, message string) *PluginLoadError {
	return &PluginLoadError{PluginID: pluginID, Message: message}
}

func (e *PluginLoadError) Error() string {
	return fmt.Sprintf("Failed to load plugin '%s': %s", e.PluginID, e.Message)
}

func (e *PluginLoadError) Code() Code      { return CodePluginLoadFailed }
func (e *PluginLoadError) Family() Family  { return FamilyPlugin }
func (e *PluginLoadError) Variant() string { return "LoadFailed" }
func (e *PluginLoadError) appError()       {}

// PluginInitError indicates a plugin failed to initialize.
type PluginInitError struct {
	PluginID string
	Message  string
}

// PluginInitFailed returns a PluginInitError for the given plugin id.
func PluginInitFailed(pluginID, message string) *PluginInitError {
	return &PluginInitError{PluginID: pluginID, Message: message}
}

func (e *PluginInitError) Error() string {
	return fmt.Sprintf("Failed to initialize plugin '%s': %s", e.PluginID, e.Message)
}

func (e *PluginInitError) Code() Code      { return CodePluginInitFailed }
func (e *PluginInitError) Family() Family  { return FamilyPlugin }
func (e *PluginInitError) Variant() string { return "InitFailed" }
func (e *PluginInitError) appError()       {}

// PluginDependencyError indicates a plugin dependency is not available.
type PluginDependencyError struct {
	PluginID   string
	Dependency string
}

// PluginDependencyMissing returns a PluginDependencyError for the given
// plugin id and missing dependency.
func PluginDependencyMissing(pluginID, dependency string) *PluginDependencyError {
	return &PluginDependencyError{PluginID: pluginID, Dependency: dependency}
}

func (e *PluginDependencyError) Error() string {
	return fmt.Sprintf("Plugin '%s' missing dependency: %s", e.PluginID, e.Dependency)
}

func (e *PluginDependencyError) Code() Code      { return CodePluginDependencyMissing }
func (e *PluginDependencyError) Family() Family  { return FamilyPlugin }
func (e *PluginDependencyError) Variant() string { return "DependencyMissing" }
func (e *PluginDependencyError) appError()       {}
