// Package errors is the error vocabulary shared by every hokage package. It defines sentinel errors, domain error types for the event API and
// the realtime channel, and classification helpers used by the dashboard to decide
// what to show the organizer.
//
// # Error Types
//
// Domain-specific errors represent failures from a collaborator:
//   - APIError: a non-2xx response or transport failure from the event HTTP API
//   - RealtimeError: a failure dialing or writing to the realtime channel
//
// Semantic errors represent common error conditions:
//   - NotFoundError: a team or domain is not in the local roster
//   - ValidationError: invalid input or configuration
//
// # Usage
//
//	err := errors.NewAPIError("POST", "/admin/updateDomain", 500).WithBody("boom")
//	if errors.IsRetryable(err) { ... }
//	if errors.IsUserFacing(err) { showAlert(errors.UserMessage(err)) }
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/cb-innovatekare/hokage/internal/util"
)

// Standard library helpers, so callers need a single errors import.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity ranks how loudly an error should be reported.
type Severity int

const (
	// SeverityDebug errors are only logged.
	SeverityDebug Severity = iota
	// SeverityInfo marks expected outcomes such as a no-op request.
	SeverityInfo
	// SeverityWarning leaves the view degraded, e.g. without a domain catalog.
	SeverityWarning
	// SeverityError means the organizer's action did not take effect.
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Roster sentinel errors
var (
	// ErrTeamNotFound indicates that a team is not in the local roster.
	ErrTeamNotFound = New("team not found")
	// ErrMutationInFlight indicates that a mutation for the same team has not completed yet.
	ErrMutationInFlight = New("mutation already in flight for team")
)

// Collaborator sentinel errors
var (
	// ErrNotConnected indicates that the realtime channel is not open.
	ErrNotConnected = New("realtime channel not connected")
	// ErrInvalidPayload indicates that a response body could not be decoded.
	ErrInvalidPayload = New("invalid payload")
	// ErrRequestFailed indicates that an HTTP request could not be completed.
	ErrRequestFailed = New("request failed")
)

// General sentinel errors
var (
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// HokageError is the base interface for all hokage errors.
type HokageError interface {
	error

	Unwrap() error
	Severity() Severity
	// IsRetryable reports a transient failure: a 5xx, a 429 or a dropped
	// connection. Nothing retries automatically; the organizer reloads.
	IsRetryable() bool
	// IsUserFacing reports whether Error() may be shown in the dashboard.
	IsUserFacing() bool
}

// baseError carries the classification shared by the concrete types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	retryable  bool
	userFacing bool
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Unwrap() error      { return e.cause }
func (e *baseError) Severity() Severity { return e.severity }
func (e *baseError) IsRetryable() bool  { return e.retryable }
func (e *baseError) IsUserFacing() bool { return e.userFacing }

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// APIError represents a failed call to the event HTTP API.
//
// Example:
//
//	err := errors.NewAPIError("GET", "/event/students", 502)
//	fmt.Println(err) // "api error [GET /event/students, status=502]: unexpected status"
type APIError struct {
	baseError
	Method     string
	Endpoint   string
	StatusCode int
	Body       string
}

// NewAPIError creates an APIError for a response with the given status code.
// 5xx and 429 responses are classified as retryable.
func NewAPIError(method, endpoint string, status int) *APIError {
	retryable := status >= 500 || status == http.StatusTooManyRequests
	return &APIError{
		baseError: baseError{
			message:    "unexpected status",
			severity:   SeverityError,
			retryable:  retryable,
			userFacing: true,
		},
		Method:     method,
		Endpoint:   endpoint,
		StatusCode: status,
	}
}

// NewTransportError creates an APIError for a request that never produced a response.
func NewTransportError(method, endpoint string, cause error) *APIError {
	return &APIError{
		baseError: baseError{
			message:    ErrRequestFailed.Error(),
			cause:      cause,
			severity:   SeverityError,
			retryable:  true,
			userFacing: false,
		},
		Method:   method,
		Endpoint: endpoint,
	}
}

// WithBody records a response body for diagnostics, cut to 256 columns on
// a character boundary.
func (e *APIError) WithBody(body string) *APIError {
	const maxBody = 256
	e.Body = util.Truncate(strings.TrimSpace(body), maxBody)
	return e
}

// WithCause adds a cause to the error.
func (e *APIError) WithCause(cause error) *APIError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *APIError) Error() string {
	parts := []string{strings.TrimSpace(e.Method + " " + e.Endpoint)}
	if e.StatusCode != 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}
	msg := fmt.Sprintf("api error [%s]: %s", strings.Join(parts, ", "), e.message)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	if e.cause != nil {
		msg += fmt.Sprintf(": %v", e.cause)
	}
	return msg
}

// Is matches any *APIError target and ErrRequestFailed for transport failures.
func (e *APIError) Is(target error) bool {
	if _, ok := target.(*APIError); ok {
		return true
	}
	if target == ErrRequestFailed && e.StatusCode == 0 {
		return true
	}
	return false
}

// RealtimeError represents a failure on the realtime channel.
type RealtimeError struct {
	baseError
	URL   string
	Event string
}

// NewRealtimeError creates a new RealtimeError.
func NewRealtimeError(message string, cause error) *RealtimeError {
	return &RealtimeError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			retryable:  true,
			userFacing: true,
		},
	}
}

// WithURL adds the channel URL to the error context.
func (e *RealtimeError) WithURL(url string) *RealtimeError {
	e.URL = url
	return e
}

// WithEvent adds the event name to the error context.
func (e *RealtimeError) WithEvent(event string) *RealtimeError {
	e.Event = event
	return e
}

// Error returns the formatted error message.
func (e *RealtimeError) Error() string {
	var parts []string
	if e.URL != "" {
		parts = append(parts, fmt.Sprintf("url=%s", e.URL))
	}
	if e.Event != "" {
		parts = append(parts, fmt.Sprintf("event=%s", e.Event))
	}

	prefix := "realtime error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("realtime error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// NotFoundError represents a resource that could not be found.
//
// Example:
//
//	err := errors.NewNotFoundError("team", "t-1")
//	fmt.Println(err) // "team 't-1' not found"
type NotFoundError struct {
	baseError
	ResourceType string
	ResourceID   string
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			message:    fmt.Sprintf("%s '%s' not found", resourceType, resourceID),
			severity:   SeverityWarning,
			userFacing: true,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// Is matches any *NotFoundError target, and ErrTeamNotFound for teams.
func (e *NotFoundError) Is(target error) bool {
	if _, ok := target.(*NotFoundError); ok {
		return true
	}
	return target == ErrTeamNotFound && e.ResourceType == "team"
}

// ValidationError represents invalid input or state.
//
// Example:
//
//	err := errors.NewValidationError("domain cannot be empty").WithField("domain")
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is matches any *ValidationError target and ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	return target == ErrInvalidInput
}

// -----------------------------------------------------------------------------
// Classification Helpers
// -----------------------------------------------------------------------------

// IsRetryable returns true if the error is transient and the operation may
// succeed when the organizer tries again.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var herr HokageError
	if As(err, &herr) {
		return herr.IsRetryable()
	}
	return false
}

// IsUserFacing returns true if the error message is safe to display in the dashboard.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	var herr HokageError
	if As(err, &herr) {
		return herr.IsUserFacing()
	}
	return Is(err, ErrMutationInFlight) || Is(err, ErrNotConnected)
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement HokageError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}
	var herr HokageError
	if As(err, &herr) {
		return herr.Severity()
	}
	return SeverityError
}

// UserMessage returns a short message suitable for an alert banner.
// Internal errors collapse to a generic message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if IsUserFacing(err) {
		return err.Error()
	}
	return "An internal error occurred (see log for details)"
}

// Wrap wraps an error with additional context message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
