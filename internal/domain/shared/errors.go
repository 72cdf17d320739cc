// Package shared contains common domain types, errors, and value objects
// that are used across all domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")
	ErrInvalidEntity = errors.New("invalid entity")

	// Validation errors
	ErrValidation      = errors.New("validation error")
	ErrInvalidID       = errors.New("invalid ID")
	ErrInvalidInput    = errors.New("invalid input")
	ErrEmptyValue      = errors.New("value cannot be empty")
	ErrNegativeValue   = errors.New("value cannot be negative")
	ErrValueOutOfRange = errors.New("value out of range")
	ErrInvalidFormat   = errors.New("invalid format")

	// Dependency errors
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrTimeout               = errors.New("operation timeout")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "mentor", "matching", "participant"
	Op      string // Operation that failed, e.g., "ListCandidates", "Resolve"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Mentor domain errors
var (
	ErrMentorNotFound    = NewDomainError("mentor", "Find", ErrNotFound, "mentor not found")
	ErrInvalidMentorID   = NewDomainError("mentor", "Validate", ErrInvalidID, "invalid mentor ID")
	ErrEmptyExpertise    = NewDomainError("mentor", "Validate", ErrEmptyValue, "mentor expertise cannot be empty")
	ErrInvalidRating     = NewDomainError("mentor", "Validate", ErrValueOutOfRange, "rating must be between 0 and 5")
	ErrUnknownMentorType = NewDomainError("mentor", "Validate", ErrInvalidInput, "unknown mentor type")
)

// Participant domain errors
var (
	ErrParticipantNotFound  = NewDomainError("participant", "Find", ErrNotFound, "participant not found")
	ErrProjectNotFound      = NewDomainError("participant", "FindProject", ErrNotFound, "project not found")
	ErrInvalidParticipantID = NewDomainError("participant", "Validate", ErrInvalidID, "invalid participant ID")
)

// Matching domain errors
var (
	ErrInvalidCriteria = NewDomainError("matching", "Validate", ErrValidation, "invalid match criteria")
	ErrInvalidLimit    = NewDomainError("matching", "Validate", ErrValueOutOfRange, "limit must be a positive integer")
	ErrInvalidWeights  = NewDomainError("matching", "Validate", ErrValueOutOfRange, "score weights must be non-negative and sum to 1.0")
)

// Infrastructure errors
var (
	ErrDirectoryUnavailable = NewDomainError("mentor", "ListCandidates", ErrDependencyUnavailable, "mentor directory is unavailable")
	ErrStoreUnavailable     = NewDomainError("participant", "Get", ErrDependencyUnavailable, "participant store is unavailable")
	ErrDirectoryTimeout     = NewDomainError("mentor", "ListCandidates", ErrTimeout, "mentor directory request timeout")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrEmptyValue) ||
		errors.Is(err, ErrNegativeValue) ||
		errors.Is(err, ErrValueOutOfRange)
}

// IsDependencyUnavailable checks if the error comes from a failed upstream fetch.
// Retrying is a caller policy decision; the engine itself never retries.
func IsDependencyUnavailable(err error) bool {
	return errors.Is(err, ErrDependencyUnavailable) ||
		errors.Is(err, ErrTimeout)
}
