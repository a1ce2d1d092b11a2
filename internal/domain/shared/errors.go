// Package shared contains common domain types, errors and value objects
// that are used across all domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Validation errors
	ErrValidation     = errors.New("validation error")
	ErrInvalidFormat  = errors.New("invalid format")
	ErrUnknownSubject = errors.New("unknown subject")
	ErrInvalidGrade   = errors.New("invalid grade")

	// Subject source errors
	ErrSourceUnavailable = errors.New("subject source unavailable")
	ErrSourceFormat      = errors.New("malformed subject source")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "student", "subjects"
	Op      string // Operation that failed, e.g., "SetFirstName", "AddScore"
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

// Is implements errors.Is() matching. Every validation sub-kind also
// matches ErrValidation.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if target == ErrValidation && isValidationKind(e.Kind) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

func isValidationKind(kind error) bool {
	switch kind {
	case ErrInvalidFormat, ErrUnknownSubject, ErrInvalidGrade:
		return true
	default:
		return false
	}
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

// NewInvalidNameError reports a name field that is not alphabetic title case.
// The message always names the offending field.
func NewInvalidNameError(op, field string) *DomainError {
	return NewDomainError("student", op, ErrInvalidFormat,
		fmt.Sprintf("invalid %s: only alphabet characters with the first letter capitalized are allowed", field))
}

// NewUnknownSubjectError reports a subject outside the reference subject set.
func NewUnknownSubjectError(op, subject string) *DomainError {
	return NewDomainError("student", op, ErrUnknownSubject,
		fmt.Sprintf("%q is not a valid subject", subject))
}

// Score domain errors
var (
	ErrGradeOutOfRange = NewDomainError("score", "Validate", ErrInvalidGrade,
		"grades should be between 2 and 5")
	ErrTestResultOutOfRange = NewDomainError("score", "Validate", ErrInvalidGrade,
		"test results should be between 0 and 100")
)

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidFormat) ||
		errors.Is(err, ErrUnknownSubject) ||
		errors.Is(err, ErrInvalidGrade)
}

// IsInvalidFormat checks if the error is a name format violation.
func IsInvalidFormat(err error) bool {
	return errors.Is(err, ErrInvalidFormat)
}

// IsUnknownSubject checks if the error is an unknown subject error.
func IsUnknownSubject(err error) bool {
	return errors.Is(err, ErrUnknownSubject)
}

// IsInvalidGrade checks if the error is a grade or test result domain violation.
func IsInvalidGrade(err error) bool {
	return errors.Is(err, ErrInvalidGrade)
}

// IsSourceError checks if the error came from the subject source.
func IsSourceError(err error) bool {
	return errors.Is(err, ErrSourceUnavailable) ||
		errors.Is(err, ErrSourceFormat)
}

// IsRetryable checks if the operation can be retried.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrSourceUnavailable)
}
