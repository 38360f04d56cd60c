// Package errs defines the closed error taxonomy used across the cargo
// tracking core. Boundary input problems are reported as a ValidationError
// carrying one message per offending field; everything the domain itself can
// fail with is a DomainError tagged with one of a fixed set of codes.
// Technical failures never cross the repository boundary untranslated; they
// arrive here wrapped as a RepositoryError.
package errs

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinels, one per DomainError code, so callers can classify with
// errors.Is without inspecting struct fields.
var (
	ErrEntityNotFound        = errors.New("entity not found")
	ErrInvalidOperation      = errors.New("invalid operation")
	ErrBusinessRuleViolation = errors.New("business rule violation")
	ErrConcurrencyConflict   = errors.New("concurrency conflict")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrRepository            = errors.New("repository failure")
)

// Code tags a DomainError with its failure kind.
type Code string

// Valid domain error codes.
const (
	CodeEntityNotFound        Code = "ENTITY_NOT_FOUND"
	CodeInvalidOperation      Code = "INVALID_OPERATION"
	CodeBusinessRuleViolation Code = "BUSINESS_RULE_VIOLATION"
	CodeConcurrencyConflict   Code = "CONCURRENCY_CONFLICT"
	CodeUnauthorized          Code = "UNAUTHORIZED"
	CodeRepository            Code = "REPOSITORY_ERROR"
)

// DomainError is a business-rule or invariant violation inside the core.
type DomainError struct {
	Code    Code
	Message string
	Field   string
	Cause   error
}

func (e *DomainError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return sentinelFor(e.Code)
}

// Is lets errors.Is match both the code sentinel and the wrapped cause.
func (e *DomainError) Is(target error) bool {
	return target == sentinelFor(e.Code)
}

func sentinelFor(c Code) error {
	switch c {
	case CodeEntityNotFound:
		return ErrEntityNotFound
	case CodeInvalidOperation:
		return ErrInvalidOperation
	case CodeBusinessRuleViolation:
		return ErrBusinessRuleViolation
	case CodeConcurrencyConflict:
		return ErrConcurrencyConflict
	case CodeUnauthorized:
		return ErrUnauthorized
	case CodeRepository:
		return ErrRepository
	}
	return nil
}

// NewEntityNotFound reports a missing aggregate or entity.
func NewEntityNotFound(entity string, id interface{}) *DomainError {
	return &DomainError{
		Code:    CodeEntityNotFound,
		Message: fmt.Sprintf("%s %v not found", entity, id),
	}
}

// NewInvalidOperation reports an illegal state transition.
func NewInvalidOperation(msg string) *DomainError {
	return &DomainError{Code: CodeInvalidOperation, Message: msg}
}

// NewBusinessRuleViolation reports a violated business rule.
func NewBusinessRuleViolation(msg string) *DomainError {
	return &DomainError{Code: CodeBusinessRuleViolation, Message: msg}
}

// NewConcurrencyConflict reports a stale-version save.
func NewConcurrencyConflict(entity string, id interface{}) *DomainError {
	return &DomainError{
		Code:    CodeConcurrencyConflict,
		Message: fmt.Sprintf("%s %v was modified concurrently", entity, id),
	}
}

// NewUnauthorized reports an access-control rejection made by a collaborator
// but surfaced through this taxonomy.
func NewUnauthorized(msg string) *DomainError {
	return &DomainError{Code: CodeUnauthorized, Message: msg}
}

// NewRepositoryError wraps a technical failure at the repository boundary
// without leaking its internal representation to use-case callers.
func NewRepositoryError(cause error) *DomainError {
	return &DomainError{
		Code:    CodeRepository,
		Message: "repository operation failed",
		Cause:   cause,
	}
}

// ValidationError collects malformed-input failures at the use-case
// boundary, one message per field. It is produced before any domain object
// exists and never taints an aggregate.
type ValidationError struct {
	FieldErrors map[string]string
}

// NewValidation returns an empty ValidationError ready to collect fields.
func NewValidation() *ValidationError {
	return &ValidationError{FieldErrors: make(map[string]string)}
}

// Add records a failure message for a field.
func (e *ValidationError) Add(field, message string) {
	e.FieldErrors[field] = message
}

// HasErrors reports whether any field failed.
func (e *ValidationError) HasErrors() bool {
	return len(e.FieldErrors) > 0
}

// ErrOrNil returns the collected error, or nil when every field was valid.
// Returning the nil interface (not a typed nil) matters to callers comparing
// against nil.
func (e *ValidationError) ErrOrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.FieldErrors))
	for f := range e.FieldErrors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e.FieldErrors[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
