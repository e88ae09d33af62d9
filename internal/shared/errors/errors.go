// Package errors provides application-level error types and utilities.
// It defines the error taxonomy used across the ticket core: validation,
// not found, forbidden, conflict, invalid transition, precondition failed,
// and integrity errors.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation         ErrorType = "validation_error"
	ErrorTypeNotFound           ErrorType = "not_found"
	ErrorTypeConflict           ErrorType = "conflict"
	ErrorTypeUnauthorized       ErrorType = "unauthorized"
	ErrorTypeForbidden          ErrorType = "forbidden"
	ErrorTypeInvalidTransition  ErrorType = "invalid_transition"
	ErrorTypePreconditionFailed ErrorType = "precondition_failed"
	ErrorTypeIntegrity          ErrorType = "integrity_error"
	ErrorTypeInternal           ErrorType = "internal_error"
	ErrorTypeBadRequest         ErrorType = "bad_request"
)

// AppError represents an application error with additional context
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Details string    `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeValidation, message, http.StatusBadRequest, details...)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeNotFound, message, http.StatusNotFound, details...)
}

// NewConflictError creates a new conflict error
func NewConflictError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeConflict, message, http.StatusConflict, details...)
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeUnauthorized, message, http.StatusUnauthorized, details...)
}

// NewForbiddenError creates a new forbidden error
func NewForbiddenError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeForbidden, message, http.StatusForbidden, details...)
}

// NewInvalidTransitionError creates an error for a status change that is not
// present in the category's transition table. The details carry the current
// and requested status so the caller can decide to refresh or abandon.
func NewInvalidTransitionError(category, current, requested string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidTransition,
		Message: fmt.Sprintf("cannot transition %s ticket from %s to %s", category, current, requested),
		Code:    http.StatusConflict,
		Details: fmt.Sprintf("current=%s requested=%s", current, requested),
	}
}

// NewPreconditionFailedError creates a new precondition failed error
func NewPreconditionFailedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypePreconditionFailed, message, http.StatusUnprocessableEntity, details...)
}

// NewStaleUpdateError creates a conflict error for an optimistic-concurrency
// mismatch, carrying both timestamps so the caller can refresh and retry.
func NewStaleUpdateError(expected, actual string) *AppError {
	return &AppError{
		Type:    ErrorTypeConflict,
		Message: "ticket was modified by another request",
		Code:    http.StatusConflict,
		Details: fmt.Sprintf("expected_updated_at=%s actual_updated_at=%s", expected, actual),
	}
}

// NewIntegrityError creates an error for stored metadata whose backing data
// is missing or inconsistent.
func NewIntegrityError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeIntegrity, message, http.StatusInternalServerError, details...)
}

// NewInternalError creates a new internal error
func NewInternalError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInternal, message, http.StatusInternalServerError, details...)
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeBadRequest, message, http.StatusBadRequest, details...)
}

func newAppError(t ErrorType, message string, code int, details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:    t,
		Message: message,
		Code:    code,
		Details: detail,
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, t ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == t
}
