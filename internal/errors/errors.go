package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of client error.
type ErrorCode string

const (
	// ErrCodeDecode indicates a malformed credential that could not be decoded locally.
	ErrCodeDecode ErrorCode = "decode"
	// ErrCodeAuth indicates the server rejected the credential, or none was available.
	ErrCodeAuth ErrorCode = "auth"
	// ErrCodeValidation indicates the server (or a local pre-check) rejected the input.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeNetwork indicates no usable response: transport failure, timeout or 5xx.
	ErrCodeNetwork ErrorCode = "network"
	// ErrCodeNotFound indicates the targeted entity no longer exists server-side.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeInternal indicates a client-side failure unrelated to the remote API.
	ErrCodeInternal ErrorCode = "internal"
)

// AppError represents a structured client error with a code, message, and optional cause.
// It supports error wrapping and unwrapping for use with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Field is the specific field that caused the error (optional, for validation errors)
	Field string
	// Status is the HTTP status that produced the error, zero when none was received.
	Status int
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Decode creates a new Decode error wrapping cause.
func Decode(message string, cause error) *AppError {
	return &AppError{Code: ErrCodeDecode, Message: message, Cause: cause}
}

// Auth creates a new Auth error.
func Auth(message string) *AppError {
	return &AppError{Code: ErrCodeAuth, Message: message}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message}
}

// Validationf creates a new Validation error with formatted message.
func Validationf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: fmt.Sprintf(format, args...)}
}

// ValidationField creates a new Validation error for a specific field.
func ValidationField(field, message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Field: field}
}

// Network creates a new Network error wrapping cause.
func Network(message string, cause error) *AppError {
	return &AppError{Code: ErrCodeNetwork, Message: message, Cause: cause}
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message}
}

// NotFoundf creates a new NotFound error with formatted message.
func NotFoundf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Internal creates a new Internal error.
func Internal(message string) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message}
}

// FromStatus classifies an HTTP response status into an AppError.
// message is the server-provided message, if any.
func FromStatus(status int, message string) *AppError {
	code := ErrCodeValidation
	switch {
	case status == 401 || status == 403:
		code = ErrCodeAuth
	case status == 404:
		code = ErrCodeNotFound
	case status >= 500:
		code = ErrCodeNetwork
	}
	if message == "" {
		message = fmt.Sprintf("request failed with status %d", status)
	}
	return &AppError{Code: code, Message: message, Status: status}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsDecode checks if an error is a Decode error.
func IsDecode(err error) bool {
	return isCode(err, ErrCodeDecode)
}

// IsAuth checks if an error is an Auth error.
func IsAuth(err error) bool {
	return isCode(err, ErrCodeAuth)
}

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool {
	return isCode(err, ErrCodeValidation)
}

// IsNetwork checks if an error is a Network error.
func IsNetwork(err error) bool {
	return isCode(err, ErrCodeNetwork)
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool {
	return isCode(err, ErrCodeNotFound)
}

// IsInternal checks if an error is an Internal error.
func IsInternal(err error) bool {
	return isCode(err, ErrCodeInternal)
}

// ForcesLogout reports whether err must end the session as a side effect.
// Only decode and auth failures do.
func ForcesLogout(err error) bool {
	return IsDecode(err) || IsAuth(err)
}

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetField returns the Field from an error, or empty string if not an AppError or no field set.
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}
