// Package apperr defines the application error taxonomy and its HTTP translation.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code categorizes an application error.
type Code string

const (
	CodeValidation    Code = "validation"
	CodeBadRequest    Code = "bad_request"
	CodeUnauthorized  Code = "unauthorized"
	CodeForbidden     Code = "forbidden"
	CodeNotFound      Code = "not_found"
	CodeConflict      Code = "conflict"
	CodeUnprocessable Code = "unprocessable"
	CodeTooLarge      Code = "too_large"
	CodeInternal      Code = "internal"
)

// ValidationMessage is the fixed top-level message of every validation failure.
const ValidationMessage = "Invalid input"

// FieldErrors maps a field name to its failure messages.
type FieldErrors map[string][]string

// Add appends msg to the messages of field.
func (f FieldErrors) Add(field, msg string) {
	f[field] = append(f[field], msg)
}

// AppError is a structured application error. It supports errors.Is / errors.As via Unwrap.
type AppError struct {
	Code    Code
	Message string
	// Fields holds per-field messages for validation failures.
	Fields FieldErrors
	Cause  error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// StatusCode returns the HTTP status the error is reported with.
func (e *AppError) StatusCode() int {
	return e.Code.Status()
}

// Status maps a code onto an HTTP status.
func (c Code) Status() int {
	switch c {
	case CodeValidation, CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeUnprocessable:
		return http.StatusUnprocessableEntity
	case CodeTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func newf(code Code, format string, args ...any) *AppError {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &AppError{Code: code, Message: msg}
}

// Validation creates a validation error carrying per-field messages.
func Validation(fields FieldErrors) *AppError {
	return &AppError{Code: CodeValidation, Message: ValidationMessage, Fields: fields}
}

// ValidationField creates a validation error for a single field.
func ValidationField(field, msg string) *AppError {
	return Validation(FieldErrors{field: {msg}})
}

func BadRequest(format string, args ...any) *AppError {
	return newf(CodeBadRequest, format, args...)
}

func Unauthorized(format string, args ...any) *AppError {
	return newf(CodeUnauthorized, format, args...)
}

func Forbidden(format string, args ...any) *AppError {
	return newf(CodeForbidden, format, args...)
}

func NotFound(format string, args ...any) *AppError {
	return newf(CodeNotFound, format, args...)
}

func Conflict(format string, args ...any) *AppError {
	return newf(CodeConflict, format, args...)
}

func Unprocessable(format string, args ...any) *AppError {
	return newf(CodeUnprocessable, format, args...)
}

func TooLarge(format string, args ...any) *AppError {
	return newf(CodeTooLarge, format, args...)
}

func Internal(format string, args ...any) *AppError {
	return newf(CodeInternal, format, args...)
}

// Wrap wraps err with an AppError of the given code, preserving the cause.
func Wrap(err error, code Code, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// As extracts the outermost AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetCode returns the code of err, or "" if err is not an AppError.
func GetCode(err error) Code {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return ""
}

func IsNotFound(err error) bool     { return GetCode(err) == CodeNotFound }
func IsConflict(err error) bool     { return GetCode(err) == CodeConflict }
func IsValidation(err error) bool   { return GetCode(err) == CodeValidation }
func IsUnauthorized(err error) bool { return GetCode(err) == CodeUnauthorized }
func IsForbidden(err error) bool    { return GetCode(err) == CodeForbidden }
