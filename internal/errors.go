package internal

import (
	"errors"
	"fmt"
)

type ErrorType string

const (
	ErrorTypeValidation       ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound         ErrorType = "NOT_FOUND"
	ErrorTypeUnexpectedStatus ErrorType = "UNEXPECTED_STATUS"
	ErrorTypeExternal         ErrorType = "EXTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeConfigInvalid  ErrorCode = "CONFIG_INVALID"
	ErrCodeFixtureInvalid ErrorCode = "FIXTURE_INVALID"

	ErrCodeUserNotFound             ErrorCode = "USER_NOT_FOUND"
	ErrCodeLegalEntityNotFound      ErrorCode = "LEGAL_ENTITY_NOT_FOUND"
	ErrCodeServiceAgreementNotFound ErrorCode = "SERVICE_AGREEMENT_NOT_FOUND"

	ErrCodeCreateFailed ErrorCode = "CREATE_FAILED"
	ErrCodeLookupFailed ErrorCode = "LOOKUP_FAILED"
	ErrCodeLoginFailed  ErrorCode = "LOGIN_FAILED"

	ErrCodeRequestFailed ErrorCode = "REQUEST_FAILED"
)

// AppError carries the failure taxonomy for a seeding run. StatusCode and
// Body hold the raw remote response when the failure came from an HTTP call,
// so an unexpected status is never swallowed silently.
type AppError struct {
	Type       ErrorType
	Code       ErrorCode
	Message    string
	StatusCode int
	Body       string
	Cause      error
}

func (e *AppError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Body != "":
		return fmt.Sprintf("%s: status %d: %s", e.Message, e.StatusCode, e.Body)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: status %d", e.Message, e.StatusCode)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	default:
		return e.Message
	}
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Code:    code,
		Message: message,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Code:    code,
		Message: message,
	}
}

// NewUnexpectedStatusError records a remote response that matched neither the
// expected success status nor a known duplicate pattern.
func NewUnexpectedStatusError(message string, statusCode int, body string) *AppError {
	return &AppError{
		Type:       ErrorTypeUnexpectedStatus,
		Code:       ErrCodeCreateFailed,
		Message:    message,
		StatusCode: statusCode,
		Body:       body,
	}
}

// NewExternalError wraps a transport-level failure (connection refused, DNS,
// body read) where no HTTP status was obtained.
func NewExternalError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeExternal,
		Code:    ErrCodeRequestFailed,
		Message: message,
		Cause:   cause,
	}
}

func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsNotFound reports whether err is a NOT_FOUND AppError, the condition that
// aborts identifier resolution for a single user.
func IsNotFound(err error) bool {
	appErr, ok := IsAppError(err)
	return ok && appErr.Type == ErrorTypeNotFound
}
