package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"npdecide/domain/core"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
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

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context, keeping the code of an
// underlying AppError or deriving one from the domain sentinel.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    GetCode(err),
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode adds an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// IsAppError checks if an error is or wraps an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// GetCode returns the code of the outermost AppError, the code matching a
// domain sentinel, or CodeInternalError.
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	switch {
	case stderrors.Is(err, core.ErrInvalidParameter):
		return CodeInvalidParameter
	case stderrors.Is(err, core.ErrMalformedMatrix):
		return CodeMalformedMatrix
	case stderrors.Is(err, core.ErrThresholdNotFound):
		return CodeThresholdNotFound
	case stderrors.Is(err, core.ErrNoFeasibleStrategy):
		return CodeNoFeasibleStrategy
	}
	return CodeInternalError
}

// Predefined error codes
const (
	CodeConfigInvalid      = "CONFIG_INVALID"
	CodeValidationError    = "VALIDATION_ERROR"
	CodeInternalError      = "INTERNAL_ERROR"
	CodeInvalidInput       = "INVALID_INPUT"
	CodeInvalidParameter   = "INVALID_PARAMETER"
	CodeMalformedMatrix    = "MALFORMED_MATRIX"
	CodeThresholdNotFound  = "THRESHOLD_NOT_FOUND"
	CodeNoFeasibleStrategy = "NO_FEASIBLE_STRATEGY"
	CodeCanceled           = "CANCELED"
)

// HTTPStatus maps an error code to the response status used by the API
func HTTPStatus(code string) int {
	switch code {
	case CodeValidationError, CodeInvalidInput, CodeInvalidParameter, CodeMalformedMatrix:
		return http.StatusBadRequest
	case CodeThresholdNotFound, CodeNoFeasibleStrategy:
		return http.StatusUnprocessableEntity
	case CodeCanceled:
		return http.StatusRequestTimeout
	}
	return http.StatusInternalServerError
}

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func ValidationError(message string) *AppError {
	return New(CodeValidationError, message)
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}
