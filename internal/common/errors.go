package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Extraction and persistence error taxonomy. Per-item extraction failures are
// recorded on the result and never abort a batch; only collaborator
// initialization failures are fatal.
var (
	ErrUnsupportedFormat    = errors.New("unsupported format")
	ErrCorruptInput         = errors.New("corrupt input")
	ErrExtractorUnavailable = errors.New("extractor unavailable")
	ErrPersistenceFailure   = errors.New("persistence failure")
	ErrInvalidInput         = errors.New("invalid input")
	ErrNotFound             = errors.New("resource not found")
)

// NewAppError builds an AppError with the given code, message and cause.
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// ErrorKind returns the taxonomy label for an extraction error, or "" for nil.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnsupportedFormat):
		return "UNSUPPORTED_FORMAT"
	case errors.Is(err, ErrCorruptInput):
		return "CORRUPT_INPUT"
	case errors.Is(err, ErrExtractorUnavailable):
		return "EXTRACTOR_UNAVAILABLE"
	case errors.Is(err, ErrPersistenceFailure):
		return "PERSISTENCE_FAILURE"
	default:
		return "INTERNAL"
	}
}
