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

// Terminal error kinds. Individual backend failures are absorbed inside the
// cascade and never carry one of these; only caller-input errors, a total
// absence of any usable backend, or a remote-service failure surface.
var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrBackendUnavailable   = errors.New("no extraction backend available")
	ErrInvalidInput         = errors.New("invalid input")
	ErrRemoteService        = errors.New("remote service failure")
	ErrInternal             = errors.New("internal error")
)

// Remote-service sub-reasons, wrapped around ErrRemoteService so callers can
// distinguish authentication, timeout and payload problems from plain
// non-2xx responses.
var (
	ErrRemoteAuth    = fmt.Errorf("%w: authentication refused", ErrRemoteService)
	ErrRemoteTimeout = fmt.Errorf("%w: timed out", ErrRemoteService)
	ErrRemotePayload = fmt.Errorf("%w: payload too large", ErrRemoteService)
	ErrRemoteStatus  = fmt.Errorf("%w: non-success status", ErrRemoteService)
)

// Error constructors
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
