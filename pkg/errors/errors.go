package errors

import (
	"errors"
	"fmt"
)

// ErrorCode is a machine-readable error classification
type ErrorCode string

// Pipeline error codes
const (
	// ErrMissingConfig means a required construction input was absent
	ErrMissingConfig ErrorCode = "MISSING_CONFIG"
	// ErrRewriteFailed means reading or writing a rewritten file failed
	ErrRewriteFailed ErrorCode = "REWRITE_FAILED"
	// ErrSyncFailed means the mirroring utility reported an error
	ErrSyncFailed ErrorCode = "SYNC_FAILED"
)

// Codes raised by the configuration and CLI layers around the pipeline
const (
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrConfigLoad   ErrorCode = "CONFIG_LOAD"
	ErrConfigValid  ErrorCode = "CONFIG_INVALID"
)

// Detail keys used by the pipeline
const (
	DetailPath     = "path"
	DetailError    = "error"
	DetailExitCode = "exitCode"
	DetailCommand  = "command"
)

// PipelineError is a structured error with a code and diagnostic details
type PipelineError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PipelineError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PipelineError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a PipelineError with the same code
func (e *PipelineError) Is(target error) bool {
	var targetErr *PipelineError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PipelineError with the given code and message
func New(code ErrorCode, message string) *PipelineError {
	return &PipelineError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PipelineError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PipelineError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps err in a PipelineError. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *PipelineError {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

// Wrapf wraps err with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PipelineError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetail adds a detail to the error
func (e *PipelineError) WithDetail(key string, value interface{}) *PipelineError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *PipelineError) WithDetails(details map[string]interface{}) *PipelineError {
	for k, v := range details {
		e.WithDetail(k, v)
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var pErr *PipelineError
	if errors.As(err, &pErr) {
		return pErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PipelineError
func GetErrorCode(err error) ErrorCode {
	var pErr *PipelineError
	if errors.As(err, &pErr) {
		return pErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a PipelineError
func GetErrorDetails(err error) map[string]interface{} {
	var pErr *PipelineError
	if errors.As(err, &pErr) {
		return pErr.Details
	}
	return nil
}
