package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Resolution errors
	ErrResolution   ErrorCode = "RESOLUTION"
	ErrConstruction ErrorCode = "CONSTRUCTION"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"
)

// RegError represents a structured error with code and details
type RegError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *RegError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *RegError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *RegError) Is(target error) bool {
	var targetErr *RegError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new RegError with the given code and message
func New(code ErrorCode, message string) *RegError {
	return &RegError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new RegError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *RegError {
	return &RegError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a RegError
func Wrap(err error, code ErrorCode, message string) *RegError {
	if err == nil {
		return nil
	}
	return &RegError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *RegError {
	if err == nil {
		return nil
	}
	return &RegError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *RegError) WithDetail(key string, value interface{}) *RegError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *RegError) WithDetails(details map[string]interface{}) *RegError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var regErr *RegError
	if errors.As(err, &regErr) {
		return regErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a RegError
func GetErrorCode(err error) ErrorCode {
	var regErr *RegError
	if errors.As(err, &regErr) {
		return regErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a RegError
func GetErrorDetails(err error) map[string]interface{} {
	var regErr *RegError
	if errors.As(err, &regErr) {
		return regErr.Details
	}
	return nil
}
