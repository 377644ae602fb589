package errors

import "errors"

// Code identifies a structured error type used across the application.
type Code string

const (
	// Generic codes
	CodeUnknown            Code = "unknown"
	CodeConfigurationError Code = "configuration_error"

	// Form errors
	CodeValidationFailed  Code = "validation_failed"
	CodeServiceTagMissing Code = "service_tag_missing"
	CodeSubmitInFlight    Code = "submit_in_flight"

	// Storage errors
	CodeNotFound        Code = "not_found"
	CodeStorageFailed   Code = "storage_failed"
	CodeInvalidNodeTree Code = "invalid_node_tree"
)

// Error represents a structured error with a machine-readable code plus message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Code)
}

// Unwrap returns the wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// Is matches another structured error carrying the same code, so package
// sentinels built with New can be compared with errors.Is.
func (e Error) Is(target error) bool {
	var other Error
	if !errors.As(target, &other) {
		return false
	}
	return other.Code != CodeUnknown && other.Code == e.Code
}

// New wraps an error with a code/message.
func New(code Code, msg string, err error) Error {
	return Error{Code: code, Message: msg, Err: err}
}

// CodeOf walks the error chain and returns the first structured code found.
func CodeOf(err error) Code {
	var structured Error
	if errors.As(err, &structured) {
		return structured.Code
	}
	return CodeUnknown
}

// IsCode reports whether the error (or its unwrap chain) matches the provided code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}
