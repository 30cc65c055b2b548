package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// UnrecoverableState indicates a parser-contract violation: a node the
	// grammar guarantees must carry an identifier does not. Analysis of the
	// affected file is aborted.
	UnrecoverableState ErrorCode = "UNRECOVERABLE_STATE"
	// MalformedInput indicates a stored or transported analysis result could
	// not be decoded into the expected output shape
	MalformedInput ErrorCode = "MALFORMED_INPUT"
	// ParseFailed indicates tree-sitter could not produce a syntax tree
	ParseFailed ErrorCode = "PARSE_FAILED"
	// UnsupportedLanguage indicates the file extension maps to no grammar
	UnsupportedLanguage ErrorCode = "UNSUPPORTED_LANGUAGE"
	// FileNotFound indicates the requested file does not exist
	FileNotFound ErrorCode = "FILE_NOT_FOUND"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// CogError represents a cogview error with a stable code and message
type CogError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	cause   error       // Underlying error (not exported to JSON)
}

// New creates a new CogError
func New(code ErrorCode, message string, cause error) *CogError {
	return &CogError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Newf creates a new CogError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *CogError {
	return &CogError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface
func (e *CogError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *CogError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *CogError) WithDetails(details interface{}) *CogError {
	e.Details = details
	return e
}

// GetCode extracts the error code from an error, or InternalError if the
// error is not a CogError
func GetCode(err error) ErrorCode {
	var cogErr *CogError
	if errors.As(err, &cogErr) {
		return cogErr.Code
	}
	return InternalError
}

// IsCode reports whether err carries the given error code
func IsCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}
