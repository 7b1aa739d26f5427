package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput      = errors.New("input is empty or contains only whitespace")
	ErrInvalidJSON     = errors.New("invalid JSON format")
	ErrEmptySQL        = errors.New("no SQL statement found in input")
	ErrFileNotFound    = errors.New("file not found")
	ErrNoInput         = errors.New("no input provided: please specify a file with -i or pipe data to stdin")
	ErrInvalidFilePath = errors.New("invalid file path")
	ErrBadIndent       = errors.New("indent width must be 2, 4 or 8")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput   ErrorType = "input"
	ErrorTypeParse   ErrorType = "parse"
	ErrorTypeFix     ErrorType = "fix"
	ErrorTypeFormat  ErrorType = "format"
	ErrorTypeOutput  ErrorType = "output"
	ErrorTypeUnknown ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// FixValidationError is returned when the repaired text still fails to
// parse. It carries the log of attempted repair steps and the partially
// repaired text so the caller can surface both instead of discarding
// the work.
type FixValidationError struct {
	Message     string
	Log         []string
	PartialText string
	Err         error
}

// Error implements error interface
func (e *FixValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrorTypeFix, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrorTypeFix, e.Message)
}

// Unwrap returns the underlying parse error
func (e *FixValidationError) Unwrap() error {
	return e.Err
}

// NewInputError creates a new error related to input processing
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewParseError creates a new error related to JSON or SQL parsing.
// The underlying parser's message is preserved through Err.
func NewParseError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeParse,
		Message: message,
		Err:     err,
	}
}

// NewFixValidationError creates the error returned when the fix
// pipeline's final validation parse fails
func NewFixValidationError(message string, log []string, partial string, err error) *FixValidationError {
	return &FixValidationError{
		Message:     message,
		Log:         log,
		PartialText: partial,
		Err:         err,
	}
}

// NewFormatError creates a new error related to output formatting
func NewFormatError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeFormat,
		Message: message,
		Err:     err,
	}
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeOutput,
		Message: message,
		Err:     err,
	}
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var fixErr *FixValidationError
	if errors.As(err, &fixErr) {
		return fmt.Sprintf("Fix error: %s (the partially repaired text was kept)", fixErr.Message)
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeParse:
			if appErr.Err != nil {
				return fmt.Sprintf("Parse error: %s: %v", appErr.Message, appErr.Err)
			}
			return fmt.Sprintf("Parse error: %s", appErr.Message)
		case ErrorTypeFormat:
			return fmt.Sprintf("Format error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	// Handle standard errors
	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide something to format."
	}
	if errors.Is(err, ErrInvalidJSON) {
		return "Error: The input contains invalid JSON. Please check your JSON syntax."
	}
	if errors.Is(err, ErrEmptySQL) {
		return "Error: No SQL statement found. Please provide at least one statement."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please specify a file with -i or pipe data to stdin."
	}
	if errors.Is(err, ErrInvalidFilePath) {
		return "Error: Invalid file path. Please provide a valid file path."
	}
	if errors.Is(err, ErrBadIndent) {
		return "Error: Indent width must be 2, 4 or 8."
	}

	// Generic error message for unknown errors
	return fmt.Sprintf("Error: %v", err)
}
