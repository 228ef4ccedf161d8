package errors

import (
	"fmt"
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

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
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
	if appErr, ok := err.(*AppError); ok {
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

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// HasCode reports whether err is an AppError carrying the given code
func HasCode(err error, code string) bool {
	return GetCode(err) == code
}

// Predefined error codes
const (
	CodeConfigInvalid  = "CONFIG_INVALID"
	CodeDataLoadFailed = "DATA_LOAD_FAILED"
	CodeColumnMissing  = "COLUMN_MISSING"
	CodeParseFailed    = "PARSE_FAILED"
	CodeRenderFailed   = "RENDER_FAILED"
	CodeExportFailed   = "EXPORT_FAILED"
	CodeInternalError  = "INTERNAL_ERROR"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func DataLoadFailed(message string, cause error) *AppError {
	return &AppError{
		Code:    CodeDataLoadFailed,
		Message: message,
		Cause:   cause,
	}
}

func ColumnMissing(file, column string) *AppError {
	return New(CodeColumnMissing, fmt.Sprintf("%s: required column %q not found", file, column))
}

func ParseFailed(file string, row int, cause error) *AppError {
	return &AppError{
		Code:    CodeParseFailed,
		Message: fmt.Sprintf("%s: row %d", file, row),
		Cause:   cause,
	}
}

func RenderFailed(message string, cause error) *AppError {
	return &AppError{
		Code:    CodeRenderFailed,
		Message: message,
		Cause:   cause,
	}
}

func ExportFailed(message string, cause error) *AppError {
	return &AppError{
		Code:    CodeExportFailed,
		Message: message,
		Cause:   cause,
	}
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}
