package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode identifies a failure class across the API surface.
type ErrorCode string

const (
	// Generic errors
	ErrCodeInternalServer ErrorCode = "INTERNAL_SERVER_ERROR"
	ErrCodeBadRequest     ErrorCode = "BAD_REQUEST"
	ErrCodeNotFound       ErrorCode = "NOT_FOUND"

	// Validation errors
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidInput     ErrorCode = "INVALID_INPUT"

	// Pipeline errors
	ErrCodeConfiguration     ErrorCode = "CONFIGURATION_ERROR"
	ErrCodeDimensionMismatch ErrorCode = "DIMENSION_MISMATCH"
	ErrCodeProvider          ErrorCode = "PROVIDER_ERROR"
	ErrCodeExtraction        ErrorCode = "EXTRACTION_ERROR"

	// File handling errors
	ErrCodeFileTooLarge      ErrorCode = "FILE_TOO_LARGE"
	ErrCodeInvalidFileFormat ErrorCode = "INVALID_FILE_FORMAT"
)

// ErrorType groups error codes by origin.
type ErrorType int

const (
	ErrorTypeSystem ErrorType = iota
	ErrorTypeBusiness
	ErrorTypeValidation
	ErrorTypeExternal
)

// AppError is the error shape shared by all layers.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Type     ErrorType   `json:"type"`
	HTTPCode int         `json:"-"`
	Details  interface{} `json:"details,omitempty"`
	Cause    error       `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped cause.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetails attaches structured detail to the error.
func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

// WithCause attaches the underlying error.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// NewConfigurationError reports invalid static configuration, such as a chunk
// overlap that is not smaller than the chunk size.
func NewConfigurationError(message string) *AppError {
	return &AppError{
		Code:     ErrCodeConfiguration,
		Message:  message,
		Type:     ErrorTypeSystem,
		HTTPCode: http.StatusInternalServerError,
	}
}

// NewDimensionMismatchError reports a chunk/embedding count mismatch on a
// corpus append.
func NewDimensionMismatchError(chunks, embeddings int) *AppError {
	return &AppError{
		Code:     ErrCodeDimensionMismatch,
		Message:  fmt.Sprintf("chunk count %d does not match embedding count %d", chunks, embeddings),
		Type:     ErrorTypeSystem,
		HTTPCode: http.StatusInternalServerError,
	}
}

// NewProviderError reports a failure from the embedding or chat backend. The
// pipeline never retries these; they propagate to the caller unchanged.
func NewProviderError(operation string, cause error) *AppError {
	return &AppError{
		Code:     ErrCodeProvider,
		Message:  fmt.Sprintf("provider call failed: %s", operation),
		Type:     ErrorTypeExternal,
		HTTPCode: http.StatusBadGateway,
		Cause:    cause,
	}
}

// NewExtractionError reports a document text extraction failure.
func NewExtractionError(filename string, cause error) *AppError {
	return &AppError{
		Code:     ErrCodeExtraction,
		Message:  fmt.Sprintf("failed to extract text from %s", filename),
		Type:     ErrorTypeBusiness,
		HTTPCode: http.StatusBadRequest,
		Cause:    cause,
	}
}

// NewValidationError reports invalid request input.
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:     ErrCodeValidationFailed,
		Message:  message,
		Type:     ErrorTypeValidation,
		HTTPCode: http.StatusBadRequest,
	}
}

// NewInvalidFileFormatError reports an upload with an unsupported extension.
func NewInvalidFileFormatError(filename string) *AppError {
	return &AppError{
		Code:     ErrCodeInvalidFileFormat,
		Message:  fmt.Sprintf("unsupported file format: %s", filename),
		Type:     ErrorTypeValidation,
		HTTPCode: http.StatusBadRequest,
	}
}

// NewSystemError creates a generic internal error.
func NewSystemError(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Type:     ErrorTypeSystem,
		HTTPCode: http.StatusInternalServerError,
	}
}

// IsAppError reports whether err is an AppError.
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError returns err as an AppError, wrapping unknown errors as internal.
func GetAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return NewSystemError(ErrCodeInternalServer, "Internal server error").WithCause(err)
}
