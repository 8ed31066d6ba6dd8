package errors

import "fmt"

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeExtraction   ErrorType = "extraction"
	ErrorTypeCompletion   ErrorType = "completion"
	ErrorTypeStorage      ErrorType = "storage"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeInternal     ErrorType = "internal"
)

// AppError represents a structured application error. Reply is the
// plain-text message sent back to the chat when the operation fails.
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
	Reply   string    `json:"-"`
	Cause   error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Details: detail,
		Reply:   message,
	}
}

// NewExtractionError creates an error for a failed URL or PDF extraction
func NewExtractionError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeExtraction,
		Message: message,
		Reply:   "Could not extract any text from that. Please try another source.",
		Cause:   cause,
	}
}

// NewCompletionError creates an error for a failed completion API call
func NewCompletionError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeCompletion,
		Message: message,
		Reply:   "The summarization service is unavailable right now. Please try again later.",
		Cause:   cause,
	}
}

// NewStorageError creates an error for a failed cloud storage operation
func NewStorageError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeStorage,
		Message: message,
		Reply:   "Failed to reach storage. Please try again later.",
		Cause:   cause,
	}
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeUnauthorized,
		Message: message,
		Reply:   "You are not authorized to use this bot.",
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, reply string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
		Reply:   reply,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Reply:   "Something went wrong. Please try again.",
		Cause:   cause,
	}
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == errorType
	}
	return false
}

// UserReply returns the text the bot should send for an error.
func UserReply(err error) string {
	if appErr, ok := err.(*AppError); ok && appErr.Reply != "" {
		return appErr.Reply
	}
	return "Something went wrong. Please try again."
}
