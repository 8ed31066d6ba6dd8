package domain

import "errors"

// Domain errors
var (
	ErrConfigNotFound  = errors.New("config not found")
	ErrArticleNotFound = errors.New("article not found")
	ErrSummaryNotFound = errors.New("summary not found")
	ErrSecretNotFound  = errors.New("secret not found")
	ErrNotAllowed      = errors.New("user not allowed")
	ErrEmptyExtraction = errors.New("no text extracted")
)

// ValidationError represents a validation error with field and message information.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
