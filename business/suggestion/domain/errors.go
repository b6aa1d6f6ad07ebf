package domain

import "fmt"

// DefaultErrorMessage is shown when a failure carries nothing better.
const DefaultErrorMessage = "Failed to get smart suggestion. Please try again."

// SuggestionError is the single user-facing failure of a suggestion request.
// The form is never modified when one is returned.
type SuggestionError struct {
	Message string
	cause   error
}

// NewSuggestionError wraps cause with a human-readable message.
func NewSuggestionError(message string, cause error) *SuggestionError {
	if message == "" {
		message = DefaultErrorMessage
	}
	return &SuggestionError{Message: message, cause: cause}
}

func (e *SuggestionError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("suggestion: %s: %v", e.Message, e.cause)
	}
	return "suggestion: " + e.Message
}

func (e *SuggestionError) Unwrap() error {
	return e.cause
}
