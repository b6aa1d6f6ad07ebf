package apperror

// messages maps error codes to human-readable messages
var messages = map[Code]string{
	CodeRequiredField:   "Required field is missing",
	CodeInvalidInput:    "Invalid input provided",
	CodeInvalidState:    "Invalid state for this operation",
	CodeNotFound:        "Resource not found",
	CodeValidationError: "Validation error",

	CodeConfigurationError: "Configuration error",

	CodeExternalServiceError: "External service error",
	CodeServiceTimeout:       "Service request timeout",
	CodeServiceUnavailable:   "Service temporarily unavailable",
	CodeRateLimitExceeded:    "Rate limit exceeded",

	CodeInternalError: "Internal error",
	CodeUnknownError:  "An unknown error occurred",

	CodeFormValidationFailed: "Please fix the highlighted fields",
	CodeInvalidSelection:     "Selection is not in the catalog",
	CodeInvalidAmount:        "Amount must be a number",
	CodeUnknownField:         "Unknown form field",
	CodeSubmissionInProgress: "A trade is already being processed",
	CodeAlreadyExecuted:      "Trade already executed, reset the form first",
	CodeExecutionFailed:      "Trade execution failed",

	CodeSuggestionFailed:   "Failed to get smart suggestion",
	CodeSuggestionInFlight: "A suggestion is already being generated",
	CodeSuggestionTimeout:  "The suggestion service timed out",
	CodeInvalidSuggestion:  "The suggestion service returned an invalid answer",
	CodeInvalidRequest:     "Suggestion request is incomplete",
	CodeModelAPIError:      "Model API error",

	CodeWalletProviderNotFound:   "Wallet provider not found",
	CodeWalletConnectionFailed:   "Wallet connection failed",
	CodeWalletNoAccounts:         "Wallet returned no accounts",
	CodeWalletUnknown:            "Unknown wallet",
	CodeWalletConnectionInFlight: "A wallet connection is already in progress",

	CodeCircuitOpen:     "Circuit breaker is open",
	CodeCircuitHalfOpen: "Circuit breaker is half-open",
}
