package apperror

// Code represents a unique error code for the application
type Code string

// General error codes
const (
	CodeRequiredField   Code = "REQUIRED_FIELD"
	CodeInvalidInput    Code = "INVALID_INPUT"
	CodeInvalidState    Code = "INVALID_STATE"
	CodeNotFound        Code = "NOT_FOUND"
	CodeValidationError Code = "VALIDATION_ERROR"

	CodeConfigurationError Code = "CONFIGURATION_ERROR"

	CodeExternalServiceError Code = "EXTERNAL_SERVICE_ERROR"
	CodeServiceTimeout       Code = "SERVICE_TIMEOUT"
	CodeServiceUnavailable   Code = "SERVICE_UNAVAILABLE"
	CodeRateLimitExceeded    Code = "RATE_LIMIT_EXCEEDED"

	CodeInternalError Code = "INTERNAL_ERROR"
	CodeUnknownError  Code = "UNKNOWN_ERROR"
)

// Form and session codes
const (
	CodeFormValidationFailed Code = "FORM_VALIDATION_FAILED"
	CodeInvalidSelection     Code = "INVALID_SELECTION"
	CodeInvalidAmount        Code = "INVALID_AMOUNT"
	CodeUnknownField         Code = "UNKNOWN_FIELD"
	CodeSubmissionInProgress Code = "SUBMISSION_IN_PROGRESS"
	CodeAlreadyExecuted      Code = "ALREADY_EXECUTED"
	CodeExecutionFailed      Code = "EXECUTION_FAILED"
)

// Suggestion codes
const (
	CodeSuggestionFailed   Code = "SUGGESTION_FAILED"
	CodeSuggestionInFlight Code = "SUGGESTION_IN_FLIGHT"
	CodeSuggestionTimeout  Code = "SUGGESTION_TIMEOUT"
	CodeInvalidSuggestion  Code = "INVALID_SUGGESTION"
	CodeInvalidRequest     Code = "INVALID_SUGGESTION_REQUEST"
	CodeModelAPIError      Code = "MODEL_API_ERROR"
)

// Wallet codes
const (
	CodeWalletProviderNotFound   Code = "WALLET_PROVIDER_NOT_FOUND"
	CodeWalletConnectionFailed   Code = "WALLET_CONNECTION_FAILED"
	CodeWalletNoAccounts         Code = "WALLET_NO_ACCOUNTS"
	CodeWalletUnknown            Code = "WALLET_UNKNOWN"
	CodeWalletConnectionInFlight Code = "WALLET_CONNECTION_IN_FLIGHT"
)

// Circuit breaker codes
const (
	CodeCircuitOpen     Code = "CIRCUIT_OPEN"
	CodeCircuitHalfOpen Code = "CIRCUIT_HALF_OPEN"
)
