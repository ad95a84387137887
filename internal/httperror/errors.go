package httperror

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/kyleowen12345/math-problem-generator/internal/domain/mathproblem"
	"github.com/kyleowen12345/math-problem-generator/internal/gemini"
	"github.com/kyleowen12345/math-problem-generator/internal/store"
)

// ErrorCode is the API error code.
type ErrorCode string

const (
	// ErrorCodeInternal is the internal error code.
	ErrorCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrorCodeValidation is the validation error code.
	ErrorCodeValidation ErrorCode = "VALIDATION_ERROR"
	// ErrorCodeUnauthorized is the authentication error code.
	ErrorCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrorCodeHTTPRateLimit is the rate limit error code.
	ErrorCodeHTTPRateLimit ErrorCode = "HTTP_RATE_LIMIT"
	// ErrorCodeLLM is the LLM call error code.
	ErrorCodeLLM ErrorCode = "LLM_ERROR"
	// ErrorCodeLLMTimeout is the LLM timeout code.
	ErrorCodeLLMTimeout ErrorCode = "LLM_TIMEOUT"
	// ErrorCodeLLMParsing is the LLM output parse error code.
	ErrorCodeLLMParsing ErrorCode = "LLM_PARSING_ERROR"
	// ErrorCodeSessionNotFound is the unknown session code.
	ErrorCodeSessionNotFound ErrorCode = "SESSION_NOT_FOUND"
	// ErrorCodeStore is the persistence error code.
	ErrorCodeStore ErrorCode = "STORE_ERROR"
	// ErrorCodeInvalidInput is the malformed input code.
	ErrorCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrorCodeMissingField is the missing field code.
	ErrorCodeMissingField ErrorCode = "MISSING_FIELD"
)

// ErrorResponse is the API error response body.
type ErrorResponse struct {
	Error     string  `json:"error"`
	ErrorCode string  `json:"error_code"`
	RequestID *string `json:"request_id"`
}

// Error is the internal standard error type.
type Error struct {
	Code    ErrorCode
	Status  int
	Type    string
	Message string
	Details map[string]any
}

// Error returns the error message.
func (e *Error) Error() string {
	return e.Message
}

// Response converts an error into an HTTP status and response body.
// The body carries the generic user-facing message only; callers log the
// underlying error server-side.
func Response(err error, requestID string) (int, ErrorResponse) {
	apiErr := FromError(err)
	if apiErr == nil {
		apiErr = NewInternalError("unknown error")
	}

	var requestIDPtr *string
	if requestID != "" {
		requestIDPtr = &requestID
	}

	return apiErr.Status, ErrorResponse{
		Error:     apiErr.Message,
		ErrorCode: string(apiErr.Code),
		RequestID: requestIDPtr,
	}
}

// FromError converts an arbitrary error into the internal error type.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	if errors.Is(err, store.ErrSessionNotFound) {
		return NewSessionNotFound()
	}

	if errors.Is(err, mathproblem.ErrMalformedResponse) {
		return NewLLMParsingError()
	}

	if errors.Is(err, gemini.ErrMissingAPIKey) {
		return NewLLMError("Missing Gemini API key", http.StatusServiceUnavailable)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return NewLLMTimeoutError()
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return NewValidationError(err)
	}

	return NewInternalError(err.Error())
}

// NewInternalError creates an internal server error.
func NewInternalError(message string) *Error {
	return &Error{
		Code:    ErrorCodeInternal,
		Status:  http.StatusInternalServerError,
		Type:    "InternalError",
		Message: message,
		Details: nil,
	}
}

// NewValidationError creates a validation error.
func NewValidationError(err error) *Error {
	return &Error{
		Code:    ErrorCodeValidation,
		Status:  http.StatusBadRequest,
		Type:    "ValidationError",
		Message: "Input validation failed",
		Details: validationDetails(err),
	}
}

// NewMissingField creates a missing field error.
func NewMissingField(field string) *Error {
	return &Error{
		Code:    ErrorCodeMissingField,
		Status:  http.StatusBadRequest,
		Type:    "MissingFieldError",
		Message: "Missing required fields",
		Details: map[string]any{"field": field},
	}
}

// NewInvalidInput creates a malformed input error.
func NewInvalidInput(message string) *Error {
	return &Error{
		Code:    ErrorCodeInvalidInput,
		Status:  http.StatusBadRequest,
		Type:    "InvalidInputError",
		Message: message,
		Details: nil,
	}
}

// NewUnauthorized creates an authentication error.
func NewUnauthorized(details map[string]any) *Error {
	return &Error{
		Code:    ErrorCodeUnauthorized,
		Status:  http.StatusUnauthorized,
		Type:    "UnauthorizedError",
		Message: "Invalid API key",
		Details: details,
	}
}

// NewRateLimitExceeded creates a rate limit error.
func NewRateLimitExceeded(details map[string]any) *Error {
	return &Error{
		Code:    ErrorCodeHTTPRateLimit,
		Status:  http.StatusTooManyRequests,
		Type:    "HTTPRateLimitExceededError",
		Message: "Rate limit exceeded",
		Details: details,
	}
}

// NewSessionNotFound creates an unknown session error.
func NewSessionNotFound() *Error {
	return &Error{
		Code:    ErrorCodeSessionNotFound,
		Status:  http.StatusNotFound,
		Type:    "SessionNotFoundError",
		Message: "Problem session not found",
		Details: nil,
	}
}

// NewStoreError creates a persistence error.
func NewStoreError(message string) *Error {
	return &Error{
		Code:    ErrorCodeStore,
		Status:  http.StatusInternalServerError,
		Type:    "StoreError",
		Message: message,
		Details: nil,
	}
}

// NewLLMParsingError creates an LLM output parse error.
func NewLLMParsingError() *Error {
	return &Error{
		Code:    ErrorCodeLLMParsing,
		Status:  http.StatusInternalServerError,
		Type:    "LLMParsingError",
		Message: "Failed to generate problem. Please try again.",
		Details: nil,
	}
}

// NewLLMTimeoutError creates an LLM timeout error.
func NewLLMTimeoutError() *Error {
	return &Error{
		Code:    ErrorCodeLLMTimeout,
		Status:  http.StatusInternalServerError,
		Type:    "LLMTimeoutError",
		Message: "LLM request timed out",
		Details: nil,
	}
}

// NewLLMError creates an LLM call error.
func NewLLMError(message string, status int) *Error {
	return &Error{
		Code:    ErrorCodeLLM,
		Status:  status,
		Type:    "LLMError",
		Message: message,
		Details: nil,
	}
}

// FieldError carries per-field validation detail.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value"`
}

func validationDetails(err error) map[string]any {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make([]FieldError, 0, len(validationErrors))
		for _, validationErr := range validationErrors {
			fields = append(fields, FieldError{
				Field:   validationErr.Field(),
				Message: validationErr.Error(),
				Value:   validationErr.Value(),
			})
		}
		return map[string]any{"errors": fields}
	}

	return map[string]any{
		"errors": []FieldError{
			{
				Field:   "body",
				Message: err.Error(),
				Value:   nil,
			},
		},
	}
}
