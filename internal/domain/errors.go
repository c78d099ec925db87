package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"

	// Validation errors
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Assessment specific errors
	CodeQuestionNotFound    ErrorCode = "QUESTION_NOT_FOUND"
	CodeAssemblyFailed      ErrorCode = "ASSEMBLY_FAILED"
	CodeAttemptNotEvaluable ErrorCode = "ATTEMPT_NOT_EVALUABLE"
	CodeAttemptEvaluated    ErrorCode = "ATTEMPT_ALREADY_EVALUATED"
	CodeLLMServiceError     ErrorCode = "LLM_SERVICE_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper constructors for common errors

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewQuestionNotFoundError(questionID string) *DomainError {
	return NewError(CodeQuestionNotFound, fmt.Sprintf("Question not found with ID: %s", questionID), nil)
}

// NewAssemblyFailedError is the single terminal error surfaced when both the
// tiered composer and the legacy distribution fallback are exhausted.
func NewAssemblyFailedError(cause error) *DomainError {
	return NewError(CodeAssemblyFailed, "Failed to assemble question set from any source", cause)
}

func NewAttemptNotEvaluableError(attemptID string, status AttemptStatus) *DomainError {
	return NewError(CodeAttemptNotEvaluable,
		fmt.Sprintf("Attempt %s cannot be evaluated in status %q", attemptID, status), nil)
}

func NewAttemptAlreadyEvaluatedError(attemptID string) *DomainError {
	return NewError(CodeAttemptEvaluated,
		fmt.Sprintf("Attempt %s has already been evaluated", attemptID), nil)
}

func NewLLMServiceError(cause error) *DomainError {
	return NewError(CodeLLMServiceError, "Failed to process with LLM service", cause)
}

// ErrCacheMiss signals an absent cache entry. Callers treat it as a normal
// miss, not a failure.
var ErrCacheMiss = NewError(CodeNotFound, "cache miss", nil)

// ValidationError describes a single invalid request field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a field-less validation error.
func NewValidationError(message string) *DomainError {
	return NewError(CodeValidation, message, nil)
}

// ValidationErrors aggregates field validation failures for one request.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", e[0].Error())
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: "is required"}
}

func NewInvalidFormatError(field, value string) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("has invalid format: %q", value)}
}

func NewOutOfRangeError(field string, value, min, max int) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("value %d out of range [%d, %d]", value, min, max)}
}
