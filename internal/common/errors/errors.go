// Package errors provides standardized error handling for the notification
// service.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeRegistrationInvalid ErrorCode = "REGISTRATION_INVALID"
	ErrCodeUserNotFound        ErrorCode = "USER_NOT_FOUND"
	ErrCodeUnknownCategory     ErrorCode = "UNKNOWN_CATEGORY"

	ErrCodePushSendFailed          ErrorCode = "PUSH_SEND_FAILED"
	ErrCodeTemplateRegistryInvalid ErrorCode = "TEMPLATE_REGISTRY_INVALID"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// Constructors
// ==========================

// NewRegistrationInvalidError reports a registration with missing required
// fields. Not retryable; the caller must fix the request.
func NewRegistrationInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRegistrationInvalid,
		Message:   "Registration is missing required fields",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUserNotFoundError reports an operation on an unregistered user.
func NewUserNotFoundError(userID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUserNotFound,
		Message:   "User is not registered for notifications",
		Details:   fmt.Sprintf("userId: %s", userID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownCategoryError reports a category absent from the template
// catalog entirely. This is a configuration fault, distinct from a
// per-user opt-out which is a normal policy decision.
func NewUnknownCategoryError(category string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownCategory,
		Message:   "Notification category not present in template catalog",
		Details:   fmt.Sprintf("category: %s", category),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPushSendFailedError reports a per-item delivery failure.
func NewPushSendFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePushSendFailed,
		Message:   "Push delivery failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewTemplateRegistryInvalidError reports a template registry file that
// failed schema validation or parsing.
func NewTemplateRegistryInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeTemplateRegistryInvalid,
		Message:   "Template registry file is invalid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// Classification helpers
// ==========================

func codeOf(err error) (ErrorCode, bool) {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code, true
	}
	return "", false
}

// IsRegistrationInvalid reports whether err is a REGISTRATION_INVALID error.
func IsRegistrationInvalid(err error) bool {
	code, ok := codeOf(err)
	return ok && code == ErrCodeRegistrationInvalid
}

// IsUserNotFound reports whether err is a USER_NOT_FOUND error.
func IsUserNotFound(err error) bool {
	code, ok := codeOf(err)
	return ok && code == ErrCodeUserNotFound
}

// IsUnknownCategory reports whether err is an UNKNOWN_CATEGORY error.
func IsUnknownCategory(err error) bool {
	code, ok := codeOf(err)
	return ok && code == ErrCodeUnknownCategory
}
