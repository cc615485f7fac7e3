package models

import (
	"fmt"

	"quill/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the standardized API error envelope.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Error codes used across both services.
const (
	CodeNotFound      = "NOT_FOUND"
	CodeConflict      = "CONFLICT"
	CodeValidation    = "VALIDATION_ERROR"
	CodeSelfReference = "SELF_REFERENCE"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
	CodeUnavailable   = "UNAVAILABLE"
	CodeInternal      = "INTERNAL_ERROR"
)

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %v not found", resource, id),
	}
}

// NewConflictError reports a uniqueness violation (duplicate username/email).
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Message: message,
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

// NewSelfReferenceError rejects follow graph edges from an identity to itself.
func NewSelfReferenceError(message string) *AppError {
	return &AppError{
		Code:    CodeSelfReference,
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

// NewPermissionError reports an authenticated actor acting on a resource it
// does not own.
func NewPermissionError(message string) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
	}
}

// NewUnavailableError reports a transient downstream failure (transport
// error, timeout, 5xx). Distinct from NOT_FOUND, which is permanent.
func NewUnavailableError(service string, err error) *AppError {
	return &AppError{
		Code:    CodeUnavailable,
		Message: fmt.Sprintf("%s is unavailable", service),
		Err:     err,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// HTTPStatus maps the error code to its canonical HTTP status.
// Conflicts deliberately map to 400: the services answered duplicate
// signups inconsistently before, and 400 with code CONFLICT is the
// behavior clients are written against.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeConflict, CodeValidation, CodeSelfReference:
		return fiber.StatusBadRequest
	case CodeUnauthorized:
		return fiber.StatusUnauthorized
	case CodeForbidden:
		return fiber.StatusForbidden
	case CodeUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError creates a standardized error response.
// The status is taken from the AppError code when err is one; otherwise the
// provided fallback status is used.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	if appErr, ok := err.(*AppError); ok {
		status = appErr.HTTPStatus()
		response = ErrorResponse{
			Message: appErr.Message,
			Code:    appErr.Code,
		}
		if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{
			Message: err.Error(),
		}
	}

	if status >= fiber.StatusInternalServerError {
		observability.RecordErrorInContext(c.UserContext(), err)
	}

	return c.Status(status).JSON(response)
}
