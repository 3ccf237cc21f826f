package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeConflict     = "CONFLICT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeTransport    = "TRANSPORT_ERROR"
	CodeServer       = "SERVER_ERROR"
)

// FallbackMessage is shown when a collaborator fails without a detail body.
const FallbackMessage = "The reservation service could not process the request. Please try again."

// APIError is the client-side view of a failed collaborator call.
// Message carries the server-provided detail verbatim when one exists.
type APIError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// FromStatus maps a collaborator status code and detail text onto the
// client taxonomy. 409 stays distinct from generic failure so callers can
// show the scheduling-conflict message.
func FromStatus(status int, detail string) *APIError {
	if detail == "" {
		detail = FallbackMessage
	}

	var code string
	switch {
	case status == http.StatusConflict:
		code = CodeConflict
	case status == http.StatusUnauthorized:
		code = CodeUnauthorized
	case status == http.StatusForbidden:
		code = CodeForbidden
	case status == http.StatusNotFound:
		code = CodeNotFound
	case status >= 400 && status < 500:
		code = CodeValidation
	default:
		code = CodeServer
	}

	return &APIError{
		Code:       code,
		Message:    detail,
		HTTPStatus: status,
	}
}

// Transport wraps a network-level failure where no HTTP response exists.
func Transport(err error) *APIError {
	return &APIError{
		Code:    CodeTransport,
		Message: FallbackMessage,
		Err:     err,
	}
}

func Unauthorized(message string) *APIError {
	return &APIError{
		Code:       CodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

func Conflict(message string) *APIError {
	return &APIError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

func IsCode(err error, code string) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == code
	}
	return false
}

func IsConflict(err error) bool {
	return IsCode(err, CodeConflict)
}

func IsUnauthorized(err error) bool {
	return IsCode(err, CodeUnauthorized)
}

func IsNotFound(err error) bool {
	return IsCode(err, CodeNotFound)
}

func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return Transport(err)
}
