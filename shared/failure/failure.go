package failure

import (
	"errors"
	"net/http"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var ErrSessionExpired = &Failure{Code: http.StatusNotFound, Message: "booking session not found or expired"}
var ErrSubmissionInFlight = &Failure{Code: http.StatusConflict, Message: "a submission is already in progress"}
var ErrSessionBusy = &Failure{Code: http.StatusConflict, Message: "the booking session is being updated, please retry"}

// Error returns the error message.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// Rejected returns a Failure for a request the hospital API refused. Whatever status the API
// answered with, the visitor sees 422 so it cannot be mistaken for a session problem.
func Rejected(msg string) error {
	return &Failure{
		Code:    http.StatusUnprocessableEntity,
		Message: msg,
	}
}

// BadGateway returns a new Failure for an upstream service that could not be reached.
func BadGateway(msg string) error {
	return &Failure{
		Code:    http.StatusBadGateway,
		Message: msg,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetMessage returns the message of a Failure, or fallback when err carries none.
func GetMessage(err error, fallback string) string {
	var fail *Failure
	if errors.As(err, &fail) && fail.Message != "" {
		return fail.Message
	}

	return fallback
}
