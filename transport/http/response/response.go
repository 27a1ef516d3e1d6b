package response

import (
	"carepoint/shared/constant"
	"carepoint/shared/failure"
	"carepoint/shared/logger"
	"encoding/json"
	"errors"
	"net/http"
)

const internalErrorMessage = "internal server error"

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error *string `json:"error,omitempty"`
}

// ErrorWithData is an error response that still carries the resource's current state.
type ErrorWithData[T any] struct {
	Error *string `json:"error,omitempty"`
	Data  *T      `json:"data,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Message: &message})
}

// WithJSON sends a response containing a JSON object
func WithJSON(writer http.ResponseWriter, code int, jsonPayload any) {
	response(writer, code, Data[any]{Data: &jsonPayload})
}

// WithError sends a response with an error message. Errors that are not a failure.Failure are
// reported as a bare 500 so internal details stay in the logs.
func WithError(writer http.ResponseWriter, err error) {
	code, errMsg := describe(err)

	response(writer, code, Error{Error: &errMsg})
}

// WithErrorAndJSON sends an error status and message together with a payload.
func WithErrorAndJSON(writer http.ResponseWriter, err error, jsonPayload any) {
	code, errMsg := describe(err)

	response(writer, code, ErrorWithData[any]{Error: &errMsg, Data: &jsonPayload})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func describe(err error) (int, string) {
	var fail *failure.Failure
	if errors.As(err, &fail) {
		return fail.Code, err.Error()
	}

	logger.ErrorWithStack(err)

	return http.StatusInternalServerError, internalErrorMessage
}

func response(writer http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}
